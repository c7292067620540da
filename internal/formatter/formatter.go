// package formatter renders songs and leaderboards as plain text, CSV, Markdown, JSON and terminal tables
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/shared"
)

// Format identifies a leaderboard output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat maps a user-supplied name (case-insensitive) to a [Format]. "markdown" and "text" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want table, csv, md, txt or json)", shared.ErrInvalidArgument, s)
	}
}

// WinRate renders a 0..1 rate as a percentage with one decimal, e.g. 0.567 -> "56.7%".
//
// Exact ties round away from zero, so 1/16 renders "6.3%".
func WinRate(rate float64) string {
	pct := rate * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return fmt.Sprintf("%.1f%%", pct)
	}

	sign := ""
	if pct < 0 {
		sign, pct = "-", -pct
	}

	// pct*10 is exact at this precision, so the tie check sees the true fraction.
	scaled := new(big.Float).SetPrec(256).SetFloat64(pct)
	scaled.Mul(scaled, big.NewFloat(10))
	tenths, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetInt(tenths))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		tenths.Add(tenths, big.NewInt(1))
	}

	whole, digit := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	return fmt.Sprintf("%s%s.%s%%", sign, whole.String(), digit.String())
}

// SongLabel renders a song's record as "{wins}/{appearances} wins".
func SongLabel(s models.Song) string {
	return s.Label()
}

// LeaderboardToCSV converts leaderboard rows to CSV with columns: Rank, Name, WinRate, Wins, Appearances.
//
// Rank is the 1-based position in rows; rows are never re-sorted.
func LeaderboardToCSV(rows []models.LeaderboardRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Rank", "Name", "WinRate", "Wins", "Appearances"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, row := range rows {
		record := []string{
			strconv.Itoa(i + 1),
			row.Name,
			WinRate(row.WinRate),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Appearances),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// LeaderboardToMarkdown converts leaderboard rows to a Markdown table.
func LeaderboardToMarkdown(rows []models.LeaderboardRow) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Leaderboard\n\n")
	buf.WriteString("| # | Song | Win rate | Wins | Appearances |\n")
	buf.WriteString("|---|------|----------|------|-------------|\n")
	for i, row := range rows {
		name := strings.ReplaceAll(row.Name, "|", `\|`)
		fmt.Fprintf(&buf, "| %d | %s | %s | %d | %d |\n", i+1, name, WinRate(row.WinRate), row.Wins, row.Appearances)
	}
	return buf.Bytes()
}

// LeaderboardToText converts leaderboard rows to numbered plain text lines.
func LeaderboardToText(rows []models.LeaderboardRow) []byte {
	var buf bytes.Buffer
	for i, row := range rows {
		fmt.Fprintf(&buf, "%d. %s - %s (%d/%d)\n", i+1, row.Name, WinRate(row.WinRate), row.Wins, row.Appearances)
	}
	return buf.Bytes()
}

// SongsToText renders one "{name} - {label}" line per song in the given order.
func SongsToText(songs []models.Song) []byte {
	var buf bytes.Buffer
	for _, s := range songs {
		fmt.Fprintf(&buf, "%s - %s\n", s.Name, SongLabel(s))
	}
	return buf.Bytes()
}

// LeaderboardTable renders rows as a bordered terminal table. A non-positive width lets the table size itself.
func LeaderboardTable(rows []models.LeaderboardRow, width int) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	numeric := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))).
		Headers("#", "Song", "Win rate", "Wins", "Appearances").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 1:
				return cell
			default:
				return numeric
			}
		})

	for i, row := range rows {
		t.Row(
			strconv.Itoa(i+1),
			row.Name,
			WinRate(row.WinRate),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Appearances),
		)
	}

	if width > 0 {
		t.Width(width)
	}
	return t.Render()
}

// RenderLeaderboard renders rows in the given format.
func RenderLeaderboard(rows []models.LeaderboardRow, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return LeaderboardToCSV(rows)
	case FormatMarkdown:
		return LeaderboardToMarkdown(rows), nil
	case FormatText:
		return LeaderboardToText(rows), nil
	case FormatJSON:
		if rows == nil {
			rows = []models.LeaderboardRow{}
		}
		return shared.MarshalJSON(rows, true)
	case FormatTable, "":
		return []byte(LeaderboardTable(rows, 0) + "\n"), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// WriteLeaderboard renders rows in format f and writes them to path.
func WriteLeaderboard(rows []models.LeaderboardRow, f Format, path string) error {
	data, err := RenderLeaderboard(rows, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write leaderboard file: %w", err)
	}
	return nil
}
