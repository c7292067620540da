package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/versus/internal/formatter"
)

// View renders the three panes, or the alert when one is pending.
func (m *Model) View() string {
	if len(m.alerts) > 0 {
		return m.renderAlert()
	}

	title := styles.title.Render("versus")
	left := lipgloss.JoinVertical(lipgloss.Left, m.renderSongs(), m.renderInput())
	right := lipgloss.JoinVertical(lipgloss.Left, m.renderPair(), m.renderBoard())
	body := lipgloss.JoinHorizontal(lipgloss.Top, styles.pane.Render(left), styles.pane.Render(right))

	return fmt.Sprintf("%s\n%s\n%s", title, body, m.help.View(m.keys))
}

func (m *Model) renderSongs() string {
	if m.songsErr != "" {
		return m.songs.View() + "\n" + styles.err.Render(m.songsErr)
	}
	return m.songs.View()
}

func (m *Model) renderInput() string {
	if m.focus != focusInput {
		return styles.muted.Render("press a to add a song")
	}
	line := m.input.View()
	if m.adding {
		line += styles.muted.Render("  adding...")
	}
	return line
}

func (m *Model) renderPair() string {
	heading := styles.ok.Render("Which is better?")

	leftStyle, rightStyle := styles.card, styles.card
	if m.pair.canVote() {
		leftStyle, rightStyle = styles.active, styles.active
	}

	left, right := m.pair.pair.Left, m.pair.pair.Right
	if left == "" {
		left = "…"
	}
	if right == "" {
		right = "…"
	}
	cards := lipgloss.JoinHorizontal(
		lipgloss.Center,
		leftStyle.Render(left),
		styles.muted.Render("  vs  "),
		rightStyle.Render(right),
	)

	lines := []string{heading, cards}
	switch {
	case m.pair.notice != "":
		lines = append(lines, styles.warn.Render(m.pair.notice))
	case !m.pair.canVote():
		lines = append(lines, styles.muted.Render("loading..."))
	default:
		lines = append(lines, styles.help.Render("←/h left wins · →/l right wins"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBoard() string {
	heading := styles.ok.Render("Leaderboard")
	if m.boardErr != "" {
		return fmt.Sprintf("\n%s\n%s", heading, styles.err.Render(m.boardErr))
	}
	return fmt.Sprintf("\n%s\n%s", heading, formatter.LeaderboardTable(m.board, 0))
}

func (m *Model) renderAlert() string {
	text := m.alerts[0]
	if n := len(m.alerts); n > 1 {
		text = fmt.Sprintf("%s\n\n(%d more)", text, n-1)
	}
	box := styles.modal.Render(fmt.Sprintf("%s\n\n%s", styles.err.Render(text), styles.help.Render("press enter to dismiss")))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
