package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/shared"
)

var _ models.Repository[*models.PersistedSong] = (*SongRepository)(nil)

const songColumns = "id, sequence, name, wins, appearances, created_at, updated_at"

// SongRepository implements models.Repository[*models.PersistedSong] for the voting pool.
//
// Songs are hard-deleted; names are unique.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new [models.PersistedSong] with a generated ID and sequence.
//
// A duplicate name returns an error wrapping [shared.ErrSongExists].
func (r *SongRepository) Create(song *models.PersistedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	song.SetID(shared.GenerateID())
	song.SetSequence(sequence)

	query := `
		INSERT INTO songs (id, sequence, name, wins, appearances, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		song.ID(),
		song.Sequence(),
		song.Name(),
		song.Wins(),
		song.Appearances(),
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", shared.ErrSongExists, song.Name())
	}
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}
	return nil
}

// Get retrieves a song by ID
func (r *SongRepository) Get(id string) (*models.PersistedSong, error) {
	row := r.db.QueryRow("SELECT "+songColumns+" FROM songs WHERE id = ?", id)
	return scanSong(row)
}

// GetByName retrieves a song by its exact name
func (r *SongRepository) GetByName(name string) (*models.PersistedSong, error) {
	row := r.db.QueryRow("SELECT "+songColumns+" FROM songs WHERE name = ?", name)
	return scanSong(row)
}

// Update writes the song's name and counters
func (r *SongRepository) Update(song *models.PersistedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	now := time.Now()
	song.SetUpdatedAt(now)

	query := `
		UPDATE songs
		SET name = ?, wins = ?, appearances = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, song.Name(), song.Wins(), song.Appearances(), now, song.ID())
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", shared.ErrSongExists, song.Name())
	}
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	return expectOne(result, song.ID())
}

// Delete removes a song by ID
func (r *SongRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return expectOne(result, id)
}

// DeleteByName removes a song by name
func (r *SongRepository) DeleteByName(name string) error {
	result, err := r.db.Exec("DELETE FROM songs WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return expectOne(result, name)
}

// List retrieves songs in insertion order. The optional "name" criterion filters by exact name.
func (r *SongRepository) List(criteria map[string]any) ([]*models.PersistedSong, error) {
	query := "SELECT " + songColumns + " FROM songs"
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " WHERE name = ?"
		args = append(args, name)
	}
	query += " ORDER BY sequence ASC"

	return r.query(query, args...)
}

// Count returns the number of songs in the pool
func (r *SongRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

// RecordVote gives both songs an appearance and the selected song a win, and logs the vote, in one transaction.
func (r *SongRepository) RecordVote(selected, other string) error {
	if selected == other {
		return shared.ErrIdenticalSongs
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	update := `
		UPDATE songs
		SET appearances = appearances + 1, wins = wins + ?, updated_at = ?
		WHERE name = ?
	`
	for _, side := range []struct {
		name string
		won  int
	}{{selected, 1}, {other, 0}} {
		result, err := tx.Exec(update, side.won, now, side.name)
		if err != nil {
			return fmt.Errorf("failed to record vote: %w", err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		} else if n == 0 {
			return fmt.Errorf("%w: %s", shared.ErrVoteUnknownSong, side.name)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO votes (id, selected, other, created_at) VALUES (?, ?, ?, ?)",
		shared.GenerateID(), selected, other, now,
	); err != nil {
		return fmt.Errorf("failed to log vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// Leaderboard returns every song ranked by win rate desc, wins desc, appearances asc, then name desc.
func (r *SongRepository) Leaderboard() ([]models.LeaderboardRow, error) {
	query := `
		SELECT ` + songColumns + `
		FROM songs
		ORDER BY
			CASE WHEN appearances = 0 THEN 0.0 ELSE CAST(wins AS REAL) / appearances END DESC,
			wins DESC,
			appearances ASC,
			name DESC
	`
	songs, err := r.query(query)
	if err != nil {
		return nil, err
	}

	rows := make([]models.LeaderboardRow, len(songs))
	for i, s := range songs {
		rows[i] = s.LeaderboardRow()
	}
	return rows, nil
}

func (r *SongRepository) query(query string, args ...any) ([]*models.PersistedSong, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.PersistedSong
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return songs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanSong scans a [sql.Row] or the current row of [sql.Rows] into a [models.PersistedSong]
func scanSong(s scanner) (*models.PersistedSong, error) {
	var (
		id          string
		sequence    int
		name        string
		wins        int
		appearances int
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := s.Scan(&id, &sequence, &name, &wins, &appearances, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	song := models.NewPersistedSong(sequence, name)
	song.SetID(id)
	song.SetCounters(wins, appearances)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	return song, nil
}

func expectOne(result sql.Result, key string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, key)
	}
	return nil
}
