package models

import (
	"fmt"
	"strings"
	"time"
)

var _ Model = (*PersistedSong)(nil)

// PersistedSong is a song row stored by the reference server.
type PersistedSong struct {
	id          string
	sequence    int
	name        string
	wins        int
	appearances int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPersistedSong creates a song with zeroed counters.
func NewPersistedSong(sequence int, name string) *PersistedSong {
	now := time.Now()
	return &PersistedSong{
		sequence:  sequence,
		name:      name,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *PersistedSong) ID() string           { return s.id }
func (s *PersistedSong) Sequence() int        { return s.sequence }
func (s *PersistedSong) Name() string         { return s.name }
func (s *PersistedSong) Wins() int            { return s.wins }
func (s *PersistedSong) Appearances() int     { return s.appearances }
func (s *PersistedSong) CreatedAt() time.Time { return s.createdAt }
func (s *PersistedSong) UpdatedAt() time.Time { return s.updatedAt }

func (s *PersistedSong) SetID(id string)          { s.id = id }
func (s *PersistedSong) SetSequence(seq int)      { s.sequence = seq }
func (s *PersistedSong) SetName(name string)      { s.name = name }
func (s *PersistedSong) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *PersistedSong) SetUpdatedAt(t time.Time) { s.updatedAt = t }
func (s *PersistedSong) SetCounters(wins, appearances int) {
	s.wins = wins
	s.appearances = appearances
}

// WinRate is wins divided by appearances, or 0 for a song that has never appeared.
func (s *PersistedSong) WinRate() float64 {
	if s.appearances <= 0 {
		return 0
	}
	return float64(s.wins) / float64(s.appearances)
}

// Validate checks the name and counter invariants.
func (s *PersistedSong) Validate() error {
	if strings.TrimSpace(s.name) == "" {
		return fmt.Errorf("name is required")
	}
	if s.wins < 0 || s.appearances < 0 {
		return fmt.Errorf("counters must not be negative")
	}
	if s.wins > s.appearances {
		return fmt.Errorf("wins (%d) exceed appearances (%d)", s.wins, s.appearances)
	}
	return nil
}

// Song converts the entity to its wire representation.
func (s *PersistedSong) Song() Song {
	return Song{Name: s.name, Wins: s.wins, Appearances: s.appearances, WinRate: s.WinRate()}
}

// LeaderboardRow converts the entity to a leaderboard entry.
func (s *PersistedSong) LeaderboardRow() LeaderboardRow {
	return LeaderboardRow{Name: s.name, WinRate: s.WinRate(), Wins: s.wins, Appearances: s.appearances}
}
