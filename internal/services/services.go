// package services defines interface VotingAPI for interacting with the voting backend
package services

import (
	"context"

	"github.com/desertthunder/versus/internal/models"
)

// VotingAPI defines the operations the client performs against the voting backend.
type VotingAPI interface {
	// ListSongs fetches the whole song pool in backend order.
	ListSongs(ctx context.Context) ([]models.Song, error)

	// AddSong creates a song. The caller is expected to trim the name first.
	AddSong(ctx context.Context, name string) error

	// RemoveSong deletes a song by name.
	RemoveSong(ctx context.Context, name string) error

	// GetPair fetches the next matchup.
	GetPair(ctx context.Context) (models.Pair, error)

	// Vote records winner beating loser.
	Vote(ctx context.Context, winner, loser string) error

	// Leaderboard fetches the ranked rows. Order is significant.
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
}
