package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/versus/internal/models"
)

var _ VotingAPI = (*VotingService)(nil)

// VotingService implements [VotingAPI] over a [Gateway].
type VotingService struct {
	gw *Gateway
}

// NewVotingService creates a typed client for the voting endpoints.
func NewVotingService(gw *Gateway) *VotingService {
	return &VotingService{gw: gw}
}

// ListSongs calls GET /api/songs.
func (v *VotingService) ListSongs(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := v.gw.Request(ctx, http.MethodGet, "/api/songs", nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// AddSong calls POST /api/songs with {"name": name}.
func (v *VotingService) AddSong(ctx context.Context, name string) error {
	return v.gw.Request(ctx, http.MethodPost, "/api/songs", models.AddSongRequest{Name: name}, nil)
}

// RemoveSong calls DELETE /api/songs/{name}.
func (v *VotingService) RemoveSong(ctx context.Context, name string) error {
	return v.gw.Request(ctx, http.MethodDelete, SongPath(name), nil, nil)
}

// GetPair calls GET /api/pair.
func (v *VotingService) GetPair(ctx context.Context) (models.Pair, error) {
	var pair models.Pair
	if err := v.gw.Request(ctx, http.MethodGet, "/api/pair", nil, &pair); err != nil {
		return models.Pair{}, err
	}
	return pair, nil
}

// Vote calls POST /api/vote with {"selected": winner, "other": loser}.
func (v *VotingService) Vote(ctx context.Context, winner, loser string) error {
	return v.gw.Request(ctx, http.MethodPost, "/api/vote", models.VoteRequest{Selected: winner, Other: loser}, nil)
}

// Leaderboard calls GET /api/leaderboard.
func (v *VotingService) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	var rows []models.LeaderboardRow
	if err := v.gw.Request(ctx, http.MethodGet, "/api/leaderboard", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SongPath builds the per-song resource path.
func SongPath(name string) string {
	return "/api/songs/" + EscapeSegment(name)
}

// componentUnescaper undoes the parts of [url.QueryEscape] that encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeSegment percent-encodes s for use as a single path segment, the way encodeURIComponent does.
//
// Letters, digits and - _ . ! ~ * ' ( ) pass through; everything else, including & / ? # and spaces, is escaped.
func EscapeSegment(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
