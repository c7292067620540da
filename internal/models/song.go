package models

import (
	"encoding/json"
	"fmt"
)

// Song is a member of the voting pool as returned by GET /api/songs.
//
// The backend owns the counters and guarantees Wins <= Appearances.
type Song struct {
	Name        string  `json:"name"`
	Wins        int     `json:"wins"`
	Appearances int     `json:"appearances"`
	WinRate     float64 `json:"winRate,omitempty"`
}

// Label renders the song's record as "{wins}/{appearances} wins".
func (s Song) Label() string {
	return fmt.Sprintf("%d/%d wins", s.Wins, s.Appearances)
}

// Pair is the ordered matchup offered to the voter, sent on the wire as ["left", "right"].
type Pair struct {
	Left  string
	Right string
}

// IsZero reports whether no pair has been loaded.
func (p Pair) IsZero() bool {
	return p.Left == "" && p.Right == ""
}

// Ballot builds the vote body for the given side winning.
func (p Pair) Ballot(leftWins bool) VoteRequest {
	if leftWins {
		return VoteRequest{Selected: p.Left, Other: p.Right}
	}
	return VoteRequest{Selected: p.Right, Other: p.Left}
}

// MarshalJSON encodes the pair as a two element array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Left, p.Right})
}

// UnmarshalJSON decodes a two element array of song names.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("pair must be an array of song names: %w", err)
	}
	if len(names) != 2 {
		return fmt.Errorf("pair must contain exactly 2 songs, got %d", len(names))
	}
	p.Left, p.Right = names[0], names[1]
	return nil
}

// LeaderboardRow is one ranked entry from GET /api/leaderboard.
//
// Rows arrive pre-sorted; the index in the response is the rank.
type LeaderboardRow struct {
	Name        string  `json:"name"`
	WinRate     float64 `json:"winRate"`
	Wins        int     `json:"wins"`
	Appearances int     `json:"appearances"`
}

// AddSongRequest is the body of POST /api/songs.
type AddSongRequest struct {
	Name string `json:"name"`
}

// VoteRequest is the body of POST /api/vote.
type VoteRequest struct {
	Selected string `json:"selected"`
	Other    string `json:"other"`
}

// ErrorResponse is the error envelope carried by non-2xx responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// OKResponse is the body returned by successful mutations.
type OKResponse struct {
	OK bool `json:"ok"`
}
