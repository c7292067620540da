package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/shared"
	"github.com/mroth/weightedrand/v2"
)

const (
	detailInvalidSong   = "Song exists or invalid name"
	detailSongNotFound  = "Song not found"
	detailNotEnough     = "Need at least 2 songs to vote"
	detailNotDistinct   = "Songs must be distinct"
	detailUnknownInPool = "One or both songs not found in pool"

	maxBodyBytes = 1 << 20
)

// SongStore is the persistence the voting handler needs.
type SongStore interface {
	Create(song *models.PersistedSong) error
	DeleteByName(name string) error
	List(criteria map[string]any) ([]*models.PersistedSong, error)
	RecordVote(selected, other string) error
	Leaderboard() ([]models.LeaderboardRow, error)
}

// VotingHandler serves the voting API.
type VotingHandler struct {
	store  SongStore
	logger *log.Logger
}

// NewVotingHandler creates a [VotingHandler] backed by store.
func NewVotingHandler(store SongStore, logger *log.Logger) *VotingHandler {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &VotingHandler{store: store, logger: logger}
}

const (
	routeListSongs   = "GET /api/songs"
	routeAddSong     = "POST /api/songs"
	routeRemoveSong  = "DELETE /api/songs/{name}"
	routePair        = "GET /api/pair"
	routeVote        = "POST /api/vote"
	routeLeaderboard = "GET /api/leaderboard"
)

// Routes returns the HTTP routes this handler serves.
func (h *VotingHandler) Routes() []string {
	return []string{routeListSongs, routeAddSong, routeRemoveSong, routePair, routeVote, routeLeaderboard}
}

// ServeHTTP dispatches on the matched mux pattern.
func (h *VotingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case routeListSongs:
		h.listSongs(w, r)
	case routeAddSong:
		h.addSong(w, r)
	case routeRemoveSong:
		h.removeSong(w, r)
	case routePair:
		h.pair(w, r)
	case routeVote:
		h.vote(w, r)
	case routeLeaderboard:
		h.leaderboard(w, r)
	default:
		writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

func (h *VotingHandler) listSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.store.List(nil)
	if err != nil {
		h.internalError(w, "list songs", err)
		return
	}

	out := make([]models.Song, len(songs))
	for i, s := range songs {
		out[i] = s.Song()
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *VotingHandler) addSong(w http.ResponseWriter, r *http.Request) {
	var req models.AddSongRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := shared.NormalizeName(req.Name)
	if name == "" || utf8.RuneCountInString(name) > shared.MaxSongNameLength {
		writeDetail(w, http.StatusBadRequest, detailInvalidSong)
		return
	}

	if err := h.store.Create(models.NewPersistedSong(0, name)); err != nil {
		if errors.Is(err, shared.ErrSongExists) || errors.Is(err, shared.ErrInvalidInput) {
			writeDetail(w, http.StatusBadRequest, detailInvalidSong)
			return
		}
		h.internalError(w, "add song", err)
		return
	}

	h.logger.Debug("song added", "name", name)
	writeJSON(w, http.StatusCreated, models.OKResponse{OK: true})
}

func (h *VotingHandler) removeSong(w http.ResponseWriter, r *http.Request) {
	name := shared.NormalizeName(r.PathValue("name"))

	if err := h.store.DeleteByName(name); err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			writeDetail(w, http.StatusNotFound, detailSongNotFound)
			return
		}
		h.internalError(w, "remove song", err)
		return
	}

	h.logger.Debug("song removed", "name", name)
	writeJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

func (h *VotingHandler) pair(w http.ResponseWriter, r *http.Request) {
	songs, err := h.store.List(nil)
	if err != nil {
		h.internalError(w, "choose pair", err)
		return
	}

	pair, err := ChoosePair(songs)
	if errors.Is(err, shared.ErrNotEnoughSongs) {
		writeDetail(w, http.StatusBadRequest, detailNotEnough)
		return
	}
	if err != nil {
		h.internalError(w, "choose pair", err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (h *VotingHandler) vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	selected, other := shared.NormalizeName(req.Selected), shared.NormalizeName(req.Other)
	if req.Selected == "" || req.Other == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "selected and other are required")
		return
	}

	err := h.store.RecordVote(selected, other)
	switch {
	case err == nil:
		h.logger.Debug("vote recorded", "selected", selected, "other", other)
		writeJSON(w, http.StatusOK, models.OKResponse{OK: true})
	case errors.Is(err, shared.ErrIdenticalSongs):
		writeDetail(w, http.StatusBadRequest, detailNotDistinct)
	case errors.Is(err, shared.ErrVoteUnknownSong):
		writeDetail(w, http.StatusBadRequest, detailUnknownInPool)
	default:
		h.internalError(w, "record vote", err)
	}
}

func (h *VotingHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Leaderboard()
	if err != nil {
		h.internalError(w, "leaderboard", err)
		return
	}
	if rows == nil {
		rows = []models.LeaderboardRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *VotingHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("request failed", "op", op, "error", err)
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

// ChoosePair draws two distinct songs, favouring those with fewer appearances.
//
// Each song weighs (max appearances - its appearances + 1); the first pick is excluded from the second draw.
func ChoosePair(songs []*models.PersistedSong) (models.Pair, error) {
	if len(songs) < 2 {
		return models.Pair{}, shared.ErrNotEnoughSongs
	}

	weights := PairWeights(songs)
	choices := make([]weightedrand.Choice[int, int], len(songs))
	for i := range songs {
		choices[i] = weightedrand.NewChoice(i, weights[i])
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return models.Pair{}, fmt.Errorf("failed to build chooser: %w", err)
	}
	first := chooser.Pick()

	rest := make([]weightedrand.Choice[int, int], 0, len(choices)-1)
	for _, c := range choices {
		if c.Item != first {
			rest = append(rest, c)
		}
	}
	chooser, err = weightedrand.NewChooser(rest...)
	if err != nil {
		return models.Pair{}, fmt.Errorf("failed to build chooser: %w", err)
	}
	second := chooser.Pick()

	return models.Pair{Left: songs[first].Name(), Right: songs[second].Name()}, nil
}

// PairWeights returns the selection weight of each song, always at least 1.
func PairWeights(songs []*models.PersistedSong) []int {
	maxApps := 0
	for _, s := range songs {
		maxApps = max(maxApps, s.Appearances())
	}

	weights := make([]int, len(songs))
	for i, s := range songs {
		weights[i] = max(maxApps-s.Appearances()+1, 1)
	}
	return weights
}

// decodeBody decodes a JSON request body into v, answering 422 on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
