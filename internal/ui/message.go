package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRefreshed MsgKind = iota
	MsgLeaderboardLoaded
	MsgSongAdded
	MsgSongRemoved
	MsgVoted
)

// refreshGens carries the generation each view was issued with.
type refreshGens struct {
	songs uint64
	pair  uint64
	board uint64
}

type refreshedData struct {
	gens refreshGens
	snap *tasks.Snapshot
}

type leaderboardData struct {
	gen  uint64
	rows []models.LeaderboardRow
	err  error
}

type mutationData struct {
	name string
	err  error
}

type votedData struct {
	ballot models.VoteRequest
	err    error
}

// refreshedMsg is the constructor for [MsgRefreshed]
func refreshedMsg(gens refreshGens, snap *tasks.Snapshot) Msg {
	return Msg{kind: MsgRefreshed, data: refreshedData{gens: gens, snap: snap}}
}

// leaderboardLoadedMsg is the constructor for [MsgLeaderboardLoaded]
func leaderboardLoadedMsg(gen uint64, rows []models.LeaderboardRow, err error) Msg {
	return Msg{kind: MsgLeaderboardLoaded, data: leaderboardData{gen: gen, rows: rows, err: err}}
}

// songAddedMsg is the constructor for [MsgSongAdded]
func songAddedMsg(name string, err error) Msg {
	return Msg{kind: MsgSongAdded, data: mutationData{name: name, err: err}}
}

// songRemovedMsg is the constructor for [MsgSongRemoved]
func songRemovedMsg(name string, err error) Msg {
	return Msg{kind: MsgSongRemoved, data: mutationData{name: name, err: err}}
}

// votedMsg is the constructor for [MsgVoted]
func votedMsg(ballot models.VoteRequest, err error) Msg {
	return Msg{kind: MsgVoted, data: votedData{ballot: ballot, err: err}}
}
