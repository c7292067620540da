package ui

import (
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/services"
)

const noPairNotice = "Add at least two songs to start voting."

type pairState int

const (
	pairLoading pairState = iota
	pairReady
)

// pairWidget owns the current matchup and whether it can be voted on.
//
// Vote keys are honoured only while Ready and no vote is pending.
type pairWidget struct {
	pair   models.Pair
	state  pairState
	notice string
	voting bool
}

func (w *pairWidget) startLoading() {
	w.state = pairLoading
}

// apply stores a loaded pair, or keeps the widget Loading with a notice on failure.
func (w *pairWidget) apply(p models.Pair, err error) {
	if err != nil {
		w.state = pairLoading
		w.notice = services.Message(err, noPairNotice)
		return
	}
	w.pair = p
	w.notice = ""
	w.state = pairReady
}

func (w *pairWidget) canVote() bool {
	return w.state == pairReady && !w.voting && !w.pair.IsZero()
}

// startVote reads the pair at key-press time and moves to Loading.
func (w *pairWidget) startVote(leftWins bool) (models.VoteRequest, bool) {
	if !w.canVote() {
		return models.VoteRequest{}, false
	}
	w.state = pairLoading
	w.voting = true
	return w.pair.Ballot(leftWins), true
}

// finishVote clears the pending vote. After a failure the current pair becomes votable again.
func (w *pairWidget) finishVote(err error) {
	w.voting = false
	if err != nil && w.notice == "" && !w.pair.IsZero() {
		w.state = pairReady
	}
}

// generation tracks issued and applied load generations for one view.
type generation struct {
	issued  uint64
	applied uint64
}

func (g *generation) next() uint64 {
	g.issued++
	return g.issued
}

// accept reports whether a result of generation n is newer than the last applied one, and records it.
func (g *generation) accept(n uint64) bool {
	if n <= g.applied {
		return false
	}
	g.applied = n
	return true
}
