package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/services"
	"github.com/desertthunder/versus/internal/shared"
	"golang.org/x/sync/errgroup"
)

// Snapshot holds the outcome of a full refresh. Each view carries its own error.
type Snapshot struct {
	Songs          []models.Song
	SongsErr       error
	Pair           models.Pair
	PairErr        error
	Leaderboard    []models.LeaderboardRow
	LeaderboardErr error
}

// Err returns the first error in view order, or nil when every load succeeded.
func (s *Snapshot) Err() error {
	for _, err := range []error{s.SongsErr, s.PairErr, s.LeaderboardErr} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Refresher reloads the song list, vote pair and leaderboard together.
type Refresher struct {
	api    services.VotingAPI
	logger *log.Logger
}

// NewRefresher creates a Refresher backed by api.
func NewRefresher(api services.VotingAPI) *Refresher {
	return &Refresher{api: api, logger: shared.NewLogger(io.Discard)}
}

// SetLogger replaces the refresher's logger.
func (r *Refresher) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// RefreshAll runs the three view loads concurrently and returns once all have settled.
func (r *Refresher) RefreshAll(ctx context.Context, progress chan<- ProgressUpdate) *Snapshot {
	snap := &Snapshot{}
	if r.api == nil {
		err := fmt.Errorf("%w: voting API not initialized", shared.ErrServiceUnavailable)
		snap.SongsErr, snap.PairErr, snap.LeaderboardErr = err, err, err
		return snap
	}

	// Plain group: a failing load must not cancel its siblings.
	var g errgroup.Group

	g.Go(func() error {
		sendProgress(progress, loadUpdate(FetchSongs))
		snap.Songs, snap.SongsErr = r.api.ListSongs(ctx)
		r.logResult(FetchSongs, snap.SongsErr)
		return nil
	})

	g.Go(func() error {
		sendProgress(progress, loadUpdate(FetchPair))
		snap.Pair, snap.PairErr = r.api.GetPair(ctx)
		r.logResult(FetchPair, snap.PairErr)
		return nil
	})

	g.Go(func() error {
		sendProgress(progress, loadUpdate(FetchLeaderboard))
		snap.Leaderboard, snap.LeaderboardErr = r.api.Leaderboard(ctx)
		r.logResult(FetchLeaderboard, snap.LeaderboardErr)
		return nil
	})

	_ = g.Wait()
	sendProgress(progress, refreshDoneUpdate(snap))
	return snap
}

func (r *Refresher) logResult(p Phase, err error) {
	if err != nil {
		r.logger.Warn("load failed", "phase", p, "error", err)
		return
	}
	r.logger.Debug("load complete", "phase", p)
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
