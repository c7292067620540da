package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSongs Phase = iota
	FetchPair
	FetchLeaderboard
	RefreshDone
	ImportSongs
)

func (p Phase) String() string {
	switch p {
	case FetchSongs:
		return "fetch_songs"
	case FetchPair:
		return "fetch_pair"
	case FetchLeaderboard:
		return "fetch_leaderboard"
	case RefreshDone:
		return "refresh_done"
	case ImportSongs:
		return "import_songs"
	default:
		return ""
	}
}

func loadUpdate(p Phase) ProgressUpdate {
	var msg string
	switch p {
	case FetchSongs:
		msg = "Loading songs..."
	case FetchPair:
		msg = "Loading next pair..."
	case FetchLeaderboard:
		msg = "Loading leaderboard..."
	}
	return ProgressUpdate{Phase: p, Step: 1, Total: 1, Message: msg}
}

func refreshDoneUpdate(s *Snapshot) ProgressUpdate {
	msg := "Refresh complete"
	if err := s.Err(); err != nil {
		msg = fmt.Sprintf("Refresh finished with errors: %v", err)
	}
	return ProgressUpdate{Phase: RefreshDone, Step: 1, Total: 1, Message: msg, Data: s}
}

func importingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding: %s...", step, total, name),
	}
}

func importCompletedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, name),
	}
}

func importFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
