package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrInvalidResponse    = fmt.Errorf("invalid response body")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Voting domain errors
	ErrSongNotFound    = fmt.Errorf("song not found")
	ErrSongExists      = fmt.Errorf("song already exists")
	ErrNotEnoughSongs  = fmt.Errorf("not enough songs")
	ErrIdenticalSongs  = fmt.Errorf("songs must be distinct")
	ErrVoteUnknownSong = fmt.Errorf("unknown song in vote")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
