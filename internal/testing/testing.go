// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/versus/internal/models"
)

// MockVotingAPI is a test double for [services.VotingAPI].
//
// Results and errors are read from the exported fields; every call is recorded.
type MockVotingAPI struct {
	Songs          []models.Song
	SongsErr       error
	Pair           models.Pair
	PairErr        error
	Rows           []models.LeaderboardRow
	LeaderboardErr error
	AddErr         error
	RemoveErr      error
	VoteErr        error

	mu      sync.Mutex
	calls   []string
	added   []string
	removed []string
	votes   []models.VoteRequest
}

func (m *MockVotingAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockVotingAPI) ListSongs(ctx context.Context) ([]models.Song, error) {
	m.record("ListSongs")
	return m.Songs, m.SongsErr
}

func (m *MockVotingAPI) AddSong(ctx context.Context, name string) error {
	m.record("AddSong")
	m.mu.Lock()
	m.added = append(m.added, name)
	m.mu.Unlock()
	return m.AddErr
}

func (m *MockVotingAPI) RemoveSong(ctx context.Context, name string) error {
	m.record("RemoveSong")
	m.mu.Lock()
	m.removed = append(m.removed, name)
	m.mu.Unlock()
	return m.RemoveErr
}

func (m *MockVotingAPI) GetPair(ctx context.Context) (models.Pair, error) {
	m.record("GetPair")
	return m.Pair, m.PairErr
}

func (m *MockVotingAPI) Vote(ctx context.Context, winner, loser string) error {
	m.record("Vote")
	m.mu.Lock()
	m.votes = append(m.votes, models.VoteRequest{Selected: winner, Other: loser})
	m.mu.Unlock()
	return m.VoteErr
}

func (m *MockVotingAPI) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	m.record("Leaderboard")
	return m.Rows, m.LeaderboardErr
}

// Calls returns the recorded method names in call order.
func (m *MockVotingAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times the named method was called.
func (m *MockVotingAPI) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

// Reset clears recorded calls.
func (m *MockVotingAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls, m.added, m.removed, m.votes = nil, nil, nil, nil
}

func (m *MockVotingAPI) Added() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.added...)
}

func (m *MockVotingAPI) Removed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

func (m *MockVotingAPI) Votes() []models.VoteRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.VoteRequest(nil), m.votes...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
