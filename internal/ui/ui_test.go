package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/services"
	"github.com/desertthunder/versus/internal/tasks"
	tu "github.com/desertthunder/versus/internal/testing"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func press(m *Model, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

// drain runs cmd and feeds each resulting Msg back into m until no command is left.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 10 {
			t.Fatal("command chain did not settle")
		}
		msg, ok := cmd().(Msg)
		if !ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func apiErr(msg string) error {
	return &services.RequestError{Status: 400, Message: msg}
}

func newMockAPI() *tu.MockVotingAPI {
	return &tu.MockVotingAPI{
		Songs: []models.Song{{Name: "Alpha", Wins: 1, Appearances: 2}, {Name: "Bravo", Wins: 1, Appearances: 2}},
		Pair:  models.Pair{Left: "Alpha", Right: "Bravo"},
		Rows: []models.LeaderboardRow{
			{Name: "Bravo", WinRate: 0.5, Wins: 1, Appearances: 2},
			{Name: "Alpha", WinRate: 0.5, Wins: 1, Appearances: 2},
		},
	}
}

// newLoadedModel returns a model that has completed its initial refresh.
func newLoadedModel(t *testing.T, api *tu.MockVotingAPI) *Model {
	t.Helper()
	m := NewModel(context.Background(), api, nil, nil)
	drain(t, m, m.Init())
	api.Reset()
	return m
}

func assertRefreshCalls(t *testing.T, api *tu.MockVotingAPI) {
	t.Helper()
	for _, name := range []string{"ListSongs", "GetPair", "Leaderboard"} {
		if n := api.CallCount(name); n != 1 {
			t.Errorf("expected 1 %s call after mutation, got %d (calls: %v)", name, n, api.Calls())
		}
	}
}

func TestModelInit(t *testing.T) {
	api := newMockAPI()
	m := NewModel(context.Background(), api, nil, nil)

	if m.pair.canVote() {
		t.Error("vote keys must be disabled before the first pair loads")
	}

	drain(t, m, m.Init())

	if len(api.Calls()) != 3 {
		t.Errorf("expected 3 calls on init, got %v", api.Calls())
	}
	if items := m.songs.Items(); len(items) != 2 || items[0].(songItem).song.Name != "Alpha" {
		t.Errorf("unexpected song items %v", items)
	}
	if got := m.songs.Items()[0].(songItem).Description(); got != "1/2 wins" {
		t.Errorf("expected label '1/2 wins', got %q", got)
	}
	if !m.pair.canVote() {
		t.Error("expected widget to be Ready after pair load")
	}
	if len(m.board) != 2 {
		t.Errorf("expected 2 leaderboard rows, got %d", len(m.board))
	}
}

func TestModelUsesGivenRefresher(t *testing.T) {
	direct := newMockAPI()
	loads := newMockAPI()
	loads.Songs = []models.Song{{Name: "From Refresher"}}

	m := NewModel(context.Background(), direct, tasks.NewRefresher(loads), nil)
	drain(t, m, m.Init())

	if len(loads.Calls()) != 3 {
		t.Errorf("expected refresh to use the given refresher, got %v", loads.Calls())
	}
	if len(direct.Calls()) != 0 {
		t.Errorf("expected no loads through the direct API, got %v", direct.Calls())
	}
	if items := m.songs.Items(); len(items) != 1 || items[0].(songItem).song.Name != "From Refresher" {
		t.Errorf("unexpected items %v", items)
	}

	drain(t, m, press(m, runes("h")))
	if len(direct.Votes()) != 1 {
		t.Errorf("expected vote to go through the direct API, got %v", direct.Calls())
	}
}

func TestAddSong(t *testing.T) {
	t.Run("Submits Trimmed Name And Refreshes", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		press(m, runes("a"))
		if m.focus != focusInput {
			t.Fatal("expected a to focus the input")
		}
		press(m, runes("  New Song  "))

		cmd := press(m, enterKey)
		if cmd == nil {
			t.Fatal("expected an add command")
		}
		drain(t, m, cmd)

		if added := api.Added(); len(added) != 1 || added[0] != "New Song" {
			t.Errorf("expected trimmed name to be sent, got %v", added)
		}
		if m.input.Value() != "" {
			t.Errorf("expected input cleared, got %q", m.input.Value())
		}
		assertRefreshCalls(t, api)
	})

	t.Run("Whitespace Only Is A No-op", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		press(m, runes("a"))
		m.input.SetValue("   ")

		if cmd := press(m, enterKey); cmd != nil {
			t.Error("expected no command for blank input")
		}
		if len(api.Calls()) != 0 {
			t.Errorf("expected zero calls, got %v", api.Calls())
		}
		if len(m.alerts) != 0 {
			t.Error("blank input must not raise an alert")
		}
	})

	t.Run("Second Submit While Pending Is Ignored", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		press(m, runes("a"))
		m.input.SetValue("Song")

		first := press(m, enterKey)
		if second := press(m, enterKey); second != nil {
			t.Error("expected second submit to be ignored")
		}
		drain(t, m, first)

		if n := api.CallCount("AddSong"); n != 1 {
			t.Errorf("expected exactly one AddSong call, got %d", n)
		}
		if m.adding {
			t.Error("expected in-flight flag cleared")
		}
	})

	t.Run("Failure Shows Alert And Keeps Text", func(t *testing.T) {
		api := newMockAPI()
		api.AddErr = apiErr("Song exists or invalid name")
		m := newLoadedModel(t, api)

		press(m, runes("a"))
		m.input.SetValue("Alpha")
		drain(t, m, press(m, enterKey))

		if len(m.alerts) != 1 || m.alerts[0] != "Song exists or invalid name" {
			t.Errorf("expected alert with detail, got %v", m.alerts)
		}
		if m.input.Value() != "Alpha" {
			t.Errorf("expected input kept, got %q", m.input.Value())
		}
		if calls := api.Calls(); len(calls) != 1 {
			t.Errorf("expected no refresh after failure, got %v", calls)
		}
	})

	t.Run("Esc Leaves Input", func(t *testing.T) {
		m := newLoadedModel(t, newMockAPI())
		press(m, runes("a"))
		press(m, escKey)
		if m.focus != focusSongs {
			t.Error("expected esc to return focus to the songs pane")
		}
	})
}

func TestRemoveSong(t *testing.T) {
	t.Run("Success Refreshes All", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		drain(t, m, press(m, runes("x")))

		if removed := api.Removed(); len(removed) != 1 || removed[0] != "Alpha" {
			t.Errorf("expected Alpha removed, got %v", removed)
		}
		assertRefreshCalls(t, api)
	})

	t.Run("Delete Key Removes Selected", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		press(m, tea.KeyMsg{Type: tea.KeyDown})
		drain(t, m, press(m, tea.KeyMsg{Type: tea.KeyDelete}))

		if removed := api.Removed(); len(removed) != 1 || removed[0] != "Bravo" {
			t.Errorf("expected Bravo removed, got %v", removed)
		}
	})

	t.Run("Failure Shows Alert Without Refresh", func(t *testing.T) {
		api := newMockAPI()
		api.RemoveErr = apiErr("Song not found")
		m := newLoadedModel(t, api)

		drain(t, m, press(m, runes("x")))

		if len(m.alerts) != 1 || m.alerts[0] != "Song not found" {
			t.Fatalf("expected alert, got %v", m.alerts)
		}
		if calls := api.Calls(); len(calls) != 1 || calls[0] != "RemoveSong" {
			t.Errorf("expected only RemoveSong, got %v", calls)
		}
		if !strings.Contains(m.View(), "Song not found") {
			t.Error("expected alert to be rendered")
		}
	})

	t.Run("In-flight Guard Per Name", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		first := press(m, runes("x"))
		if second := press(m, runes("x")); second != nil {
			t.Error("expected duplicate removal to be ignored")
		}
		drain(t, m, first)
		if n := api.CallCount("RemoveSong"); n != 1 {
			t.Errorf("expected one RemoveSong call, got %d", n)
		}
	})

	t.Run("Empty List", func(t *testing.T) {
		api := &tu.MockVotingAPI{PairErr: apiErr("Need at least 2 songs to vote")}
		m := newLoadedModel(t, api)
		if cmd := press(m, runes("x")); cmd != nil {
			t.Error("expected no command with nothing selected")
		}
	})
}

func TestVote(t *testing.T) {
	tc := []struct {
		name   string
		key    tea.KeyMsg
		winner string
		loser  string
	}{
		{"h votes left", runes("h"), "Alpha", "Bravo"},
		{"left arrow votes left", tea.KeyMsg{Type: tea.KeyLeft}, "Alpha", "Bravo"},
		{"l votes right", runes("l"), "Bravo", "Alpha"},
		{"right arrow votes right", tea.KeyMsg{Type: tea.KeyRight}, "Bravo", "Alpha"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			api := newMockAPI()
			m := newLoadedModel(t, api)

			drain(t, m, press(m, tt.key))

			votes := api.Votes()
			if len(votes) != 1 {
				t.Fatalf("expected one vote, got %v", votes)
			}
			if votes[0].Selected != tt.winner || votes[0].Other != tt.loser {
				t.Errorf("vote = %+v, want selected=%s other=%s", votes[0], tt.winner, tt.loser)
			}
			assertRefreshCalls(t, api)
			if !m.pair.canVote() {
				t.Error("expected widget Ready after a successful vote and refresh")
			}
		})
	}

	t.Run("Keys Ignored While Loading", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		first := press(m, runes("h"))
		if second := press(m, runes("l")); second != nil {
			t.Error("expected vote keys disabled while a vote is pending")
		}
		drain(t, m, first)
		if n := api.CallCount("Vote"); n != 1 {
			t.Errorf("expected one vote, got %d", n)
		}
	})

	t.Run("Failure Alerts And Re-enables", func(t *testing.T) {
		api := newMockAPI()
		api.VoteErr = apiErr("One or both songs not found in pool")
		m := newLoadedModel(t, api)

		drain(t, m, press(m, runes("h")))

		if len(m.alerts) != 1 || m.alerts[0] != "One or both songs not found in pool" {
			t.Errorf("expected alert, got %v", m.alerts)
		}
		if !m.pair.canVote() {
			t.Error("expected widget Ready after a failed vote")
		}
		if calls := api.Calls(); len(calls) != 1 {
			t.Errorf("expected no refresh after failed vote, got %v", calls)
		}
	})

	t.Run("Failed Pair Reload Keeps Widget Disabled", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)
		api.PairErr = apiErr("Need at least 2 songs to vote")

		drain(t, m, press(m, runes("h")))

		if m.pair.canVote() {
			t.Error("expected widget to stay Loading after pair reload failure")
		}
		if m.pair.notice != "Need at least 2 songs to vote" {
			t.Errorf("unexpected notice %q", m.pair.notice)
		}
	})
}

func TestPairNotice(t *testing.T) {
	t.Run("Fewer Than Two Songs", func(t *testing.T) {
		api := &tu.MockVotingAPI{
			Songs:   []models.Song{{Name: "Solo"}},
			PairErr: apiErr("Need at least 2 songs to vote"),
		}
		m := newLoadedModel(t, api)

		if m.pair.canVote() {
			t.Error("expected vote keys disabled")
		}
		if m.pair.notice != "Need at least 2 songs to vote" {
			t.Errorf("unexpected notice %q", m.pair.notice)
		}
		if cmd := press(m, runes("h")); cmd != nil {
			t.Error("expected vote key to be ignored")
		}
		if len(api.Calls()) != 0 {
			t.Errorf("expected no calls, got %v", api.Calls())
		}
		if !strings.Contains(m.View(), "Need at least 2 songs to vote") {
			t.Error("expected notice in view")
		}
	})

	t.Run("Fallback Notice", func(t *testing.T) {
		api := &tu.MockVotingAPI{PairErr: &services.RequestError{Status: 400}}
		m := newLoadedModel(t, api)
		if m.pair.notice != noPairNotice {
			t.Errorf("expected fallback notice, got %q", m.pair.notice)
		}
	})

	t.Run("Notice Cleared On Success", func(t *testing.T) {
		api := &tu.MockVotingAPI{PairErr: apiErr("Need at least 2 songs to vote")}
		m := newLoadedModel(t, api)

		api.PairErr = nil
		api.Pair = models.Pair{Left: "A", Right: "B"}
		drain(t, m, m.refreshAll())

		if m.pair.notice != "" || !m.pair.canVote() {
			t.Errorf("expected notice cleared and Ready, got %+v", m.pair)
		}
	})
}

func TestLeaderboard(t *testing.T) {
	t.Run("Keeps Fetched Order", func(t *testing.T) {
		api := newMockAPI()
		api.Rows = []models.LeaderboardRow{
			{Name: "Zulu", WinRate: 0.1, Wins: 1, Appearances: 10},
			{Name: "Yankee", WinRate: 0.567, Wins: 17, Appearances: 30},
		}
		m := newLoadedModel(t, api)

		view := m.View()
		if strings.Index(view, "Zulu") > strings.Index(view, "Yankee") {
			t.Error("leaderboard must render rows in fetched order")
		}
		if !strings.Contains(view, "56.7%") {
			t.Error("expected one-decimal win rate")
		}
	})

	t.Run("Refresh Key Reloads Only Leaderboard", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)

		api.Rows = []models.LeaderboardRow{{Name: "Only"}}
		drain(t, m, press(m, runes("r")))

		if calls := api.Calls(); len(calls) != 1 || calls[0] != "Leaderboard" {
			t.Errorf("expected a single Leaderboard call, got %v", calls)
		}
		if len(m.board) != 1 || m.board[0].Name != "Only" {
			t.Errorf("unexpected board %v", m.board)
		}
	})

	t.Run("Failure Shown Inline", func(t *testing.T) {
		api := newMockAPI()
		api.LeaderboardErr = errors.New("connection refused")
		m := newLoadedModel(t, api)

		if len(m.alerts) != 0 {
			t.Error("leaderboard failure must not raise an alert")
		}
		if m.boardErr != "connection refused" {
			t.Errorf("unexpected inline error %q", m.boardErr)
		}
		if !strings.Contains(m.View(), "connection refused") {
			t.Error("expected inline error in view")
		}
	})
}

func TestStaleResultsDropped(t *testing.T) {
	api := newMockAPI()
	m := newLoadedModel(t, api)

	older := m.refreshAll()
	olderMsg := older()

	api.Songs = []models.Song{{Name: "Fresh"}}
	api.Rows = []models.LeaderboardRow{{Name: "Fresh"}}
	api.Pair = models.Pair{Left: "Fresh", Right: "Alpha"}
	newer := m.refreshAll()
	m.Update(newer())

	m.Update(olderMsg)

	if items := m.songs.Items(); len(items) != 1 || items[0].(songItem).song.Name != "Fresh" {
		t.Errorf("stale songs overwrote newer ones: %v", items)
	}
	if m.pair.pair.Left != "Fresh" {
		t.Errorf("stale pair overwrote newer one: %+v", m.pair.pair)
	}
	if len(m.board) != 1 || m.board[0].Name != "Fresh" {
		t.Errorf("stale leaderboard overwrote newer one: %v", m.board)
	}
}

func TestAlerts(t *testing.T) {
	t.Run("Swallow Keys Until Dismissed", func(t *testing.T) {
		api := newMockAPI()
		m := newLoadedModel(t, api)
		m.showAlert("first")
		m.showAlert("second")

		for _, k := range []tea.KeyMsg{runes("h"), runes("x"), runes("r"), runes("q"), runes("a")} {
			if cmd := press(m, k); cmd != nil {
				t.Errorf("key %q should be swallowed by the alert", k.String())
			}
		}
		if len(api.Calls()) != 0 {
			t.Errorf("expected no calls while alert shown, got %v", api.Calls())
		}

		press(m, enterKey)
		if len(m.alerts) != 1 || m.alerts[0] != "second" {
			t.Errorf("expected queued alert next, got %v", m.alerts)
		}
		press(m, runes(" "))
		if len(m.alerts) != 0 {
			t.Error("expected space to dismiss")
		}
	})

	t.Run("Ctrl+C Quits", func(t *testing.T) {
		m := newLoadedModel(t, newMockAPI())
		m.showAlert("boom")

		cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestQuit(t *testing.T) {
	m := newLoadedModel(t, newMockAPI())
	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestWindowSize(t *testing.T) {
	m := newLoadedModel(t, newMockAPI())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 || m.height != 40 {
		t.Errorf("expected size to be stored, got %dx%d", m.width, m.height)
	}
	if m.songs.Width() != 56 {
		t.Errorf("expected list width 56, got %d", m.songs.Width())
	}
}
