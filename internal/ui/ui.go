package ui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/services"
	"github.com/desertthunder/versus/internal/shared"
	"github.com/desertthunder/versus/internal/tasks"
)

// focusArea is the pane receiving keys.
type focusArea int

const (
	focusSongs focusArea = iota
	focusInput
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	api       services.VotingAPI
	refresher *tasks.Refresher
	logger    *log.Logger

	width  int
	height int
	focus  focusArea

	songs    list.Model
	songsErr string
	input    textinput.Model
	adding   bool
	removing map[string]bool

	pair pairWidget

	board    []models.LeaderboardRow
	boardErr string

	songsGen generation
	pairGen  generation
	boardGen generation

	alerts []string

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model backed by api. Loads go through refresher, or a new one over api when nil.
// A nil logger discards output.
func NewModel(ctx context.Context, api services.VotingAPI, refresher *tasks.Refresher, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "New song name"
	input.CharLimit = shared.MaxSongNameLength
	input.Prompt = "+ "

	if refresher == nil {
		refresher = tasks.NewRefresher(api)
		refresher.SetLogger(logger)
	}

	return &Model{
		ctx:       ctx,
		api:       api,
		refresher: refresher,
		logger:    logger,
		width:     defaultWidth,
		height:    defaultHeight,
		songs:     newSongList(defaultWidth/2, defaultHeight-8),
		input:     input,
		removing:  make(map[string]bool),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads every view.
func (m *Model) Init() tea.Cmd {
	return m.refreshAll()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songs.SetSize(max(msg.Width/2-4, 20), max(msg.Height-10, 5))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if len(m.alerts) > 0 {
			return m.handleAlertKeys(msg)
		}
		if m.focus == focusInput {
			return m.handleInputKeys(msg)
		}
		return m.handleSongKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRefreshed:
		d := msg.data.(refreshedData)
		m.applySongs(d.gens.songs, d.snap.Songs, d.snap.SongsErr)
		if m.pairGen.accept(d.gens.pair) {
			m.pair.apply(d.snap.Pair, d.snap.PairErr)
		}
		m.applyBoard(d.gens.board, d.snap.Leaderboard, d.snap.LeaderboardErr)
		return m, nil

	case MsgLeaderboardLoaded:
		d := msg.data.(leaderboardData)
		m.applyBoard(d.gen, d.rows, d.err)
		return m, nil

	case MsgSongAdded:
		d := msg.data.(mutationData)
		m.adding = false
		if d.err != nil {
			m.logger.Warn("add song failed", "name", d.name, "error", d.err)
			m.showAlert(services.Message(d.err, "Failed to add song"))
			return m, nil
		}
		m.logger.Info("song added", "name", d.name)
		m.input.Reset()
		return m, m.refreshAll()

	case MsgSongRemoved:
		d := msg.data.(mutationData)
		delete(m.removing, d.name)
		if d.err != nil {
			m.logger.Warn("remove song failed", "name", d.name, "error", d.err)
			m.showAlert(services.Message(d.err, "Failed to remove song"))
			return m, nil
		}
		m.logger.Info("song removed", "name", d.name)
		return m, m.refreshAll()

	case MsgVoted:
		d := msg.data.(votedData)
		m.pair.finishVote(d.err)
		if d.err != nil {
			m.logger.Warn("vote failed", "selected", d.ballot.Selected, "other", d.ballot.Other, "error", d.err)
			m.showAlert(services.Message(d.err, "Failed to record vote"))
			return m, nil
		}
		m.logger.Info("vote recorded", "selected", d.ballot.Selected, "other", d.ballot.Other)
		return m, m.refreshAll()
	}
	return m, nil
}

func (m *Model) applySongs(gen uint64, songs []models.Song, err error) {
	if !m.songsGen.accept(gen) {
		return
	}
	if err != nil {
		m.logger.Warn("load songs failed", "error", err)
		m.songsErr = services.Message(err, "Failed to load songs")
		return
	}
	m.songsErr = ""
	m.songs.SetItems(songItems(songs))
}

func (m *Model) applyBoard(gen uint64, rows []models.LeaderboardRow, err error) {
	if !m.boardGen.accept(gen) {
		return
	}
	if err != nil {
		m.logger.Warn("load leaderboard failed", "error", err)
		m.boardErr = services.Message(err, "Failed to load leaderboard")
		return
	}
	m.boardErr = ""
	m.board = rows
}

func (m *Model) showAlert(text string) {
	m.alerts = append(m.alerts, text)
}

func (m *Model) handleAlertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.dismiss):
		m.alerts = m.alerts[1:]
	}
	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.submit):
		return m, m.addSong()
	case key.Matches(msg, m.keys.cancel):
		m.focus = focusSongs
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSongKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.remove):
		return m, m.removeSelected()
	case key.Matches(msg, m.keys.voteLeft):
		return m, m.submitVote(true)
	case key.Matches(msg, m.keys.voteRight):
		return m, m.submitVote(false)
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadLeaderboard()
	}

	var cmd tea.Cmd
	m.songs, cmd = m.songs.Update(msg)
	return m, cmd
}

// refreshAll reloads songs, pair and leaderboard together.
func (m *Model) refreshAll() tea.Cmd {
	gens := refreshGens{songs: m.songsGen.next(), pair: m.pairGen.next(), board: m.boardGen.next()}
	m.pair.startLoading()

	ctx, refresher := m.ctx, m.refresher
	return func() tea.Msg {
		return refreshedMsg(gens, refresher.RefreshAll(ctx, nil))
	}
}

func (m *Model) loadLeaderboard() tea.Cmd {
	gen := m.boardGen.next()
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		rows, err := api.Leaderboard(ctx)
		return leaderboardLoadedMsg(gen, rows, err)
	}
}

// addSong submits the input. Blank input and a second submit while one is pending are no-ops.
func (m *Model) addSong() tea.Cmd {
	name := shared.NormalizeName(m.input.Value())
	if name == "" || m.adding {
		return nil
	}
	m.adding = true

	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return songAddedMsg(name, api.AddSong(ctx, name))
	}
}

func (m *Model) removeSelected() tea.Cmd {
	item, ok := m.songs.SelectedItem().(songItem)
	if !ok {
		return nil
	}
	name := item.song.Name
	if m.removing[name] {
		return nil
	}
	m.removing[name] = true

	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return songRemovedMsg(name, api.RemoveSong(ctx, name))
	}
}

func (m *Model) submitVote(leftWins bool) tea.Cmd {
	ballot, ok := m.pair.startVote(leftWins)
	if !ok {
		return nil
	}

	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return votedMsg(ballot, api.Vote(ctx, ballot.Selected, ballot.Other))
	}
}
