package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/engine"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/tui/components/history"
)

type SessionState int

const (
	StateGarden SessionState = iota
	StateHistory
	StateJournal
)

// tabCount is the number of states reachable with tab
const tabCount = 2

// snapshotMsg carries a fresh read of the plant and its history
type snapshotMsg struct {
	snapshot engine.Snapshot
	logs     []models.ActivityLog
	err      error
}

// actionMsg reports the outcome of a journal entry or care action
type actionMsg struct {
	status string
	err    error
}

type Model struct {
	engine       *engine.Service
	userID       string
	state        SessionState
	keys         KeyMap
	help         help.Model
	historyModel history.Model
	form         *huh.Form
	journalText  string
	snapshot     *engine.Snapshot
	status       string
	err          error
	quitting     bool
	width        int
	height       int
}

func NewModel(svc *engine.Service, userID string) Model {
	return Model{
		engine:       svc,
		userID:       userID,
		state:        StateGarden,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		historyModel: history.New(nil, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	svc, userID := m.engine, m.userID
	return func() tea.Msg {
		snap, err := svc.Snapshot(userID, time.Time{})
		if err != nil {
			return snapshotMsg{err: err}
		}
		logs, err := svc.History(userID, constants.DefaultHistoryLimit*5)
		return snapshotMsg{snapshot: snap, logs: logs, err: err}
	}
}

func (m Model) care(action models.CareAction) tea.Cmd {
	svc, userID := m.engine, m.userID
	return func() tea.Msg {
		res, err := svc.Care(userID, action, time.Time{})
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: res.Log.Note}
	}
}

func (m Model) journal(text string) tea.Cmd {
	svc, userID := m.engine, m.userID
	return func() tea.Msg {
		res, err := svc.RecordJournal(userID, text, time.Time{})
		if err != nil {
			return actionMsg{err: err}
		}
		status := res.Transition.Logs[0].Note
		if len(res.Suggestions) > 0 {
			status += " · " + res.Suggestions[0]
		}
		return actionMsg{status: status}
	}
}

func (m *Model) newJournalForm() *huh.Form {
	m.journalText = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How are you feeling today?").
				CharLimit(4000).
				Value(&m.journalText),
		),
	).WithShowHelp(true)
}
