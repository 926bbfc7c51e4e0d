package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/plantpal/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.historyModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		snap := msg.snapshot
		m.snapshot = &snap
		m.historyModel.SetLogs(msg.logs)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		return m, m.refresh()
	}

	if m.state == StateJournal {
		return m.updateJournal(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.state == StateHistory && m.historyModel.Filtering() {
			var cmd tea.Cmd
			m.historyModel, cmd = m.historyModel.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.Journal):
			m.state = StateJournal
			m.form = m.newJournalForm()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Water):
			return m, m.care(models.CareWater)
		case key.Matches(msg, m.keys.Fertilize):
			return m, m.care(models.CareFertilize)
		case key.Matches(msg, m.keys.Sunshine):
			return m, m.care(models.CareSunshine)
		}
	}

	if m.state == StateHistory {
		var cmd tea.Cmd
		m.historyModel, cmd = m.historyModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = StateGarden
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		text := strings.TrimSpace(m.journalText)
		m.state = StateGarden
		m.form = nil
		if text == "" {
			return m, nil
		}
		return m, m.journal(text)
	case huh.StateAborted:
		m.state = StateGarden
		m.form = nil
		return m, nil
	}
	return m, cmd
}
