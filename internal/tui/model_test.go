package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/plantpal/internal/engine"
	"github.com/julianstephens/plantpal/internal/models"
	"github.com/julianstephens/plantpal/internal/storage/sqlite"
)

func setupTestModel(t *testing.T, withPlant bool) Model {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := engine.New(store, engine.Options{Clock: func() time.Time { return now }})
	if withPlant {
		_, err := svc.CreatePlant("tester", "Ivy")
		require.NoError(t, err)
	}
	return NewModel(svc, "tester")
}

// step runs cmd and feeds its message back into the model
func step(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	next, cmd := m.Update(cmd())
	return next.(Model), cmd
}

func press(m Model, keys string) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return next.(Model), cmd
}

func TestModelLoadsGarden(t *testing.T) {
	m := setupTestModel(t, true)
	assert.Contains(t, m.View(), "Loading")

	m, _ = step(t, m, m.Init())
	require.NoError(t, m.err)
	require.NotNil(t, m.snapshot)

	view := m.View()
	assert.Contains(t, view, "Ivy the seedling")
	assert.Contains(t, view, "water ready")
}

func TestModelShowsMissingPlant(t *testing.T) {
	m := setupTestModel(t, false)
	m, _ = step(t, m, m.Init())
	assert.True(t, errors.Is(m.err, engine.ErrNoPlantFound))
	assert.Contains(t, m.View(), "plant create")
}

func TestModelCareAction(t *testing.T) {
	m := setupTestModel(t, true)
	m, _ = step(t, m, m.Init())

	m, cmd := press(m, "w")
	m, refresh := step(t, m, cmd)
	require.NoError(t, m.err)
	assert.NotEmpty(t, m.status)

	m, _ = step(t, m, refresh)
	assert.Equal(t, 1, m.historyModel.Len())
	assert.Positive(t, m.snapshot.Cooldowns[models.CareWater])

	// Second watering is on cooldown
	m, cmd = press(m, "w")
	m, _ = step(t, m, cmd)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "given water")
}

func TestModelTabs(t *testing.T) {
	m := setupTestModel(t, true)
	m, _ = step(t, m, m.Init())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, StateHistory, m.state)
	assert.Contains(t, m.View(), "No activity yet")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, StateGarden, m.state)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	assert.Equal(t, StateHistory, m.state)
}

func TestModelJournalFormCancel(t *testing.T) {
	m := setupTestModel(t, true)
	m, _ = step(t, m, m.Init())

	m, _ = press(m, "j")
	assert.Equal(t, StateJournal, m.state)
	require.NotNil(t, m.form)

	// q is text while journaling, not quit
	m, _ = press(m, "q")
	assert.False(t, m.quitting)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, StateGarden, m.state)
	assert.Nil(t, m.form)
}

func TestModelJournalCommand(t *testing.T) {
	m := setupTestModel(t, true)
	m, _ = step(t, m, m.Init())

	m, refresh := step(t, m, m.journal("what a wonderful, happy day"))
	require.NoError(t, m.err)
	assert.True(t, strings.Contains(m.status, "mood"), "status %q", m.status)

	m, _ = step(t, m, refresh)
	assert.Positive(t, m.snapshot.Plant.GrowthPoints)
}

func TestModelQuit(t *testing.T) {
	m := setupTestModel(t, true)
	m, cmd := press(m, "q")
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
