package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/plantpal/internal/models"
)

type Item struct {
	Log models.ActivityLog
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s", icon(i.Log.ActivityType), i.Log.Note)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Log.CreatedAt.Local().Format("Jan 2 15:04"), i.Log.ActivityType)
	if i.Log.GrowthImpact != 0 {
		desc += fmt.Sprintf(" | %+d growth", i.Log.GrowthImpact)
	}
	return desc
}

func (i Item) FilterValue() string { return string(i.Log.ActivityType) + " " + i.Log.Note }

func icon(t models.ActivityType) string {
	switch t {
	case models.ActivityMoodGrowth:
		return "✎"
	case models.ActivityStageChange:
		return "★"
	case models.ActivityWilting:
		return "🥀"
	case models.ActivityWatered:
		return "💧"
	case models.ActivityFertilized:
		return "🧪"
	case models.ActivitySunshine:
		return "☀"
	case models.ActivityMusicBoost:
		return "♪"
	default:
		return "•"
	}
}

type Model struct {
	list list.Model
}

func New(logs []models.ActivityLog, width, height int) Model {
	l := list.New(items(logs), list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // Help is rendered by the main model
	return Model{list: l}
}

func items(logs []models.ActivityLog) []list.Item {
	out := make([]list.Item, len(logs))
	for i, l := range logs {
		out[i] = Item{Log: l}
	}
	return out
}

func (m *Model) SetLogs(logs []models.ActivityLog) {
	m.list.SetItems(items(logs))
}

// Filtering reports whether the list is capturing keystrokes
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No activity yet.\n  Write a journal entry to get started."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
