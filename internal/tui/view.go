package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/constants"
	apperrors "github.com/julianstephens/plantpal/internal/errors"
	"github.com/julianstephens/plantpal/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateGarden:
		content = m.viewGarden()
	case StateHistory:
		content = docStyle.Render(m.historyModel.View())
	case StateJournal:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Garden", "History"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render(apperrors.Describe(m.err))
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewGarden() string {
	if m.snapshot == nil {
		return docStyle.Render("Loading your garden...")
	}
	snap := m.snapshot
	p := snap.Plant

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s %s the %s", cli.StageIcon(p.Stage), p.Name, p.Stage)),
		"",
		row("Growth", fmt.Sprintf("%d points", p.GrowthPoints)),
		row("Health", fmt.Sprintf("%s %d (%s)", cli.Meter(p.HealthScore, constants.MaxHealth, 20), p.HealthScore, snap.Health)),
		row("Water", fmt.Sprintf("%s %d", cli.Meter(p.WaterLevel, constants.MaxWater, 20), p.WaterLevel)),
	}
	if snap.Mood != nil {
		lines = append(lines, row("Mood", fmt.Sprintf("%s (%.2f)", snap.Mood.Label, snap.Mood.Score)))
	}
	lines = append(lines, row("Trend", string(snap.Trend.Trend)))

	var care []string
	for _, a := range models.CareActions {
		care = append(care, fmt.Sprintf("%s %s", a, cli.FormatCooldown(snap.Cooldowns[a])))
	}
	lines = append(lines, row("Care", strings.Join(care, " · ")))

	switch {
	case snap.Neglect.Wilting:
		lines = append(lines, "", dangerStyle.Render(fmt.Sprintf("%s is wilting. Journal to help it recover.", p.Name)))
	case snap.Neglect.Warning:
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("%d day(s) without a journal entry.", snap.Neglect.ConsecutiveMissedDays)))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
