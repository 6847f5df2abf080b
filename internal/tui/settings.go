package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mertcano/drinktrack/internal/settings"
)

type settingsModel struct {
	settings *settings.Service
	width    int
	height   int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	indicator *string
	weekStart *string
	graph     *string
	layout    *string
	haptics   *bool
}

func newSettingsModel(s *settings.Service) settingsModel {
	ind, ws, g, l := "", "", "", ""
	h := false
	return settingsModel{
		settings:  s,
		indicator: &ind,
		weekStart: &ws,
		graph:     &g,
		layout:    &l,
		haptics:   &h,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return nil
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.indicator = string(m.settings.IndicatorType())
	*m.graph = string(m.settings.GraphType())
	*m.layout = string(m.settings.LayoutType())
	*m.haptics = m.settings.HapticsEnabled()
	*m.weekStart = "sunday"
	if !m.settings.WeekStartsOnSunday() {
		*m.weekStart = "monday"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Day indicator").
				Options(
					huh.NewOption("Emoji", string(settings.IndicatorEmoji)),
					huh.NewOption("✗ mark", string(settings.IndicatorX)),
				).Value(m.indicator),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).Value(m.weekStart),
			huh.NewSelect[string]().Title("Graph style").
				Options(
					huh.NewOption("Line", string(settings.GraphLine)),
					huh.NewOption("Bar", string(settings.GraphBar)),
				).Value(m.graph),
			huh.NewSelect[string]().Title("Week layout").
				Options(
					huh.NewOption("Vertical", string(settings.LayoutVertical)),
					huh.NewOption("Horizontal", string(settings.LayoutHorizontal)),
				).Value(m.layout),
			huh.NewConfirm().Title("Haptics").Value(m.haptics),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.save()
		return m, nil
	}

	return m, cmd
}

func (m settingsModel) save() {
	m.settings.SetIndicatorType(settings.IndicatorType(*m.indicator))
	m.settings.SetWeekStartsOnSunday(*m.weekStart == "sunday")
	m.settings.SetGraphType(settings.GraphType(*m.graph))
	m.settings.SetLayoutType(settings.LayoutType(*m.layout))
	m.settings.SetHapticsEnabled(*m.haptics)
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	weekStart := "Sunday"
	if !m.settings.WeekStartsOnSunday() {
		weekStart = "Monday"
	}
	haptics := "off"
	if m.settings.HapticsEnabled() {
		haptics = "on"
	}

	rows := []string{
		title,
		"",
		settingRow("Day indicator", string(m.settings.IndicatorType())),
		settingRow("Week starts on", weekStart),
		settingRow("Graph style", string(m.settings.GraphType())),
		settingRow("Week layout", string(m.settings.LayoutType())),
		settingRow("Haptics", haptics),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(24).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}
