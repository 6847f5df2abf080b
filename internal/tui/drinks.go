package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mertcano/drinktrack/internal/settings"
)

// drinksModel manages the drink template catalog: list, preset picker and a
// form for creating or editing templates. Units are derived from size and
// ABV on save.
type drinksModel struct {
	settings *settings.Service
	width    int
	height   int

	cursor int

	pickingPreset bool
	presetCursor  int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"
	editingID  string

	// Form field pointers (survive value copies)
	formName     *string
	formEmoji    *string
	formSize     *string
	formABV      *string
	formCalories *string
}

func newDrinksModel(s *settings.Service) drinksModel {
	name, emoji, size, abv, cal := "", "", "", "", ""
	return drinksModel{
		settings:     s,
		formName:     &name,
		formEmoji:    &emoji,
		formSize:     &size,
		formABV:      &abv,
		formCalories: &cal,
	}
}

func (m *drinksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m drinksModel) refresh() tea.Cmd {
	return nil
}

func (m drinksModel) update(msg tea.Msg) (drinksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.pickingPreset {
		return m.updatePresetPicker(keyMsg)
	}

	templates := m.settings.Templates()

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(templates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		m.pickingPreset = true
		m.presetCursor = 0
		return m, nil
	case key.Matches(keyMsg, keys.Edit):
		if m.cursor < len(templates) {
			return m.showEditForm(templates[m.cursor])
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(templates) {
			m.settings.DeleteTemplate(templates[m.cursor].ID)
			if m.cursor >= len(m.settings.Templates()) {
				m.cursor = max(0, len(m.settings.Templates())-1)
			}
		}
	}
	return m, nil
}

func (m drinksModel) updatePresetPicker(msg tea.KeyMsg) (drinksModel, tea.Cmd) {
	// Index 0 is the custom-drink entry, presets follow.
	limit := len(settings.Presets)

	switch {
	case key.Matches(msg, keys.Up):
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.presetCursor < limit {
			m.presetCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.pickingPreset = false
		if m.presetCursor == 0 {
			return m.showNewForm(nil)
		}
		preset := settings.Presets[m.presetCursor-1]
		return m.showNewForm(&preset)
	case key.Matches(msg, keys.Back):
		m.pickingPreset = false
	}
	return m, nil
}

func (m drinksModel) showNewForm(preset *settings.Preset) (drinksModel, tea.Cmd) {
	*m.formName = ""
	*m.formEmoji = "🍺"
	*m.formSize = ""
	*m.formABV = ""
	*m.formCalories = ""
	if preset != nil {
		*m.formName = preset.Name
		*m.formEmoji = preset.Emoji
		*m.formSize = preset.Size
		*m.formABV = formatUnits(preset.Percentage)
	}
	m.formType = "new"

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m drinksModel) showEditForm(t settings.DrinkTemplate) (drinksModel, tea.Cmd) {
	*m.formName = t.Name
	*m.formEmoji = t.Emoji
	*m.formSize = t.Size
	*m.formABV = formatUnits(t.Percentage)
	*m.formCalories = ""
	if t.Calories > 0 {
		*m.formCalories = strconv.Itoa(t.Calories)
	}
	m.formType = "edit"
	m.editingID = t.ID

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m drinksModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewInput().Title("Emoji").Value(m.formEmoji),
			huh.NewInput().Title("Size (ml)").Value(m.formSize),
			huh.NewInput().Title("ABV %").Value(m.formABV),
			huh.NewInput().Title("Calories (optional)").Value(m.formCalories),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (m drinksModel) updateForm(msg tea.Msg) (drinksModel, tea.Cmd) {
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
		return m.saveForm()
	}

	return m, cmd
}

func (m drinksModel) saveForm() (drinksModel, tea.Cmd) {
	name := strings.TrimSpace(*m.formName)
	if name == "" {
		return m, nil
	}

	abv, _ := strconv.ParseFloat(strings.TrimSpace(*m.formABV), 64)
	calories, _ := strconv.Atoi(strings.TrimSpace(*m.formCalories))

	template := settings.DrinkTemplate{
		Name:       name,
		Emoji:      *m.formEmoji,
		Units:      settings.CalculateUnits(*m.formSize, abv),
		Size:       strings.TrimSpace(*m.formSize),
		Percentage: abv,
		Calories:   calories,
	}

	if m.formType == "edit" {
		template.ID = m.editingID
		if !m.settings.UpdateTemplate(template) {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("A drink named %q already exists", name), isError: true}
			}
		}
	} else {
		if _, ok := m.settings.AddTemplate(template); !ok {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("A drink named %q already exists", name), isError: true}
			}
		}
	}

	return m, func() tea.Msg { return templateSavedMsg{} }
}

func (m drinksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Drink")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Drink")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if m.pickingPreset {
		return m.renderPresetPicker(w)
	}
	return m.renderList(w)
}

func (m drinksModel) renderList(w int) string {
	title := titleStyle.Render("Drinks")
	templates := m.settings.Templates()

	if len(templates) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No drinks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %8s %8s %7s", "", "Name", "Units", "Size", "ABV"))
	rows = append(rows, header)

	for i, t := range templates {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		size := ""
		if t.Size != "" {
			size = t.Size + "ml"
		}
		abv := ""
		if t.Percentage > 0 {
			abv = formatUnits(t.Percentage) + "%"
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %8s %8s %7s",
			cursor, t.Emoji, t.Name, formatUnits(t.Units), size, abv))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m drinksModel) renderPresetPicker(w int) string {
	title := titleStyle.Render("Add Drink")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	entries := []string{"✏️ Custom drink"}
	for _, p := range settings.Presets {
		units := settings.CalculateUnits(p.Size, p.Percentage)
		entries = append(entries, fmt.Sprintf("%s %s (%sml, %s%%, %s units)",
			p.Emoji, p.Name, p.Size, formatUnits(p.Percentage), formatUnits(units)))
	}

	for i, e := range entries {
		cursor := "  "
		style := normalItemStyle
		if i == m.presetCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+e))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
