package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/tracker"
)

// weeksModel is the main tracking view: a rolling calendar of weeks with a
// movable day cursor, plus a drink picker overlay for logging against the
// selected day.
type weeksModel struct {
	engine   *tracker.Engine
	settings *settings.Service
	width    int
	height   int

	weeks      []tracker.WeekData
	weekCursor int // 0 = current week
	dayCursor  int

	picking      bool
	pickerCursor int
}

func newWeeksModel(e *tracker.Engine, s *settings.Service) weeksModel {
	return weeksModel{engine: e, settings: s}
}

func (m *weeksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type weeksDataMsg struct {
	weeks []tracker.WeekData
}

// refresh reads the engine on the update loop and hands the snapshot to the
// message pump, so the engine is never touched from a command goroutine.
func (m weeksModel) refresh() tea.Cmd {
	weeks := m.engine.WeeksWithData()
	return func() tea.Msg {
		return weeksDataMsg{weeks: weeks}
	}
}

func (m weeksModel) selectedDate() string {
	if m.weekCursor >= len(m.weeks) {
		return ""
	}
	week := m.weeks[m.weekCursor]
	if m.dayCursor >= len(week.Days) {
		return ""
	}
	return week.Days[m.dayCursor].Date
}

func (m weeksModel) update(msg tea.Msg) (weeksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case weeksDataMsg:
		m.weeks = msg.weeks
		if m.weekCursor >= len(m.weeks) {
			m.weekCursor = max(0, len(m.weeks)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.dayCursor > 0 {
				m.dayCursor--
			}
		case key.Matches(msg, keys.Down):
			if m.dayCursor < 6 {
				m.dayCursor++
			}
		case key.Matches(msg, keys.Left):
			if m.weekCursor < len(m.weeks)-1 {
				m.weekCursor++
			}
		case key.Matches(msg, keys.Right):
			if m.weekCursor > 0 {
				m.weekCursor--
			}
		case key.Matches(msg, keys.Toggle):
			if date := m.selectedDate(); date != "" {
				m.engine.ToggleDrank(date)
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Add), key.Matches(msg, keys.Enter):
			if len(m.settings.Templates()) == 0 {
				return m, func() tea.Msg {
					return statusMsg{text: "No drinks configured. Press 3 to add one.", isError: true}
				}
			}
			m.picking = true
			m.pickerCursor = 0
			return m, nil
		case key.Matches(msg, keys.Increment):
			if date := m.selectedDate(); date != "" {
				m.engine.AddUnits(date, 1, 0, "")
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Decrement):
			if date := m.selectedDate(); date != "" {
				m.engine.AddUnits(date, -1, 0, "")
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m weeksModel) updatePicker(msg tea.KeyMsg) (weeksModel, tea.Cmd) {
	templates := m.settings.Templates()

	switch {
	case key.Matches(msg, keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.pickerCursor < len(templates)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Increment):
		if date := m.selectedDate(); date != "" && m.pickerCursor < len(templates) {
			m.engine.AddUnits(date, 0, 1, templates[m.pickerCursor].ID)
			return m, m.refresh()
		}
	case key.Matches(msg, keys.Decrement):
		if date := m.selectedDate(); date != "" && m.pickerCursor < len(templates) {
			m.engine.AddUnits(date, 0, -1, templates[m.pickerCursor].ID)
			return m, m.refresh()
		}
	case key.Matches(msg, keys.Back):
		m.picking = false
	}
	return m, nil
}

// dayMarker renders the drank indicator for one day.
func dayMarker(drank bool, indicator settings.IndicatorType) string {
	if !drank {
		return "·"
	}
	if indicator == settings.IndicatorX {
		return "✗"
	}
	return "🍺"
}

// weekTotals sums a week's units and drink count.
func weekTotals(week tracker.WeekData) (float64, int) {
	var units float64
	var count int
	for _, d := range week.Days {
		units += d.Units
		count += d.DrinkCount
	}
	return units, count
}

func (m weeksModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}

	contentWidth := m.width - 4

	if m.weekCursor >= len(m.weeks) {
		return panelStyle.Width(contentWidth).Render(mutedStyle.Render("Loading weeks..."))
	}

	var panels []string
	if m.picking {
		panels = append(panels, m.renderDrinkPicker(contentWidth))
	}
	panels = append(panels, m.renderWeekPanel(contentWidth))
	panels = append(panels, m.renderHistoryPanel(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m weeksModel) renderWeekPanel(w int) string {
	week := m.weeks[m.weekCursor]
	indicator := m.settings.IndicatorType()

	nav := mutedStyle.Render(fmt.Sprintf("  ←/→ weeks (%d/%d)", m.weekCursor+1, len(m.weeks)))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render(week.Label), nav)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	if m.settings.LayoutType() == settings.LayoutHorizontal {
		rows = append(rows, m.renderWeekRow(week, indicator)...)
	} else {
		rows = append(rows, m.renderWeekColumn(week, indicator)...)
	}

	units, count := weekTotals(week)
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("  Week total: %s units · %d drinks", formatUnits(units), count)))
	rows = append(rows, mutedStyle.Render("  t: toggle  a: log drink  +/-: adjust units"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m weeksModel) renderWeekColumn(week tracker.WeekData, indicator settings.IndicatorType) []string {
	var rows []string
	for i, day := range week.Days {
		cursor := "  "
		style := normalItemStyle
		if i == m.dayCursor {
			cursor = "> "
			style = selectedItemStyle
		}

		detail := ""
		if day.Units > 0 || day.DrinkCount > 0 {
			detail = fmt.Sprintf("  %s units · %d drinks", formatUnits(day.Units), day.DrinkCount)
		}

		row := fmt.Sprintf("%s%-4s %s  %s%s",
			cursor, day.Day, day.Date, dayMarker(day.Drank, indicator), detail)
		rows = append(rows, style.Render(row))
	}
	return rows
}

func (m weeksModel) renderWeekRow(week tracker.WeekData, indicator settings.IndicatorType) []string {
	var names, markers, units []string
	for i, day := range week.Days {
		style := normalItemStyle
		if i == m.dayCursor {
			style = selectedItemStyle
		}
		names = append(names, style.Render(fmt.Sprintf("%-5s", day.Day)))
		markers = append(markers, fmt.Sprintf("%-5s", dayMarker(day.Drank, indicator)))
		u := ""
		if day.Units > 0 {
			u = formatUnits(day.Units)
		}
		units = append(units, mutedStyle.Render(fmt.Sprintf("%-5s", u)))
	}
	return []string{
		"  " + strings.Join(names, " "),
		"  " + strings.Join(markers, " "),
		"  " + strings.Join(units, " "),
	}
}

func (m weeksModel) renderHistoryPanel(w int) string {
	title := titleStyle.Render("History")

	var rows []string
	rows = append(rows, title)

	shown := 0
	for i, week := range m.weeks {
		if i == m.weekCursor {
			continue
		}
		if shown >= 5 {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more weeks", len(m.weeks)-shown-1)))
			break
		}
		units, count := weekTotals(week)
		rows = append(rows, fmt.Sprintf("  %-16s %s units · %d drinks",
			week.Label, formatUnits(units), count))
		shown++
	}
	if shown == 0 {
		rows = append(rows, mutedStyle.Render("  No earlier weeks yet"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m weeksModel) renderDrinkPicker(w int) string {
	title := titleStyle.Render("Log drink · " + m.selectedDate())
	entry := m.engine.Entry(m.selectedDate())

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, t := range m.settings.Templates() {
		cursor := "  "
		style := normalItemStyle
		if i == m.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		count := ""
		if n := entry.DrinkCounts[t.ID]; n > 0 {
			count = highlightStyle.Render(fmt.Sprintf("  ×%d", n))
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s (%s units)", cursor, t.Emoji, t.Name, formatUnits(t.Units)))+count)
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter/+: add  -: remove  esc: done"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
