package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mertcano/drinktrack/internal/export"
	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/tracker"
)

// App is the root Bubble Tea model.
type App struct {
	engine   *tracker.Engine
	settings *settings.Service
	width    int
	height   int

	activeView    viewState
	showHelp      bool
	introActive   bool
	exportPicking bool
	exportCursor  int

	weeks        weeksModel
	stats        statsModel
	drinks       drinksModel
	settingsView settingsModel

	help   help.Model
	status string
}

func NewApp(e *tracker.Engine, s *settings.Service) App {
	h := help.New()
	h.ShowAll = false

	return App{
		engine:       e,
		settings:     s,
		activeView:   viewWeeks,
		introActive:  !s.HasSeenIntro(),
		weeks:        newWeeksModel(e, s),
		stats:        newStatsModel(e, s),
		drinks:       newDrinksModel(s),
		settingsView: newSettingsModel(s),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return a.weeks.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.weeks.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.drinks.setSize(a.width, contentHeight)
		a.settingsView.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.introActive {
			return a.updateIntro(msg)
		}

		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form, picker), delegate first.
		if a.isCapturingInput() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewWeeks
			return a, a.weeks.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewDrinks
			return a, a.drinks.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settingsView.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case templateSavedMsg:
		a.status = "Drink saved"
		// Templates affect derived day totals on the weeks view too.
		return a, tea.Batch(a.weeks.refresh(), a.stats.refresh())

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Enter):
		a.settings.MarkIntroSeen()
		a.introActive = false
		return a, a.weeks.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewWeeks:
		a.weeks, cmd = a.weeks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewDrinks:
		a.drinks, cmd = a.drinks.update(msg)
	case viewSettings:
		a.settingsView, cmd = a.settingsView.update(msg)
	}
	return a, cmd
}

func (a App) isCapturingInput() bool {
	switch a.activeView {
	case viewWeeks:
		return a.weeks.picking
	case viewDrinks:
		return a.drinks.formActive || a.drinks.pickingPreset
	case viewSettings:
		return a.settingsView.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewWeeks:
		return a.weeks.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewDrinks:
		return a.drinks.refresh()
	case viewSettings:
		return a.settingsView.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewWeeks:
		content = a.weeks.view()
	case viewStats:
		content = a.stats.view()
	case viewDrinks:
		content = a.drinks.view()
	case viewSettings:
		content = a.settingsView.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.introActive {
		content = a.renderIntro()
	} else if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("drinktrack")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderIntro() string {
	title := titleStyle.Render("Welcome to drinktrack")

	rows := []string{
		title,
		"",
		"Track your drinks day by day and watch your weekly averages.",
		"",
		"  " + successStyle.Render("t") + "  mark a day as drank / not drank",
		"  " + successStyle.Render("a") + "  log a drink against the selected day",
		"  " + successStyle.Render("3") + "  manage your drink list",
		"",
		mutedStyle.Render("Press enter to get started."),
	}

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	data := a.engine.Data()
	templates := a.settings.Templates()

	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("drinktrack-export-%s.csv", dateStr))
			if err := export.ToCSV(data, templates, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("drinktrack-export-%s.json", dateStr))
			if err := export.ToJSON(data, templates, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
