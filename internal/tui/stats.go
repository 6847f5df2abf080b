package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/tracker"
)

// chartRange selects what the units chart plots.
type chartRange int

const (
	chartWeekly   chartRange = iota // latest week, per-day units
	chartFourWeek                   // last four weeks, weekly totals
	chartYearly                     // monthly totals for the displayed year
)

var chartRangeNames = []string{"Week", "4 Weeks", "Year"}

// statsModel shows rolling averages, a units chart over a selectable range
// and a month calendar of drinking days. The yearly chart follows the year
// of the displayed calendar month.
type statsModel struct {
	engine   *tracker.Engine
	settings *settings.Service
	width    int
	height   int

	stats tracker.Statistics
	weeks []tracker.WeekData
	data  map[string]tracker.DayEntry

	calMonth time.Time // first day of the displayed month
	rng      chartRange

	chart barchart.Model
	spark sparkline.Model
}

func newStatsModel(e *tracker.Engine, s *settings.Service) statsModel {
	now := time.Now().UTC()
	return statsModel{
		engine:   e,
		settings: s,
		calMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		chart:    barchart.New(60, 10),
		spark:    sparkline.New(60, 8),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	stats tracker.Statistics
	weeks []tracker.WeekData
	data  map[string]tracker.DayEntry
}

func (m statsModel) refresh() tea.Cmd {
	stats := m.engine.CalculateStatistics()
	weeks := m.engine.WeeksWithData()
	data := m.engine.Data()
	return func() tea.Msg {
		return statsDataMsg{stats: stats, weeks: weeks, data: data}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.stats = msg.stats
		m.weeks = msg.weeks
		m.data = msg.data
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.calMonth = m.calMonth.AddDate(0, -1, 0)
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Right):
			m.calMonth = m.calMonth.AddDate(0, 1, 0)
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Up):
			m.rng = (m.rng + 2) % 3
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Down):
			m.rng = (m.rng + 1) % 3
			m.buildChart()
			return m, nil
		}
	}
	return m, nil
}

// weeklyUnitTotals returns per-week unit totals, oldest week first, capped at
// the most recent limit weeks.
func weeklyUnitTotals(weeks []tracker.WeekData, limit int) []float64 {
	if len(weeks) > limit {
		weeks = weeks[:limit]
	}
	totals := make([]float64, 0, len(weeks))
	for i := len(weeks) - 1; i >= 0; i-- {
		units, _ := weekTotals(weeks[i])
		totals = append(totals, units)
	}
	return totals
}

// monthlyUnitTotals sums units per calendar month of one year.
func monthlyUnitTotals(data map[string]tracker.DayEntry, year int) []float64 {
	totals := make([]float64, 12)
	prefix := fmt.Sprintf("%04d-", year)
	for date, entry := range data {
		if len(date) < 10 || !strings.HasPrefix(date, prefix) {
			continue
		}
		month, err := strconv.Atoi(date[5:7])
		if err != nil || month < 1 || month > 12 {
			continue
		}
		totals[month-1] += entry.Units
	}
	return totals
}

// chartSeries produces the labels and values for the active chart range,
// oldest point first.
func (m statsModel) chartSeries() ([]string, []float64) {
	switch m.rng {
	case chartFourWeek:
		recent := m.weeks
		if len(recent) > 4 {
			recent = recent[:4]
		}
		var labels []string
		for i := len(recent) - 1; i >= 0; i-- {
			label, _, _ := strings.Cut(recent[i].Label, " - ")
			labels = append(labels, label)
		}
		return labels, weeklyUnitTotals(recent, 4)

	case chartYearly:
		labels := make([]string, 12)
		for i := 0; i < 12; i++ {
			labels[i] = time.Month(i + 1).String()[:3]
		}
		return labels, monthlyUnitTotals(m.data, m.calMonth.Year())

	default:
		if len(m.weeks) == 0 {
			return nil, nil
		}
		week := m.weeks[0]
		var labels []string
		var values []float64
		for _, day := range week.Days {
			labels = append(labels, day.Day)
			values = append(values, day.Units)
		}
		return labels, values
	}
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}

	labels, values := m.chartSeries()

	if m.settings.GraphType() == settings.GraphLine {
		m.spark = sparkline.New(chartWidth, 8)
		for _, v := range values {
			m.spark.Push(v)
		}
		m.spark.Draw()
		return
	}

	m.chart = barchart.New(chartWidth, 10)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)
	var bars []barchart.BarData
	for i, v := range values {
		bar := []barchart.BarValue{{Name: "units", Value: v, Style: barStyle}}
		if v == 0 {
			bar = []barchart.BarValue{{Name: "", Value: 0, Style: emptyStyle}}
		}
		bars = append(bars, barchart.BarData{Label: labels[i], Values: bar})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	avgPanel := m.renderAverages(w)
	chartPanel := m.renderChart(w)
	calPanel := m.renderCalendar(w)

	return lipgloss.JoinVertical(lipgloss.Left, avgPanel, chartPanel, calPanel)
}

func (m statsModel) renderAverages(w int) string {
	title := titleStyle.Render("Averages")

	units := highlightStyle.Render(formatUnits(m.stats.AvgUnitsPerWeek))
	days := highlightStyle.Render(formatUnits(m.stats.AvgDrinkingDaysPerWeek))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		fmt.Sprintf("  %s units / week", units),
		fmt.Sprintf("  %s drinking days / week", days),
	)
	return panelStyle.Width(w).Render(content)
}

func (m statsModel) renderChart(w int) string {
	name := chartRangeNames[m.rng]
	if m.rng == chartYearly {
		name = fmt.Sprintf("%s %d", name, m.calMonth.Year())
	}
	title := titleStyle.Render("Units · " + name)
	hint := mutedStyle.Render("  ↑/↓ range")
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, hint)

	var chartView string
	if m.settings.GraphType() == settings.GraphLine {
		chartView = m.spark.View()
	} else {
		chartView = m.chart.View()
	}

	if len(m.weeks) == 0 {
		chartView = mutedStyle.Render("  No data yet")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", chartView)
	return panelStyle.Width(w).Render(content)
}

// monthMatrix lays out a month as calendar weeks of ISO dates, padded with
// empty strings before the first and after the last day.
func monthMatrix(year int, month time.Month, weekStartsOnSunday bool) [][]string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	lead := int(first.Weekday()) // Sunday = 0
	if !weekStartsOnSunday {
		if lead == 0 {
			lead = 6
		} else {
			lead--
		}
	}

	var matrix [][]string
	row := make([]string, 0, 7)
	for i := 0; i < lead; i++ {
		row = append(row, "")
	}

	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		row = append(row, d.Format("2006-01-02"))
		if len(row) == 7 {
			matrix = append(matrix, row)
			row = make([]string, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, "")
		}
		matrix = append(matrix, row)
	}
	return matrix
}

func (m statsModel) renderCalendar(w int) string {
	title := titleStyle.Render(m.calMonth.Format("January 2006"))
	nav := mutedStyle.Render("  ←/→ months")
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, nav)

	sunday := m.settings.WeekStartsOnSunday()
	indicator := m.settings.IndicatorType()

	dayNames := []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	if sunday {
		dayNames = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  "+strings.Join(dayNames, "  ")))

	for _, week := range monthMatrix(m.calMonth.Year(), m.calMonth.Month(), sunday) {
		var cells []string
		for _, date := range week {
			if date == "" {
				cells = append(cells, "  ")
				continue
			}
			entry, ok := m.data[date]
			if ok && (entry.Drank || entry.Units > 0) {
				cells = append(cells, fmt.Sprintf("%-2s", dayMarker(true, indicator)))
			} else {
				cells = append(cells, mutedStyle.Render(date[8:]))
			}
		}
		rows = append(rows, "  "+strings.Join(cells, "  "))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
