package tui

import (
	"testing"
	"time"

	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/tracker"
)

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6.76, "6.76"},
		{3.5, "3.5"},
		{2, "2"},
		{0, "0"},
		{9.8, "9.8"},
	}
	for _, tc := range tests {
		if got := formatUnits(tc.in); got != tc.want {
			t.Errorf("formatUnits(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDayMarker(t *testing.T) {
	if got := dayMarker(false, settings.IndicatorEmoji); got != "·" {
		t.Errorf("no-drink marker = %q", got)
	}
	if got := dayMarker(true, settings.IndicatorEmoji); got != "🍺" {
		t.Errorf("emoji marker = %q", got)
	}
	if got := dayMarker(true, settings.IndicatorX); got != "✗" {
		t.Errorf("x marker = %q", got)
	}
}

// ============================================================
// Week aggregation
// ============================================================

func testWeek(label string, units []float64, counts []int) tracker.WeekData {
	week := tracker.WeekData{Label: label}
	for i := range units {
		week.Days = append(week.Days, tracker.DayData{
			Units:      units[i],
			DrinkCount: counts[i],
		})
	}
	return week
}

func TestWeekTotals(t *testing.T) {
	week := testWeek("Jun 22 - Jun 28",
		[]float64{0, 3.38, 0, 6.76, 0, 0, 2},
		[]int{0, 1, 0, 2, 0, 0, 1})

	units, count := weekTotals(week)
	if units != 12.14 {
		t.Errorf("units = %v, want 12.14", units)
	}
	if count != 4 {
		t.Errorf("count = %v, want 4", count)
	}
}

func TestWeeklyUnitTotalsOrdersOldestFirst(t *testing.T) {
	// WeeksWithData returns most recent first; the chart wants oldest first.
	weeks := []tracker.WeekData{
		testWeek("current", []float64{5}, []int{1}),
		testWeek("previous", []float64{3}, []int{1}),
		testWeek("oldest", []float64{1}, []int{1}),
	}

	totals := weeklyUnitTotals(weeks, 12)
	want := []float64{1, 3, 5}
	if len(totals) != len(want) {
		t.Fatalf("got %d totals, want %d", len(totals), len(want))
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("totals[%d] = %v, want %v", i, totals[i], want[i])
		}
	}
}

func TestWeeklyUnitTotalsCapsAtLimit(t *testing.T) {
	weeks := []tracker.WeekData{
		testWeek("w0", []float64{4}, []int{1}),
		testWeek("w1", []float64{3}, []int{1}),
		testWeek("w2", []float64{2}, []int{1}),
		testWeek("w3", []float64{1}, []int{1}),
	}

	totals := weeklyUnitTotals(weeks, 2)
	// Only the two most recent weeks survive, oldest of those first.
	want := []float64{3, 4}
	if len(totals) != 2 || totals[0] != want[0] || totals[1] != want[1] {
		t.Fatalf("totals = %v, want %v", totals, want)
	}
}

func TestMonthlyUnitTotals(t *testing.T) {
	data := map[string]tracker.DayEntry{
		"2025-01-05": {Units: 2},
		"2025-01-20": {Units: 3},
		"2025-06-25": {Units: 6.76},
		"2024-12-31": {Units: 10}, // other year, ignored
	}

	totals := monthlyUnitTotals(data, 2025)
	if len(totals) != 12 {
		t.Fatalf("got %d months", len(totals))
	}
	if totals[0] != 5 {
		t.Errorf("January = %v, want 5", totals[0])
	}
	if totals[5] != 6.76 {
		t.Errorf("June = %v, want 6.76", totals[5])
	}
	if totals[11] != 0 {
		t.Errorf("December = %v, want 0", totals[11])
	}
}

// ============================================================
// Month calendar
// ============================================================

func TestMonthMatrixSundayStart(t *testing.T) {
	// June 2025 starts on a Sunday.
	matrix := monthMatrix(2025, time.June, true)

	if len(matrix) != 5 {
		t.Fatalf("got %d rows, want 5", len(matrix))
	}
	if matrix[0][0] != "2025-06-01" {
		t.Errorf("first cell = %q, want 2025-06-01", matrix[0][0])
	}
	if matrix[4][0] != "2025-06-29" || matrix[4][1] != "2025-06-30" {
		t.Errorf("last row starts %q %q", matrix[4][0], matrix[4][1])
	}
	// Trailing padding after June 30.
	if matrix[4][2] != "" {
		t.Errorf("expected padding, got %q", matrix[4][2])
	}
}

func TestMonthMatrixMondayStart(t *testing.T) {
	matrix := monthMatrix(2025, time.June, false)

	if len(matrix) != 6 {
		t.Fatalf("got %d rows, want 6", len(matrix))
	}
	// With Monday weeks, Sunday June 1 sits at the end of the first row.
	for i := 0; i < 6; i++ {
		if matrix[0][i] != "" {
			t.Errorf("cell %d = %q, want padding", i, matrix[0][i])
		}
	}
	if matrix[0][6] != "2025-06-01" {
		t.Errorf("first day = %q, want 2025-06-01", matrix[0][6])
	}
	if matrix[1][0] != "2025-06-02" {
		t.Errorf("second row starts %q, want 2025-06-02", matrix[1][0])
	}
}

func TestMonthMatrixRowsAreFullWeeks(t *testing.T) {
	for _, sunday := range []bool{true, false} {
		for month := time.January; month <= time.December; month++ {
			for _, row := range monthMatrix(2025, month, sunday) {
				if len(row) != 7 {
					t.Fatalf("month %v sunday=%v: row has %d cells", month, sunday, len(row))
				}
			}
		}
	}
}
