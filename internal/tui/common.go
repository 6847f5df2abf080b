package tui

import "strconv"

// viewState represents the currently active view.
type viewState int

const (
	viewWeeks viewState = iota
	viewStats
	viewDrinks
	viewSettings
)

var viewNames = []string{"Weeks", "Stats", "Drinks", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type templateSavedMsg struct{}

// --- Helpers ---

// formatUnits renders a units value without trailing zeros: 6.76, 3.5, 2.
func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
