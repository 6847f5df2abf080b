package tracker

import "math"

// DayEntry is the per-date aggregate record of drinking activity. When
// DrinkCounts is non-empty it is the source of truth: Units and DrinkCount
// are re-derived from it on every load (see reconcile). SavedDrinkCounts
// holds the tallies of a day that was toggled to no-drink, so a second
// toggle can restore them.
type DayEntry struct {
	Units            float64        `json:"units"`
	Drank            bool           `json:"drank"`
	DrinkCount       int            `json:"drinkCount"`
	DrinkCounts      map[string]int `json:"drinkCounts"`
	SavedDrinkCounts map[string]int `json:"savedDrinkCounts,omitempty"`
}

// hasActivity reports whether the day has anything recorded at all.
func (e DayEntry) hasActivity() bool {
	return e.Drank || e.Units > 0 || e.DrinkCount > 0 || len(e.DrinkCounts) > 0
}

// normalizeEntry coerces one raw decoded JSON value into a safe DayEntry.
// Persisted records have no schema version, so any field may be absent, the
// wrong type, or out of range; everything defaults rather than erroring.
func normalizeEntry(raw any) DayEntry {
	entry := DayEntry{DrinkCounts: map[string]int{}}

	m, ok := raw.(map[string]any)
	if !ok {
		return entry
	}

	if u, ok := m["units"].(float64); ok && !math.IsNaN(u) && !math.IsInf(u, 0) && u > 0 {
		entry.Units = u
	}
	if c, ok := m["drinkCount"].(float64); ok && c > 0 {
		entry.DrinkCount = int(c)
	}
	if counts, ok := m["drinkCounts"].(map[string]any); ok {
		for id, v := range counts {
			if n, ok := v.(float64); ok {
				entry.DrinkCounts[id] = int(n)
			}
		}
	}
	if saved, ok := m["savedDrinkCounts"].(map[string]any); ok {
		entry.SavedDrinkCounts = make(map[string]int, len(saved))
		for id, v := range saved {
			if n, ok := v.(float64); ok {
				entry.SavedDrinkCounts[id] = int(n)
			}
		}
	}
	if b, ok := m["drank"].(bool); ok {
		entry.Drank = b
	} else {
		entry.Drank = entry.Units > 0
	}
	return entry
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
