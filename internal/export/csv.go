package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/tracker"
)

func ToCSV(data map[string]tracker.DayEntry, templates []settings.DrinkTemplate, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Units", "Drank", "Drink Count", "Drinks"}); err != nil {
		return err
	}

	for _, date := range sortedDates(data) {
		entry := data[date]
		row := []string{
			date,
			fmt.Sprintf("%.2f", entry.Units),
			fmt.Sprintf("%t", entry.Drank),
			fmt.Sprintf("%d", entry.DrinkCount),
			formatDrinks(entry.DrinkCounts, templates),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func sortedDates(data map[string]tracker.DayEntry) []string {
	dates := make([]string, 0, len(data))
	for date := range data {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// formatDrinks renders tallies as "2x Beer (Pint), 1x Spirits", falling back
// to the raw template id when the template is gone.
func formatDrinks(counts map[string]int, templates []settings.DrinkTemplate) string {
	if len(counts) == 0 {
		return ""
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		name := id
		for _, t := range templates {
			if t.ID == id {
				name = t.Name
				break
			}
		}
		parts = append(parts, fmt.Sprintf("%dx %s", counts[id], name))
	}
	return strings.Join(parts, ", ")
}
