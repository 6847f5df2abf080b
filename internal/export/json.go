package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/tracker"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Days       []jsonEntry `json:"days"`
}

type jsonEntry struct {
	Date       string         `json:"date"`
	Units      float64        `json:"units"`
	Drank      bool           `json:"drank"`
	DrinkCount int            `json:"drink_count"`
	Drinks     map[string]int `json:"drinks,omitempty"`
}

func ToJSON(data map[string]tracker.DayEntry, templates []settings.DrinkTemplate, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(data),
	}

	for _, date := range sortedDates(data) {
		entry := data[date]

		var drinks map[string]int
		if len(entry.DrinkCounts) > 0 {
			drinks = make(map[string]int, len(entry.DrinkCounts))
			for id, count := range entry.DrinkCounts {
				name := id
				for _, t := range templates {
					if t.ID == id {
						name = t.Name
						break
					}
				}
				drinks[name] = count
			}
		}

		export.Days = append(export.Days, jsonEntry{
			Date:       date,
			Units:      entry.Units,
			Drank:      entry.Drank,
			DrinkCount: entry.DrinkCount,
			Drinks:     drinks,
		})
	}

	blob, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
