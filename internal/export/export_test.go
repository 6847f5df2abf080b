package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/tracker"
)

func sampleData() (map[string]tracker.DayEntry, []settings.DrinkTemplate) {
	data := map[string]tracker.DayEntry{
		"2025-06-03": {
			Units:       6.76,
			Drank:       true,
			DrinkCount:  2,
			DrinkCounts: map[string]int{"default-wine": 2},
		},
		"2025-06-01": {
			Units:      1.5,
			Drank:      true,
			DrinkCount: 1,
		},
		"2025-06-05": {
			DrinkCounts: map[string]int{"gone-id": 1},
			Units:       0,
			DrinkCount:  1,
			Drank:       true,
		},
	}
	return data, settings.DefaultTemplates()
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	data, templates := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(data, templates, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Date", "Units", "Drank", "Drink Count", "Drinks"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	// Rows sorted by date
	if records[1][0] != "2025-06-01" || records[2][0] != "2025-06-03" || records[3][0] != "2025-06-05" {
		t.Fatalf("rows not date-sorted: %v", records)
	}

	if records[2][1] != "6.76" || records[2][3] != "2" {
		t.Fatalf("wine row = %v", records[2])
	}
	if !strings.Contains(records[2][4], "2x Wine (Glass)") {
		t.Fatalf("drinks column = %q", records[2][4])
	}
	// Deleted templates keep their raw id
	if !strings.Contains(records[3][4], "1x gone-id") {
		t.Fatalf("missing-template drinks column = %q", records[3][4])
	}
	// Freeform day has no drinks breakdown
	if records[1][4] != "" {
		t.Fatalf("freeform drinks column = %q", records[1][4])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	data, templates := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(data, templates, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var export struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Days       []struct {
			Date       string         `json:"date"`
			Units      float64        `json:"units"`
			Drank      bool           `json:"drank"`
			DrinkCount int            `json:"drink_count"`
			Drinks     map[string]int `json:"drinks"`
		} `json:"days"`
	}
	if err := json.Unmarshal(blob, &export); err != nil {
		t.Fatal(err)
	}

	if export.Count != 3 || len(export.Days) != 3 {
		t.Fatalf("count = %d, days = %d", export.Count, len(export.Days))
	}
	if export.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	if export.Days[0].Date != "2025-06-01" {
		t.Fatalf("days not sorted: %v", export.Days)
	}
	wine := export.Days[1]
	if wine.Units != 6.76 || wine.Drinks["Wine (Glass)"] != 2 {
		t.Fatalf("wine day = %+v", wine)
	}
	if export.Days[0].Drinks != nil {
		t.Fatalf("freeform day should omit drinks: %+v", export.Days[0])
	}
}

func TestToCSVEmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(map[string]tracker.DayEntry{}, nil, path); err != nil {
		t.Fatalf("ToCSV on empty data: %v", err)
	}

	blob, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(blob)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}
