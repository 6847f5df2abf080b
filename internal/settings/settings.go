package settings

// IndicatorType controls how a logged day is marked in the week grid.
type IndicatorType string

// GraphType controls how the stats charts are drawn.
type GraphType string

// LayoutType controls the orientation of the week grid.
type LayoutType string

const (
	IndicatorEmoji IndicatorType = "emoji"
	IndicatorX     IndicatorType = "x"

	GraphBar  GraphType = "bar"
	GraphLine GraphType = "line"

	LayoutVertical   LayoutType = "vertical"
	LayoutHorizontal LayoutType = "horizontal"
)

// DrinkTemplate is a reusable drink definition. Units is the standardized
// alcohol measure per serving (size ml × ABV / 1000).
type DrinkTemplate struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Emoji      string  `json:"emoji"`
	Units      float64 `json:"units"`
	Size       string  `json:"size,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
	Calories   int     `json:"calories,omitempty"`
}

// Settings is the singleton configuration record, persisted as one JSON blob.
type Settings struct {
	IndicatorType      IndicatorType   `json:"indicatorType"`
	DrinkTemplates     []DrinkTemplate `json:"drinkTemplates"`
	WeekStartsOnSunday bool            `json:"weekStartsOnSunday"`
	GraphType          GraphType       `json:"graphType"`
	HasSeenIntro       bool            `json:"hasSeenIntro"`
	HapticsEnabled     bool            `json:"hapticsEnabled"`
	LayoutType         LayoutType      `json:"layoutType"`
}

// DefaultTemplates returns the drink list a fresh install starts with.
func DefaultTemplates() []DrinkTemplate {
	return []DrinkTemplate{
		{
			ID:         "default-wine",
			Name:       "Wine (Glass)",
			Emoji:      "🍷",
			Units:      3.38,
			Size:       "250",
			Percentage: 13.5,
		},
		{
			ID:         "default-beer",
			Name:       "Beer (Pint)",
			Emoji:      "🍺",
			Units:      2.84,
			Size:       "568",
			Percentage: 5,
		},
		{
			ID:         "default-spirits",
			Name:       "Spirits",
			Emoji:      "🥃",
			Units:      2,
			Size:       "50",
			Percentage: 40,
		},
	}
}

// Defaults returns the settings a fresh install starts with.
func Defaults() Settings {
	return Settings{
		IndicatorType:      IndicatorEmoji,
		DrinkTemplates:     DefaultTemplates(),
		WeekStartsOnSunday: true,
		GraphType:          GraphLine,
		HasSeenIntro:       false,
		HapticsEnabled:     false,
		LayoutType:         LayoutVertical,
	}
}

// Preset is a catalog entry offered by the drink editor. Units are derived
// from size and ABV when a preset is picked.
type Preset struct {
	ID         string
	Name       string
	Emoji      string
	Size       string
	Percentage float64
}

// Presets is the built-in catalog shown in the drink editor.
var Presets = []Preset{
	{ID: "beer", Name: "Beer (Pint)", Emoji: "🍺", Size: "568", Percentage: 5},
	{ID: "beer-large", Name: "Beer (Large Bottle)", Emoji: "🍺", Size: "660", Percentage: 5},
	{ID: "beer-small", Name: "Beer (Small Bottle)", Emoji: "🍺", Size: "330", Percentage: 5},
	{ID: "wine-glass", Name: "Wine (large glass)", Emoji: "🍷", Size: "250", Percentage: 13.5},
	{ID: "wine-bottle", Name: "Wine (Bottle)", Emoji: "🍷", Size: "750", Percentage: 13.5},
	{ID: "spirits", Name: "Spirits", Emoji: "🥃", Size: "50", Percentage: 40},
	{ID: "cocktail", Name: "Cocktail", Emoji: "🍸", Size: "200", Percentage: 15},
	{ID: "shot", Name: "Shot", Emoji: "🥃", Size: "35", Percentage: 40},
	{ID: "tropical", Name: "Tropical", Emoji: "🍹", Size: "250", Percentage: 10},
}
