package settings

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mertcano/drinktrack/internal/logger"
	"github.com/mertcano/drinktrack/internal/store"
)

// Service owns the settings record. It loads once at construction and
// rewrites the whole record on every mutation. Storage failures are logged
// and dropped; the in-memory copy stays authoritative for the session.
type Service struct {
	store    *store.Store
	settings Settings
}

func NewService(st *store.Store) *Service {
	s := &Service{store: st, settings: Defaults()}
	s.load()
	return s
}

// rawSettings uses pointers for the booleans so an absent field can be told
// apart from an explicit false when applying defaults.
type rawSettings struct {
	IndicatorType      string          `json:"indicatorType"`
	DrinkTemplates     []DrinkTemplate `json:"drinkTemplates"`
	WeekStartsOnSunday *bool           `json:"weekStartsOnSunday"`
	GraphType          string          `json:"graphType"`
	HasSeenIntro       bool            `json:"hasSeenIntro"`
	HapticsEnabled     bool            `json:"hapticsEnabled"`
	LayoutType         string          `json:"layoutType"`
}

func (s *Service) load() {
	blob, err := s.store.GetRecord(store.KeySettings)
	if errors.Is(err, store.ErrNoRecord) {
		// First run: write the defaults back so the record exists.
		s.persist()
		return
	}
	if err != nil {
		logger.Warn("load settings", "err", err)
		return
	}

	var raw rawSettings
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		logger.Warn("parse settings, using defaults", "err", err)
		return
	}

	loaded := Defaults()
	if raw.IndicatorType != "" {
		loaded.IndicatorType = IndicatorType(raw.IndicatorType)
	}
	if len(raw.DrinkTemplates) > 0 {
		loaded.DrinkTemplates = raw.DrinkTemplates
	}
	if raw.WeekStartsOnSunday != nil {
		loaded.WeekStartsOnSunday = *raw.WeekStartsOnSunday
	}
	if raw.GraphType != "" {
		loaded.GraphType = GraphType(raw.GraphType)
	}
	loaded.HasSeenIntro = raw.HasSeenIntro
	loaded.HapticsEnabled = raw.HapticsEnabled
	if raw.LayoutType != "" {
		loaded.LayoutType = LayoutType(raw.LayoutType)
	}
	s.settings = loaded
}

func (s *Service) persist() {
	blob, err := json.Marshal(s.settings)
	if err != nil {
		logger.Error("encode settings", "err", err)
		return
	}
	if err := s.store.SetRecord(store.KeySettings, string(blob)); err != nil {
		logger.Error("save settings", "err", err)
	}
}

// ============================================================
// Read accessors
// ============================================================

// Templates returns the current drink template list. The caller must not
// modify the returned slice.
func (s *Service) Templates() []DrinkTemplate { return s.settings.DrinkTemplates }

func (s *Service) WeekStartsOnSunday() bool     { return s.settings.WeekStartsOnSunday }
func (s *Service) IndicatorType() IndicatorType { return s.settings.IndicatorType }
func (s *Service) GraphType() GraphType         { return s.settings.GraphType }
func (s *Service) LayoutType() LayoutType       { return s.settings.LayoutType }
func (s *Service) HapticsEnabled() bool         { return s.settings.HapticsEnabled }
func (s *Service) HasSeenIntro() bool           { return s.settings.HasSeenIntro }

// TemplateByID resolves a template, reporting whether it exists.
func (s *Service) TemplateByID(id string) (DrinkTemplate, bool) {
	for _, t := range s.settings.DrinkTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return DrinkTemplate{}, false
}

// ============================================================
// Mutations
// ============================================================

func (s *Service) SetIndicatorType(v IndicatorType) {
	s.settings.IndicatorType = v
	s.persist()
}

func (s *Service) SetWeekStartsOnSunday(v bool) {
	s.settings.WeekStartsOnSunday = v
	s.persist()
}

func (s *Service) SetGraphType(v GraphType) {
	s.settings.GraphType = v
	s.persist()
}

func (s *Service) SetLayoutType(v LayoutType) {
	s.settings.LayoutType = v
	s.persist()
}

func (s *Service) SetHapticsEnabled(v bool) {
	s.settings.HapticsEnabled = v
	s.persist()
}

func (s *Service) MarkIntroSeen() {
	s.settings.HasSeenIntro = true
	s.persist()
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddTemplate adds a new template with a fresh id. Template names are unique
// case-insensitively; on a duplicate the existing template is returned and
// nothing is added.
func (s *Service) AddTemplate(t DrinkTemplate) (DrinkTemplate, bool) {
	key := nameKey(t.Name)
	for _, existing := range s.settings.DrinkTemplates {
		if nameKey(existing.Name) == key {
			logger.Info("add template blocked (duplicate name)", "name", t.Name)
			return existing, false
		}
	}

	t.ID = uuid.NewString()
	s.settings.DrinkTemplates = append(s.settings.DrinkTemplates, t)
	s.persist()
	return t, true
}

// UpdateTemplate replaces the template with the same id. It reports false
// when the new name collides with a different template.
func (s *Service) UpdateTemplate(t DrinkTemplate) bool {
	key := nameKey(t.Name)
	for _, existing := range s.settings.DrinkTemplates {
		if existing.ID != t.ID && nameKey(existing.Name) == key {
			logger.Info("update template blocked (duplicate name)", "id", t.ID, "name", t.Name)
			return false
		}
	}

	for i, existing := range s.settings.DrinkTemplates {
		if existing.ID == t.ID {
			s.settings.DrinkTemplates[i] = t
			s.persist()
			return true
		}
	}
	return false
}

// DeleteTemplate removes a template. Historical day totals already derived
// from it are untouched until those days are next reconciled.
func (s *Service) DeleteTemplate(id string) {
	templates := s.settings.DrinkTemplates[:0]
	for _, t := range s.settings.DrinkTemplates {
		if t.ID != id {
			templates = append(templates, t)
		}
	}
	s.settings.DrinkTemplates = templates
	s.persist()
}

// CalculateUnits derives a drink's units from its serving size in ml and ABV
// percentage, rounded to 2 decimal places.
func CalculateUnits(size string, percentage float64) float64 {
	ml, err := strconv.ParseFloat(strings.TrimSpace(size), 64)
	if err != nil || ml < 0 || percentage < 0 {
		return 0
	}
	return math.Round(ml*percentage/10) / 100
}
