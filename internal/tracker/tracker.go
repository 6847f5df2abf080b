package tracker

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/mertcano/drinktrack/internal/logger"
	"github.com/mertcano/drinktrack/internal/settings"
	"github.com/mertcano/drinktrack/internal/store"
)

// SettingsSource is the slice of the settings service the engine needs:
// drink templates to resolve tally unit values, and the week-start
// convention for calendar bucketing.
type SettingsSource interface {
	Templates() []settings.DrinkTemplate
	WeekStartsOnSunday() bool
}

// fallbackTemplates resolves tallies whose template no longer exists in the
// settings list. Deleting a template therefore does not zero historical
// days that logged one of these ids; anything else contributes 0 units.
var fallbackTemplates = []settings.DrinkTemplate{
	{ID: "default-wine", Name: "Wine (large glass)", Emoji: "🍷", Units: 3.38, Size: "250", Percentage: 13.5},
	{ID: "default-wine-small", Name: "Wine (small glass)", Emoji: "🍷", Units: 2.36, Size: "175", Percentage: 13.5},
	{ID: "default-beer", Name: "Beer (Pint)", Emoji: "🍺", Units: 2.84, Size: "568", Percentage: 5},
	{ID: "default-spirits", Name: "Spirits", Emoji: "🥃", Units: 2, Size: "50", Percentage: 40},
}

// DayData is one annotated day in a derived week view.
type DayData struct {
	Day        string
	Date       string
	Units      float64
	Drank      bool
	DrinkCount int
}

// WeekData is a derived, read-only view of one calendar week.
type WeekData struct {
	Label string
	Days  []DayData
}

// Statistics are rolling averages over the whole recorded history.
type Statistics struct {
	AvgUnitsPerWeek        float64
	AvgDrinkingDaysPerWeek float64
}

// Engine owns the date → DayEntry map. All mutations run on the UI event
// loop; the only concurrency is the fire-and-forget persistence write, which
// operates on a pre-marshalled snapshot and never touches the map.
type Engine struct {
	store    *store.Store
	settings SettingsSource
	data     map[string]DayEntry
	loading  bool

	now func() time.Time

	saveMu    sync.Mutex
	saveWG    sync.WaitGroup
	saveSeq   uint64
	savedSeq  uint64
}

func NewEngine(st *store.Store, src SettingsSource) *Engine {
	e := &Engine{
		store:    st,
		settings: src,
		loading:  true,
		now:      time.Now,
	}
	e.load()
	e.loading = false
	return e
}

// load reads the persisted record, normalizing and reconciling every entry.
// A missing, unreadable, or malformed record degrades to an empty map, the
// same as a fresh install.
func (e *Engine) load() {
	e.data = make(map[string]DayEntry)

	blob, err := e.store.GetRecord(store.KeyTrackerData)
	if errors.Is(err, store.ErrNoRecord) {
		return
	}
	if err != nil {
		logger.Warn("load tracker data", "err", err)
		return
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		logger.Warn("parse tracker data, starting empty", "err", err)
		return
	}

	for date, value := range raw {
		e.data[date] = e.reconcile(normalizeEntry(value))
	}
}

// reconcile re-derives Units and DrinkCount from DrinkCounts whenever any
// tallies exist, making them authoritative over whatever was stored. Older
// records without tallies keep their aggregate totals. Idempotent.
func (e *Engine) reconcile(entry DayEntry) DayEntry {
	if len(entry.DrinkCounts) > 0 {
		entry.Units, entry.DrinkCount = e.totalsFromCounts(entry.DrinkCounts)
	}
	entry.Drank = entry.Drank || entry.Units > 0
	return entry
}

// totalsFromCounts sums units and servings over all positive tallies,
// resolving each template against the settings list and then the built-in
// fallback list. Unknown ids contribute zero units but still count.
func (e *Engine) totalsFromCounts(counts map[string]int) (float64, int) {
	var units float64
	var drinkCount int

	for id, count := range counts {
		if count <= 0 {
			continue
		}
		drinkCount += count
		units += float64(count) * e.templateUnits(id)
	}
	return round2(units), drinkCount
}

func (e *Engine) templateUnits(id string) float64 {
	for _, t := range e.settings.Templates() {
		if t.ID == id {
			return t.Units
		}
	}
	for _, t := range fallbackTemplates {
		if t.ID == id {
			return t.Units
		}
	}
	return 0
}

// entryFor returns the current entry for a date, zero-valued (with a usable
// tally map) when the date has never been touched.
func (e *Engine) entryFor(date string) DayEntry {
	entry, ok := e.data[date]
	if !ok {
		return DayEntry{DrinkCounts: map[string]int{}}
	}
	if entry.DrinkCounts == nil {
		entry.DrinkCounts = map[string]int{}
	}
	return entry
}

// ============================================================
// Mutations
// ============================================================

// ToggleDrank cycles a day through its three states:
//  1. anything logged → zero the day, stashing the tallies in
//     SavedDrinkCounts so nothing is lost;
//  2. not-drank with a stashed snapshot → restore the snapshot and
//     re-derive totals;
//  3. otherwise → flip the drank flag in place.
//
// Toggling twice on a day with logged drinks restores it exactly.
func (e *Engine) ToggleDrank(date string) {
	current := e.entryFor(date)

	if current.Units > 0 || current.DrinkCount > 0 || len(current.DrinkCounts) > 0 {
		logger.Debug("toggle: stashing drinks, marking no-drink day", "date", date)
		e.data[date] = DayEntry{
			DrinkCounts:      map[string]int{},
			SavedDrinkCounts: current.DrinkCounts,
		}
		e.persist()
		return
	}

	if !current.Drank && len(current.SavedDrinkCounts) > 0 {
		logger.Debug("toggle: restoring stashed drinks", "date", date)
		units, count := e.totalsFromCounts(current.SavedDrinkCounts)
		e.data[date] = DayEntry{
			Units:       units,
			Drank:       true,
			DrinkCount:  count,
			DrinkCounts: current.SavedDrinkCounts,
		}
		e.persist()
		return
	}

	current.Drank = !current.Drank
	e.data[date] = current
	e.persist()
}

// AddUnits logs drinks against a date. With a drinkID the per-template tally
// is adjusted by countChange (floored at zero, key removed when it empties)
// and totals are re-derived from the tallies; unitsToAdd is ignored in that
// mode. Without a drinkID, unitsToAdd and countChange adjust the aggregate
// totals directly and the tallies are left alone.
//
// Drank turns on whenever the resulting totals are positive, but is never
// turned off here: decrementing a day back to zero keeps drank as it was.
// Only ToggleDrank clears it. Either mode drops any SavedDrinkCounts
// snapshot.
func (e *Engine) AddUnits(date string, unitsToAdd float64, countChange int, drinkID string) {
	current := e.entryFor(date)

	nextCounts := make(map[string]int, len(current.DrinkCounts)+1)
	for id, count := range current.DrinkCounts {
		nextCounts[id] = count
	}

	if drinkID != "" {
		next := nextCounts[drinkID] + countChange
		if next <= 0 {
			delete(nextCounts, drinkID)
		} else {
			nextCounts[drinkID] = next
		}

		units, count := e.totalsFromCounts(nextCounts)
		drank := current.Drank
		if units > 0 || count > 0 {
			drank = true
		}
		e.data[date] = DayEntry{
			Units:       units,
			Drank:       drank,
			DrinkCount:  count,
			DrinkCounts: nextCounts,
		}
		e.persist()
		return
	}

	units := math.Max(0, current.Units+unitsToAdd)
	count := current.DrinkCount + countChange
	if count < 0 {
		count = 0
	}
	drank := current.Drank
	if units > 0 || count > 0 {
		drank = true
	}
	e.data[date] = DayEntry{
		Units:       units,
		Drank:       drank,
		DrinkCount:  count,
		DrinkCounts: nextCounts,
	}
	e.persist()
}

// ============================================================
// Derived reads
// ============================================================

// EarliestEntryDate returns the smallest date key with any recorded
// activity, or "" when nothing has been logged.
func (e *Engine) EarliestEntryDate() string {
	earliest := ""
	for date, entry := range e.data {
		if !entry.hasActivity() {
			continue
		}
		if earliest == "" || date < earliest {
			earliest = date
		}
	}
	return earliest
}

// WeeksWithData rebuilds the rolling week calendar, most recent week first.
// The walk starts at the week containing today and stops once a week starts
// before the earliest recorded entry; with no history only the current week
// is returned. Days are always in chronological order within their week.
func (e *Engine) WeeksWithData() []WeekData {
	today := dateOnly(e.now())

	historyStart := today
	if earliest := e.EarliestEntryDate(); earliest != "" {
		if t, ok := parseISODate(earliest); ok {
			historyStart = t
		}
	}

	sunday := e.settings.WeekStartsOnSunday()
	cursor := startOfWeek(today, sunday)

	// The current week is always included; older weeks are added until one
	// would start before the earliest recorded entry.
	var weeks []WeekData
	for {
		weeks = append(weeks, e.buildWeek(cursor))
		cursor = cursor.AddDate(0, 0, -7)
		if cursor.Before(historyStart) {
			break
		}
	}
	return weeks
}

func (e *Engine) buildWeek(weekStart time.Time) WeekData {
	week := WeekData{Label: weekLabel(weekStart), Days: make([]DayData, 0, 7)}
	for offset := 0; offset < 7; offset++ {
		d := weekStart.AddDate(0, 0, offset)
		date := toISODate(d)
		day := DayData{Day: dayName(d), Date: date}
		if entry, ok := e.data[date]; ok {
			day.Units = entry.Units
			day.Drank = entry.Drank || entry.Units > 0
			day.DrinkCount = entry.DrinkCount
		}
		week.Days = append(week.Days, day)
	}
	return week
}

// CalculateStatistics averages over every calendar day from the earliest
// entry to today inclusive. History shorter than a week still divides by a
// fractional week count, so a 3-day-old install reports a weekly rate
// instead of zero or an inflated number.
func (e *Engine) CalculateStatistics() Statistics {
	earliest := e.EarliestEntryDate()
	if earliest == "" {
		return Statistics{}
	}
	start, ok := parseISODate(earliest)
	if !ok {
		return Statistics{}
	}

	today := dateOnly(e.now())
	daysTotal := int(today.Sub(start).Hours()/24) + 1
	if daysTotal < 0 {
		daysTotal = 0
	}
	weeksTotal := math.Max(1, float64(daysTotal)/7)

	var totalUnits float64
	var drinkingDays int
	for i := 0; i < daysTotal; i++ {
		entry, ok := e.data[toISODate(start.AddDate(0, 0, i))]
		if !ok {
			continue
		}
		totalUnits += entry.Units
		if entry.Drank || entry.Units > 0 {
			drinkingDays++
		}
	}

	return Statistics{
		AvgUnitsPerWeek:        round1(totalUnits / weeksTotal),
		AvgDrinkingDaysPerWeek: round1(float64(drinkingDays) / weeksTotal),
	}
}

// Data returns a snapshot copy of the full day-entry map.
func (e *Engine) Data() map[string]DayEntry {
	snapshot := make(map[string]DayEntry, len(e.data))
	for date, entry := range e.data {
		snapshot[date] = entry
	}
	return snapshot
}

// Entry returns the entry for one date, zero-valued when absent.
func (e *Engine) Entry(date string) DayEntry {
	return e.entryFor(date)
}

// Loading reports whether the initial load is still in progress.
func (e *Engine) Loading() bool {
	return e.loading
}

// ============================================================
// Persistence
// ============================================================

// persist snapshots the whole map synchronously and writes it in the
// background. A failed write is logged and dropped; the in-memory state is
// already what the UI shows and stays authoritative for the session.
func (e *Engine) persist() {
	blob, err := json.Marshal(e.data)
	if err != nil {
		logger.Error("encode tracker data", "err", err)
		return
	}

	// Mutations are serialized by the event loop, but their writes are not:
	// the sequence number lets a late writer detect that a newer snapshot
	// already landed, so last-write-wins holds under slow storage.
	e.saveSeq++
	seq := e.saveSeq

	e.saveWG.Add(1)
	go func() {
		defer e.saveWG.Done()
		e.saveMu.Lock()
		defer e.saveMu.Unlock()
		if seq <= e.savedSeq {
			return
		}
		e.savedSeq = seq
		if err := e.store.SetRecord(store.KeyTrackerData, string(blob)); err != nil {
			logger.Error("save tracker data", "err", err)
		}
	}()
}

// Flush blocks until all pending writes have finished. Called on shutdown
// and by tests.
func (e *Engine) Flush() {
	e.saveWG.Wait()
}
