package tracker

import "time"

const dateLayout = "2006-01-02"

func toISODate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseISODate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dateOnly drops the time-of-day component, keeping calendar math in UTC so
// it lines up with parseISODate.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the first day of the week containing t, honoring the
// week-start convention.
func startOfWeek(t time.Time, weekStartsOnSunday bool) time.Time {
	t = dateOnly(t)
	offset := int(t.Weekday()) // Sunday = 0
	if !weekStartsOnSunday {
		if offset == 0 {
			offset = 6
		} else {
			offset--
		}
	}
	return t.AddDate(0, 0, -offset)
}

// weekLabel formats a week as "Jun 2 - Jun 8".
func weekLabel(weekStart time.Time) string {
	weekEnd := weekStart.AddDate(0, 0, 6)
	return weekStart.Format("Jan 2") + " - " + weekEnd.Format("Jan 2")
}

// dayName returns the three-letter English day name for a date.
func dayName(t time.Time) string {
	return t.Weekday().String()[:3]
}
