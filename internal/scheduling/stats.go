package scheduling

import (
	"time"

	"tattoo-studio-server/internal/models"
)

// Stats are the dashboard counters.
type Stats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	ThisWeek int `json:"thisWeek"`
}

// ComputeStats counts all appointments, today's, and those inside the
// seven-day week that contains now and begins on weekStart.
func ComputeStats(all []models.Appointment, now time.Time, weekStart time.Weekday) Stats {
	today := models.DateOf(now)
	first := WeekStart(now, weekStart)
	from := models.DateOf(first)
	to := models.DateOf(models.AddDays(first, 6))

	st := Stats{Total: len(all)}
	for _, a := range all {
		if a.Date == today {
			st.Today++
		}
		if a.Date >= from && a.Date <= to {
			st.ThisWeek++
		}
	}
	return st
}

// WeekStart returns midnight of the last weekStart day on or before t.
func WeekStart(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return models.AddDays(t, -offset)
}
