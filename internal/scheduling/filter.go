package scheduling

import (
	"cmp"
	"slices"

	"tattoo-studio-server/internal/models"
)

// Apply returns the appointments matching f, ordered by date then slot.
// Both filter fields are exact matches and apply together. The input is not modified.
func Apply(all []models.Appointment, f models.Filter) []models.Appointment {
	out := make([]models.Appointment, 0, len(all))
	for _, a := range all {
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		if f.Service != "" && a.Service != f.Service {
			continue
		}
		out = append(out, a)
	}
	slices.SortStableFunc(out, func(a, b models.Appointment) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.TimeSlot, b.TimeSlot),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out
}

// DaySchedule returns the bookings of one date ordered by slot.
func DaySchedule(all []models.Appointment, date string) []models.Appointment {
	return Apply(all, models.Filter{Date: date})
}
