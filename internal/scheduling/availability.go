// Package scheduling holds the read-only projections over the appointment list:
// slot availability, the filtered admin listing, dashboard counts and the month calendar.
// Every function is pure; callers pass the appointments and the current time.
package scheduling

import (
	"time"

	"tattoo-studio-server/internal/models"
)

// AvailableSlots returns the slots of date that can still be booked, in the
// order they were declared. A slot is gone once booked on that date, and on
// today's date once its start time has arrived.
//
// now must be in the studio's location. Dates before today are not rejected
// here; they only skip the time-of-day check.
func AvailableSlots(slots []string, booked []models.Appointment, date string, now time.Time) []string {
	taken := make(map[string]bool, len(booked))
	for _, a := range booked {
		if a.Date == date {
			taken[a.TimeSlot] = true
		}
	}

	isToday := date == models.DateOf(now)
	nowMinutes := now.Hour()*60 + now.Minute()

	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		if taken[slot] {
			continue
		}
		if isToday {
			m, err := models.SlotMinutes(slot)
			if err != nil || m <= nowMinutes {
				continue
			}
		}
		taken[slot] = true // a repeated slot is offered once
		available = append(available, slot)
	}
	return available
}
