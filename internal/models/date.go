package models

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar date format used everywhere a date is stored or compared.
// Its fixed width makes string order equal to chronological order.
const DateLayout = "2006-01-02"

// DateOf returns t's calendar date in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// SlotMinutes converts an HH:MM slot to minutes after midnight.
func SlotMinutes(slot string) (int, error) {
	if len(slot) != 5 || slot[2] != ':' {
		return 0, fmt.Errorf("invalid time slot %q", slot)
	}
	h, err := strconv.Atoi(slot[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	m, err := strconv.Atoi(slot[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time slot %q", slot)
	}
	return h*60 + m, nil
}
