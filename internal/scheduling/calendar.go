package scheduling

import (
	"time"

	"tattoo-studio-server/internal/models"
)

// CalendarWeeks is the fixed number of rows in a month grid.
const CalendarWeeks = 6

// DayState is how a calendar cell is rendered.
type DayState string

const (
	DayPast      DayState = "past"
	DayBooked    DayState = "booked"
	DayAvailable DayState = "available"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date     string   `json:"date"`
	Day      int      `json:"day"`
	InMonth  bool     `json:"inMonth"`
	IsToday  bool     `json:"isToday"`
	Bookings int      `json:"bookings"`
	State    DayState `json:"state"`
}

// MonthGrid lays out six full weeks starting on the weekStart day on or
// before the first of the month. Past days are marked past regardless of
// bookings; other days are booked when they hold at least one appointment.
func MonthGrid(year int, month time.Month, all []models.Appointment, now time.Time, weekStart time.Weekday) []CalendarDay {
	perDate := make(map[string]int, len(all))
	for _, a := range all {
		perDate[a.Date]++
	}

	today := models.DateOf(now)
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	start := WeekStart(first, weekStart)

	days := make([]CalendarDay, 0, CalendarWeeks*7)
	for i := 0; i < CalendarWeeks*7; i++ {
		d := models.AddDays(start, i)
		date := models.DateOf(d)
		cell := CalendarDay{
			Date:     date,
			Day:      d.Day(),
			InMonth:  d.Month() == first.Month(),
			IsToday:  date == today,
			Bookings: perDate[date],
		}
		switch {
		case date < today:
			cell.State = DayPast
		case cell.Bookings > 0:
			cell.State = DayBooked
		default:
			cell.State = DayAvailable
		}
		days = append(days, cell)
	}
	return days
}
