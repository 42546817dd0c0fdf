package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tattoo-studio-server/internal/models"
)

func TestMonthGrid(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	all := []models.Appointment{
		{ID: 1, Date: "2026-10-10", TimeSlot: "09:00"},
		{ID: 2, Date: "2026-10-16", TimeSlot: "14:00"},
		{ID: 3, Date: "2026-10-20", TimeSlot: "09:00"},
		{ID: 4, Date: "2026-10-20", TimeSlot: "10:00"},
	}

	grid := MonthGrid(2026, time.October, all, now, time.Sunday)
	require.Len(t, grid, 42)

	assert.Equal(t, "2026-09-27", grid[0].Date)
	assert.False(t, grid[0].InMonth)
	assert.Equal(t, "2026-11-07", grid[41].Date)
	assert.False(t, grid[41].InMonth)

	byDate := map[string]CalendarDay{}
	for _, d := range grid {
		byDate[d.Date] = d
	}

	assert.Equal(t, DayPast, byDate["2026-10-10"].State, "past wins over booked")
	assert.Equal(t, 1, byDate["2026-10-10"].Bookings)

	today := byDate["2026-10-16"]
	assert.True(t, today.IsToday)
	assert.Equal(t, DayBooked, today.State)

	assert.Equal(t, DayBooked, byDate["2026-10-20"].State)
	assert.Equal(t, 2, byDate["2026-10-20"].Bookings)
	assert.Equal(t, DayAvailable, byDate["2026-10-21"].State)
	assert.Equal(t, 21, byDate["2026-10-21"].Day)
	assert.True(t, byDate["2026-10-31"].InMonth)
}

func TestMonthGridMondayStart(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	grid := MonthGrid(2026, time.October, nil, now, time.Monday)
	require.Len(t, grid, 42)
	assert.Equal(t, "2026-09-28", grid[0].Date)
}
