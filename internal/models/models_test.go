package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		date  string
		want  Status
		label string
	}{
		{"2026-10-15", StatusPast, "Finalizado"},
		{"2026-10-16", StatusToday, "Hoje"},
		{"2026-10-17", StatusUpcoming, "Agendado"},
		{"2025-12-31", StatusPast, "Finalizado"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			st := StatusAt(tt.date, now)
			assert.Equal(t, tt.want, st)
			assert.Equal(t, tt.label, st.Label())
		})
	}
}

func TestViewDerivesStatus(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	a := Appointment{ID: 3, Date: "2026-10-16", TimeSlot: "14:00"}

	v := a.View(now)
	assert.Equal(t, 3, v.ID)
	assert.Equal(t, StatusToday, v.Status)

	views := Views([]Appointment{a, {ID: 4, Date: "2026-10-20"}}, now)
	require.Len(t, views, 2)
	assert.Equal(t, StatusUpcoming, views[1].Status)
}

func TestCandidateNormalize(t *testing.T) {
	c := Candidate{ClientName: "  Ana ", Phone: " (11) 91234-5678", Email: "a@b.com ", Notes: "  "}
	n := c.Normalize()
	assert.Equal(t, "Ana", n.ClientName)
	assert.Equal(t, "(11) 91234-5678", n.Phone)
	assert.Equal(t, "a@b.com", n.Email)
	assert.Empty(t, n.Notes)
}

func TestCandidateNormalizeMasksPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11912345678", "(11) 91234-5678"},
		{"2134567890", "(21) 3456-7890"},
		{"(11) 91234-5678", "(11) 91234-5678"},
		{"11 91234 5678", "(11) 91234-5678"},
		{"123", "123"},
		{"119123456789", "119123456789"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidate{Phone: tt.in}.Normalize().Phone)
		})
	}
}

func TestCatalog(t *testing.T) {
	c := Catalog{TimeSlots: []string{"09:00", "10:00"}, Services: []string{"Retoque"}}
	assert.True(t, c.HasSlot("09:00"))
	assert.False(t, c.HasSlot("09:30"))
	assert.True(t, c.HasService("Retoque"))
	assert.False(t, c.HasService("retoque"))
}

func TestSlotMinutes(t *testing.T) {
	m, err := SlotMinutes("14:30")
	require.NoError(t, err)
	assert.Equal(t, 870, m)

	for _, bad := range []string{"", "9:00", "24:00", "12:60", "ab:cd", "12-00"} {
		_, err := SlotMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateHelpers(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	d, err := ParseDate("2026-02-27", loc)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", DateOf(AddDays(d, 2)))
	assert.Equal(t, "2026-02-22", DateOf(AddDays(d, -5)))

	_, err = ParseDate("27/02/2026", loc)
	assert.Error(t, err)
}

func TestAdminAuthenticate(t *testing.T) {
	admin, err := NewAdmin("admin", "123456")
	require.NoError(t, err)

	assert.NotEqual(t, "123456", admin.Password)
	assert.True(t, admin.Authenticate("admin", "123456"))
	assert.False(t, admin.Authenticate("admin", "654321"))
	assert.False(t, admin.Authenticate("root", "123456"))
}
