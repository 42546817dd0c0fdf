package models

import (
	"slices"
	"strings"
	"time"
)

// Status is derived from the appointment date at read time and never stored.
type Status string

const (
	StatusPast     Status = "past"
	StatusToday    Status = "today"
	StatusUpcoming Status = "upcoming"
)

// Label returns the text shown to studio staff and written to exports.
func (s Status) Label() string {
	switch s {
	case StatusPast:
		return "Finalizado"
	case StatusToday:
		return "Hoje"
	default:
		return "Agendado"
	}
}

// StatusAt classifies a YYYY-MM-DD date against now's calendar date.
func StatusAt(date string, now time.Time) Status {
	today := DateOf(now)
	switch {
	case date < today:
		return StatusPast
	case date == today:
		return StatusToday
	default:
		return StatusUpcoming
	}
}

// Appointment is a booked session. It is only ever created and deleted, never edited.
type Appointment struct {
	ID         int       `json:"id"`
	ClientName string    `json:"clientName"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Date       string    `json:"date"`
	TimeSlot   string    `json:"timeSlot"`
	Service    string    `json:"service"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AppointmentView is an Appointment plus its derived status, as returned by the API.
type AppointmentView struct {
	Appointment
	Status      Status `json:"status"`
	StatusLabel string `json:"statusLabel"`
}

// View derives the status at now.
func (a Appointment) View(now time.Time) AppointmentView {
	st := StatusAt(a.Date, now)
	return AppointmentView{Appointment: a, Status: st, StatusLabel: st.Label()}
}

// Views derives the status of every appointment at now.
func Views(appts []Appointment, now time.Time) []AppointmentView {
	out := make([]AppointmentView, len(appts))
	for i, a := range appts {
		out[i] = a.View(now)
	}
	return out
}

// Candidate is an appointment submission before validation.
type Candidate struct {
	ClientName string `json:"clientName" validate:"required,min=2"`
	Phone      string `json:"phone" validate:"required,phone_br"`
	Email      string `json:"email" validate:"required,basic_email"`
	Date       string `json:"date" validate:"required,iso_date"`
	TimeSlot   string `json:"timeSlot" validate:"required"`
	Service    string `json:"service" validate:"required"`
	Notes      string `json:"notes"`
}

// Normalize trims surrounding whitespace from every field and masks a phone
// given as 10 or 11 bare digits into the (NN) NNNN-NNNN form.
func (c Candidate) Normalize() Candidate {
	return Candidate{
		ClientName: strings.TrimSpace(c.ClientName),
		Phone:      maskPhone(strings.TrimSpace(c.Phone)),
		Email:      strings.TrimSpace(c.Email),
		Date:       strings.TrimSpace(c.Date),
		TimeSlot:   strings.TrimSpace(c.TimeSlot),
		Service:    strings.TrimSpace(c.Service),
		Notes:      strings.TrimSpace(c.Notes),
	}
}

func maskPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) != 10 && len(digits) != 11 {
		return phone
	}
	local := digits[2:]
	split := len(local) - 4
	return "(" + digits[:2] + ") " + local[:split] + "-" + local[split:]
}

// Filter narrows the admin listing. Empty fields match everything.
type Filter struct {
	Date    string `json:"date" form:"date"`
	Service string `json:"service" form:"service"`
}

func (f Filter) IsZero() bool {
	return f.Date == "" && f.Service == ""
}

// Catalog is the studio's bookable time slots and services, in declared order.
type Catalog struct {
	TimeSlots []string `json:"timeSlots"`
	Services  []string `json:"services"`
}

func (c Catalog) HasSlot(slot string) bool {
	return slices.Contains(c.TimeSlots, slot)
}

func (c Catalog) HasService(service string) bool {
	return slices.Contains(c.Services, service)
}
