package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tattoo-studio-server/internal/models"
	"tattoo-studio-server/internal/scheduling"
	"tattoo-studio-server/internal/store"
	"tattoo-studio-server/internal/utils"
	"tattoo-studio-server/internal/validation"
)

// BookingHandler serves the public booking flow.
type BookingHandler struct {
	Store *store.Store
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(s *store.Store) *BookingHandler {
	return &BookingHandler{Store: s}
}

// GetCatalog returns the bookable slots and services.
func (h *BookingHandler) GetCatalog(c *gin.Context) {
	utils.Success(c, "Catalog retrieved successfully", h.Store.Catalog())
}

// AvailabilityResponse lists the free slots of one date.
type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// GetAvailability lists the slots still free on the requested date.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.Success(c, "No date selected", AvailabilityResponse{Slots: []string{}})
		return
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}
	utils.Success(c, "Availability retrieved successfully", AvailabilityResponse{
		Date:  date,
		Slots: h.Store.AvailableSlots(date),
	})
}

// CreateAppointment validates and books a submission.
func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	var req models.Candidate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	appt, err := h.Store.Book(c.Request.Context(), req)
	if err != nil {
		if verr, ok := validation.AsError(err); ok {
			utils.ValidationFailed(c, verr)
			return
		}
		utils.InternalServerError(c, "Failed to book appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment booked successfully", appt.View(h.Store.Now()))
}

// CalendarQuery selects the month shown; zero values mean the current month.
type CalendarQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// CalendarResponse is a six-week month grid.
type CalendarResponse struct {
	Year  int                      `json:"year"`
	Month int                      `json:"month"`
	Days  []scheduling.CalendarDay `json:"days"`
}

// GetCalendar returns the month grid with per-day booking counts.
func (h *BookingHandler) GetCalendar(c *gin.Context) {
	var q CalendarQuery
	if !utils.BindQuery(c, &q) {
		return
	}

	now := h.Store.Now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}

	utils.Success(c, "Calendar retrieved successfully", CalendarResponse{
		Year:  q.Year,
		Month: q.Month,
		Days:  h.Store.Calendar(q.Year, time.Month(q.Month)),
	})
}

// DayEntry is one booking in a day schedule. Contact details stay private.
type DayEntry struct {
	TimeSlot   string `json:"timeSlot"`
	ClientName string `json:"clientName"`
	Service    string `json:"service"`
	Notes      string `json:"notes,omitempty"`
}

// GetDaySchedule lists the bookings of one date ordered by slot.
func (h *BookingHandler) GetDaySchedule(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	appts := h.Store.DaySchedule(date)
	entries := make([]DayEntry, 0, len(appts))
	for _, a := range appts {
		entries = append(entries, DayEntry{
			TimeSlot:   a.TimeSlot,
			ClientName: a.ClientName,
			Service:    a.Service,
			Notes:      a.Notes,
		})
	}
	utils.Success(c, "Day schedule retrieved successfully", entries)
}
