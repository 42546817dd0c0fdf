package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tattoo-studio-server/internal/export"
	"tattoo-studio-server/internal/logging"
	"tattoo-studio-server/internal/models"
	"tattoo-studio-server/internal/store"
	"tattoo-studio-server/internal/utils"
)

// AdminHandler serves the back-office views.
type AdminHandler struct {
	Store  *store.Store
	Logger *logging.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(s *store.Store, logger *logging.Logger) *AdminHandler {
	return &AdminHandler{Store: s, Logger: logger}
}

// FilterRequest is the admin filter. Empty fields match everything.
type FilterRequest struct {
	Date    string `json:"date" form:"date"`
	Service string `json:"service" form:"service"`
}

func (r FilterRequest) toFilter() (models.Filter, error) {
	if r.Date != "" {
		if _, err := time.Parse(models.DateLayout, r.Date); err != nil {
			return models.Filter{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", r.Date)
		}
	}
	return models.Filter{Date: r.Date, Service: r.Service}, nil
}

// GetAppointments returns the filtered appointment list with statuses.
// A date or service query parameter replaces the stored filter first.
func (h *AdminHandler) GetAppointments(c *gin.Context) {
	_, hasDate := c.GetQuery("date")
	_, hasService := c.GetQuery("service")
	if hasDate || hasService {
		var req FilterRequest
		if !utils.BindQuery(c, &req) {
			return
		}
		f, err := req.toFilter()
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		h.Store.SetFilter(f)
	}

	utils.Success(c, "Appointments retrieved successfully", models.Views(h.Store.CurrentView(), h.Store.Now()))
}

// GetFilter returns the stored filter.
func (h *AdminHandler) GetFilter(c *gin.Context) {
	utils.Success(c, "Filter retrieved successfully", h.Store.Filter())
}

// SetFilter replaces the stored filter.
func (h *AdminHandler) SetFilter(c *gin.Context) {
	var req FilterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	f, err := req.toFilter()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	h.Store.SetFilter(f)
	utils.Success(c, "Filter updated successfully", f)
}

// ResetFilter clears the stored filter.
func (h *AdminHandler) ResetFilter(c *gin.Context) {
	h.Store.ResetFilter()
	utils.Success(c, "Filter cleared successfully", h.Store.Filter())
}

// DeleteResponse reports the outcome of a removal.
type DeleteResponse struct {
	ID      int  `json:"id"`
	Removed bool `json:"removed"`
}

// DeleteAppointment removes an appointment. Unknown ids succeed with removed=false.
func (h *AdminHandler) DeleteAppointment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID")
		return
	}

	removed := h.Store.Remove(c.Request.Context(), id)
	msg := "Appointment deleted successfully"
	if !removed {
		msg = "Appointment not found, nothing to delete"
	}
	utils.Success(c, msg, DeleteResponse{ID: id, Removed: removed})
}

// GetStats returns the dashboard counters.
func (h *AdminHandler) GetStats(c *gin.Context) {
	utils.Success(c, "Statistics retrieved successfully", h.Store.Stats())
}

// ExportCSV downloads the filtered appointment list.
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	appts := h.Store.CurrentView()
	if len(appts) == 0 {
		utils.NotFound(c, "No appointments to export")
		return
	}

	now := h.Store.Now()
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, appts, now); err != nil {
		h.Logger.Error("csv export failed", "err", err)
		utils.InternalServerError(c, "Failed to export appointments")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(now)))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
