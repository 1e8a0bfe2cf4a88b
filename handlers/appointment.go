package handlers

import (
	"errors"
	"net/http"

	"petbook/middleware"
	"petbook/models"
	"petbook/services/booking"
	"petbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the form-style appointment endpoints and the
// staff-facing ledger operations.
type AppointmentHandler struct {
	BookingSvc booking.BookingService
}

// NewAppointmentHandler creates a new AppointmentHandler instance.
func NewAppointmentHandler(bookingSvc booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{BookingSvc: bookingSvc}
}

// CreateHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	userEmail := c.GetString(middleware.CtxUserEmail)

	appt, err := h.BookingSvc.Create(userID, userEmail, req)
	if err != nil {
		var vErr *booking.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Message})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Este horário já está agendado. Por favor, escolha outro."})
		default:
			logger.Error("Failed to create appointment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro do servidor ao criar agendamento"})
		}
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListAllHandler handles GET /api/appointments for staff and admins.
func (h *AppointmentHandler) ListAllHandler(c *gin.Context) {
	appts, err := h.BookingSvc.ListAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro do servidor ao buscar agendamentos"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// UpdateStatusHandler handles PUT /api/appointments/:id/status for staff and admins.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.BookingSvc.UpdateStatus(id, req.Status)
	if err != nil {
		var vErr *booking.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Message})
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Agendamento não encontrado."})
		default:
			logger.Error("Failed to update appointment status", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro do servidor ao atualizar status do agendamento"})
		}
		return
	}
	c.JSON(http.StatusOK, appt)
}
