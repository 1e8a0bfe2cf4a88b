package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"petbook/middleware"
	"petbook/models"
	"petbook/services/booking"
	"petbook/services/storage"
	"petbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReferenceImageSize caps uploaded reference images at 5 MB.
const maxReferenceImageSize = 5 << 20

// referenceFolder is where reference images live under the storage backend.
const referenceFolder = "references"

// BookingHandler exposes slot availability and slot booking endpoints.
type BookingHandler struct {
	BookingSvc booking.BookingService
	StorageSvc storage.StorageService
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(bookingSvc booking.BookingService, storageSvc storage.StorageService) *BookingHandler {
	return &BookingHandler{BookingSvc: bookingSvc, StorageSvc: storageSvc}
}

// GetSlotsHandler handles GET /api/appointments/slots?date=YYYY-MM-DD.
func (h *BookingHandler) GetSlotsHandler(c *gin.Context) {
	date := c.Query("date")

	slots, err := h.BookingSvc.AvailableSlots(date)
	if err != nil {
		var vErr *booking.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": vErr.Message})
			return
		}
		utils.GetLogger().Error("Failed to list available slots", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar horários"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Horários disponíveis para " + date + ":",
		"data":    slots,
	})
}

// BookHandler handles POST /api/appointments/book: a multipart form with the
// slot fields and an optional "referenceImage" file.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID := c.GetString(middleware.CtxUserID)
	userEmail := c.GetString(middleware.CtxUserEmail)

	req := models.BookSlotRequest{
		ServiceID:   c.PostForm("serviceId"),
		ServiceName: c.PostForm("serviceName"),
		Date:        c.PostForm("date"),
		Time:        c.PostForm("time"),
		Notes:       c.PostForm("notes"),
	}

	fileHeader, err := c.FormFile("referenceImage")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		// A real multipart error, not just an absent attachment.
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Falha ao processar o arquivo enviado."})
		return
	}
	if err == nil {
		storedPath, uploadErr := h.storeReferenceImage(c, fileHeader)
		if uploadErr != nil {
			var vErr *booking.ValidationError
			if errors.As(uploadErr, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": vErr.Message})
				return
			}
			logger.Error("Failed to store reference image", zap.Error(uploadErr))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao salvar imagem de referência"})
			return
		}
		req.ReferenceImage = storedPath
	}

	appt, err := h.BookingSvc.Book(userID, userEmail, req)
	if err != nil {
		var vErr *booking.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": vErr.Message})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Este horário já está agendado. Por favor, escolha outro."})
		default:
			logger.Error("Failed to book appointment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao criar agendamento"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Agendamento realizado com sucesso! Um email de confirmação foi enviado.",
		"data":    appt,
	})
}

// MyAppointmentsHandler handles GET /api/appointments/my-appointments.
func (h *BookingHandler) MyAppointmentsHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	appts, err := h.BookingSvc.ListMine(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list user appointments", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao buscar seus agendamentos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(appts),
		"data":    appts,
	})
}

// storeReferenceImage validates the uploaded file (image/* only, max 5 MB),
// stages it to a temp file and hands it to the storage backend.
func (h *BookingHandler) storeReferenceImage(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxReferenceImageSize {
		return "", &booking.ValidationError{Message: "Imagem de referência excede o limite de 5MB."}
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", &booking.ValidationError{Message: "Por favor, envie apenas arquivos de imagem (jpeg, png, gif, etc)."}
	}

	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		return "", err
	}
	defer os.Remove(tempPath)

	return h.StorageSvc.UploadFile(c.Request.Context(), tempPath, referenceFolder)
}
