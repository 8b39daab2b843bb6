package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dentabook/dentist-booking-api/internal/config"
	"github.com/dentabook/dentist-booking-api/internal/services"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

// Handler bundles the services the HTTP layer dispatches to.
type Handler struct {
	Auth          *services.AuthService
	Dentists      *services.DentistService
	Bookings      *services.BookingService
	Notifications *services.NotificationService
	Cfg           *config.Config
	Logger        *zap.Logger
}

func NewHandler(auth *services.AuthService, dentists *services.DentistService, bookings *services.BookingService, notifications *services.NotificationService, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:          auth,
		Dentists:      dentists,
		Bookings:      bookings,
		Notifications: notifications,
		Cfg:           cfg,
		Logger:        logger,
	}
}

// respondError maps a service error to the envelope. fallback is the
// client-facing message for unexpected failures; the underlying error is only
// logged, never returned.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.Fail(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrDuplicateActiveBooking):
		utils.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		utils.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		utils.Fail(c, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, services.ErrNotFound):
		utils.Fail(c, http.StatusNotFound, "Resource not found")
	default:
		h.Logger.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		utils.Fail(c, http.StatusInternalServerError, fallback)
	}
}
