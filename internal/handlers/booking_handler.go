package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dentabook/dentist-booking-api/internal/middleware"
	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

// ListBookings serves both GET /bookings and the nested
// GET /dentists/:id/bookings. Regular users see their own bookings, admins
// see everything.
func (h *Handler) ListBookings(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var dentistID *primitive.ObjectID
	if param := c.Param("id"); param != "" {
		oid, err := primitive.ObjectIDFromHex(param)
		if err != nil {
			utils.Fail(c, http.StatusNotFound, "Resource not found")
			return
		}
		dentistID = &oid
	}

	bookings, err := h.Bookings.List(c.Request.Context(), identity, dentistID)
	if err != nil {
		h.respondError(c, err, "Cannot get bookings")
		return
	}

	utils.OK(c, http.StatusOK, gin.H{"count": len(bookings), "data": bookings})
}

// GetBooking returns one booking to its owner or an admin.
func (h *Handler) GetBooking(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	booking, err := h.Bookings.Get(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		h.respondError(c, err, "Cannot get booking")
		return
	}
	utils.Data(c, http.StatusOK, booking)
}

// CreateBooking books the dentist from the nested route for the requester.
func (h *Handler) CreateBooking(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Please provide a booking date")
		return
	}

	booking, err := h.Bookings.Create(c.Request.Context(), c.Param("id"), req.Date, identity)
	if err != nil {
		h.respondError(c, err, "Cannot create booking")
		return
	}

	if user, err := h.Auth.Me(c.Request.Context(), identity); err == nil {
		h.Notifications.SendBookingConfirmationSMS(user, booking)
	}

	utils.Data(c, http.StatusCreated, booking)
}

// UpdateBooking applies a partial update for the owner or an admin.
func (h *Handler) UpdateBooking(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	booking, err := h.Bookings.Update(c.Request.Context(), c.Param("id"), req, identity)
	if err != nil {
		h.respondError(c, err, "Cannot update booking")
		return
	}
	utils.Data(c, http.StatusOK, booking)
}

// DeleteBooking removes a booking for the owner or an admin, freeing the
// owner to book again.
func (h *Handler) DeleteBooking(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	if err := h.Bookings.Delete(c.Request.Context(), c.Param("id"), identity); err != nil {
		h.respondError(c, err, "Cannot delete booking")
		return
	}
	utils.Data(c, http.StatusOK, gin.H{})
}
