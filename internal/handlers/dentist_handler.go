package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/storage"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

// ListDentists is public. The query string supports equality and range
// filters, select, sort and page/limit, translated by ParseListQuery.
func (h *Handler) ListDentists(c *gin.Context) {
	q := storage.ParseListQuery(c.Request.URL.Query())

	dentists, pagination, err := h.Dentists.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err, "Cannot get dentists")
		return
	}

	utils.OK(c, http.StatusOK, gin.H{
		"count":      len(dentists),
		"pagination": pagination,
		"data":       dentists,
	})
}

// GetDentist is public.
func (h *Handler) GetDentist(c *gin.Context) {
	dentist, err := h.Dentists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Cannot get dentist")
		return
	}
	utils.Data(c, http.StatusOK, dentist)
}

// CreateDentist is admin-only (enforced by route middleware).
func (h *Handler) CreateDentist(c *gin.Context) {
	var payload models.DentistPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	dentist, err := h.Dentists.Create(c.Request.Context(), payload)
	if err != nil {
		h.respondError(c, err, "Cannot create dentist")
		return
	}
	utils.Data(c, http.StatusCreated, dentist)
}

// UpdateDentist is admin-only.
func (h *Handler) UpdateDentist(c *gin.Context) {
	var payload models.DentistPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	dentist, err := h.Dentists.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		h.respondError(c, err, "Cannot update dentist")
		return
	}
	utils.Data(c, http.StatusOK, dentist)
}

// DeleteDentist is admin-only and cascades over the dentist's bookings.
func (h *Handler) DeleteDentist(c *gin.Context) {
	if err := h.Dentists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Cannot delete dentist")
		return
	}
	utils.Data(c, http.StatusOK, gin.H{})
}
