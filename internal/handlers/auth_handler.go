package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dentabook/dentist-booking-api/internal/middleware"
	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

// Register creates an account and signs the caller in.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Please provide name, telephone, email and password")
		return
	}

	_, token, err := h.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Cannot register user")
		return
	}

	h.sendTokenResponse(c, http.StatusOK, token)
}

// Login verifies credentials and hands out a token plus cookie.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Please provide an email and password")
		return
	}

	_, token, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Cannot log in")
		return
	}

	h.sendTokenResponse(c, http.StatusOK, token)
}

// GetMe returns the authenticated user's profile.
func (h *Handler) GetMe(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	user, err := h.Auth.Me(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err, "Cannot get current user")
		return
	}

	utils.Data(c, http.StatusOK, user)
}

// Logout overwrites the token cookie so the middleware treats the client as
// signed out. The token itself stays valid until expiry (stateless tokens,
// no revocation list).
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "none", 10, "/", "", h.Cfg.IsProduction(), true)
	utils.OK(c, http.StatusOK, gin.H{"data": gin.H{}})
}

// sendTokenResponse sets the httpOnly token cookie and returns the token in
// the envelope so header-based clients can use it too.
func (h *Handler) sendTokenResponse(c *gin.Context, status int, token string) {
	maxAge := int((time.Duration(h.Cfg.CookieExpireDays) * 24 * time.Hour).Seconds())
	c.SetCookie("token", token, maxAge, "/", "", h.Cfg.IsProduction(), true)
	utils.OK(c, status, gin.H{"token": token})
}
