package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dentabook/dentist-booking-api/internal/config"
	"github.com/dentabook/dentist-booking-api/internal/handlers"
	"github.com/dentabook/dentist-booking-api/internal/middleware"
	"github.com/dentabook/dentist-booking-api/internal/models"
)

// Setup wires the route table. Everything lives under /api/v1 behind the
// rate limiter; Protect and Authorize are applied per route.
func Setup(r *gin.Engine, h *handlers.Handler, verifier middleware.TokenVerifier, users middleware.UserResolver, cfg *config.Config) {
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow))

	protect := middleware.Protect(verifier, users)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", protect, h.GetMe)
		auth.GET("/logout", protect, h.Logout)
	}

	dentists := api.Group("/dentists")
	{
		dentists.GET("", h.ListDentists)
		dentists.GET("/:id", h.GetDentist)
		dentists.POST("", protect, adminOnly, h.CreateDentist)
		dentists.PUT("/:id", protect, adminOnly, h.UpdateDentist)
		dentists.DELETE("/:id", protect, adminOnly, h.DeleteDentist)

		// Nested booking routes: /dentists/:id/bookings
		dentists.GET("/:id/bookings", protect, h.ListBookings)
		dentists.POST("/:id/bookings", protect, h.CreateBooking)
	}

	bookings := api.Group("/bookings", protect)
	{
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}
