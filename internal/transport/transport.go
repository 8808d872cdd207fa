package transport

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/lerarestechnologies-gif/rafting/internal/transport/middleware"
)

func InitRoutes(db *sql.DB, bookingHandler *BookingHandler, settingsHandler *SettingsHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(rate.Limit(10), 20))
	{
		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.POST("/track", bookingHandler.TrackBookings)
		}

		api.GET("/availability", bookingHandler.GetAvailability)
		api.GET("/settings", settingsHandler.GetSettings)

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.GET("/bookings", bookingHandler.GetAllBookings)
			admin.GET("/bookings/recent", bookingHandler.GetRecentBookings)
			admin.PUT("/settings", settingsHandler.UpdateSettings)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "error",
				"database": "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": "connected",
		})
	})

	return router
}
