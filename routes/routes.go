package routes

import (
	"net/http"
	"time"

	"climaedu/handlers"
	"climaedu/middleware"
	"climaedu/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes registers the scheduler endpoints. Searching is
// open to authenticated and anonymous students alike; committing a booking
// requires a student identity.
func RegisterSchedulingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/scheduling")
	{
		api.GET("/slots", bh.SearchHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthStudentMiddleware())
		protected.POST("/bookings", bh.BookHandler)
	}
}

// RegisterRoutes wires global middleware and all route groups.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	RegisterSchedulingRoutes(r, bh)
}
