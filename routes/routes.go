package routes

import (
	"net/http"
	"time"

	userRepo "petbook/database/repository/user"
	"petbook/handlers"
	"petbook/middleware"
	"petbook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the assembled handlers and the dependencies the route
// middleware needs.
type HandlerBundle struct {
	UserRepo     userRepo.UserRepository
	Auth         *handlers.AuthHandler
	Booking      *handlers.BookingHandler
	Appointments *handlers.AppointmentHandler

	// UploadsDir, when non-empty, is served statically at /uploads.
	UploadsDir string
}

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/profile", hb.Auth.ProfileHandler)
	}
}

// RegisterAppointmentRoutes sets up the slot and ledger endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))

		api.GET("/slots", hb.Booking.GetSlotsHandler)
		api.POST("/book", hb.Booking.BookHandler)
		api.GET("/my-appointments", hb.Booking.MyAppointmentsHandler)

		api.POST("", middleware.RequireRoles(models.RoleUser, models.RoleAdmin), hb.Appointments.CreateHandler)

		// Staff-facing ledger operations.
		staff := api.Group("")
		staff.Use(middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
		staff.GET("", hb.Appointments.ListAllHandler)
		staff.PUT("/:id/status", hb.Appointments.UpdateStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Petbook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if hb.UploadsDir != "" {
		r.Static("/uploads", hb.UploadsDir)
	}

	RegisterAuthRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r)
}
