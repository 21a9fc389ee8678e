package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sura-dev/sura/internal/handlers"
	"github.com/sura-dev/sura/internal/middleware"
	"github.com/sura-dev/sura/internal/routing"
	"github.com/sura-dev/sura/internal/types"
)

func NewRouter(engine *routing.Engine) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	donations := handlers.NewDonationHandler(engine)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", handlers.WebSocket)

		api.POST("/donations", donations.Create)
		api.GET("/donations", donations.List)
		// Respond is a GET because accept/decline arrive as link clicks
		// from NGO email.
		api.GET("/respond", donations.Respond)

		api.GET("/ngos", handlers.ListNGOs)
		api.GET("/restaurants", handlers.ListRestaurants)

		api.POST("/register", handlers.RegisterRestaurant)
		api.POST("/login", handlers.LoginRestaurant)
		api.POST("/logout", handlers.Logout)
		api.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	}

	return r
}
