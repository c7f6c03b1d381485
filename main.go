package main

import (
	"log"

	"roomledger-backend/config"
	"roomledger-backend/database"
	"roomledger-backend/handlers"
	"roomledger-backend/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Metrics())

	// Health check and metrics
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetProfile)

		// Rooms
		api.POST("/rooms", handlers.CreateRoom)
		api.GET("/rooms", handlers.GetRooms)
		api.GET("/rooms/:id", handlers.GetRoom)
		api.POST("/rooms/:id/members", handlers.AddMember)
		api.DELETE("/rooms/:id/members", handlers.RemoveMember)
		api.DELETE("/rooms/:id", handlers.DeleteRoom)

		// Room expense ledger
		api.POST("/room-expenses", handlers.CreateRoomExpense)
		api.GET("/room-expenses/:id", handlers.GetRoomExpenses)
		api.GET("/room-expenses/:id/history", handlers.GetRoomExpenseHistory)
		api.GET("/room-expenses/:id/analytics", handlers.GetRoomAnalytics)
		api.GET("/room-expenses/:id/debt-breakdown", handlers.GetDebtBreakdown)
		api.DELETE("/room-expenses/:id/reset", handlers.ResetRoomExpenses)
		api.PUT("/room-expenses/:id/status", handlers.UpdatePaymentStatus)
		api.PUT("/room-expenses/:id/partial-payment", handlers.UpdatePartialPayment)
		api.DELETE("/room-expenses/:id", handlers.DeleteRoomExpense)

		// Personal expenses and salary
		api.POST("/expenses", handlers.CreatePersonalExpense)
		api.GET("/expenses", handlers.GetPersonalExpenses)
		api.GET("/expenses/analytics", handlers.GetPersonalAnalytics)
		api.GET("/expenses/categories", handlers.GetPersonalExpenseCategories)
		api.PUT("/expenses/:id", handlers.UpdatePersonalExpense)
		api.DELETE("/expenses/:id", handlers.DeletePersonalExpense)
		api.PUT("/salary", handlers.SetSalary)
		api.GET("/salary", handlers.GetSalary)

		// Investments
		api.POST("/investments", handlers.CreateInvestment)
		api.GET("/investments", handlers.GetInvestments)
		api.GET("/investments/types", handlers.GetInvestmentTypes)
		api.GET("/investments/:id", handlers.GetInvestment)
		api.PUT("/investments/:id", handlers.UpdateInvestment)
		api.DELETE("/investments/:id", handlers.DeleteInvestment)
	}

	// Start server
	port := config.AppConfig.Port
	addr := "0.0.0.0:" + port
	log.Printf("🚀 %s server starting on %s", config.AppConfig.AppName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
