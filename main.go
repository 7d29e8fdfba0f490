package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cresly-pos/config"
	"cresly-pos/controllers"
	"cresly-pos/routes"
	"cresly-pos/seeders"
	"cresly-pos/services"
	"cresly-pos/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		config.GetLogger().Warn("no .env file found, using environment as-is")
	}

	// connect db
	config.ConnectDatabase()

	log := config.GetLogger()
	hub := ws.NewHub(log)

	inventoryService := services.NewInventoryService(config.DB, log)
	registerService := services.NewRegisterService(config.DB, log)
	orderService := services.NewOrderService(config.DB, inventoryService, registerService, hub, log)

	// Dashboard clients may ask the orders channel for today's list.
	hub.OrdersProvider = func() (interface{}, error) {
		orders, err := orderService.TodayOrders()
		return orders, err
	}

	// init router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// routes
	routes.RegisterRoutes(r, hub,
		controllers.NewOrderController(orderService),
		controllers.NewInventoryController(inventoryService),
		controllers.NewRegisterController(registerService),
		controllers.NewMenuController(config.DB),
	)

	// seed catalog data
	seeders.Seed()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
