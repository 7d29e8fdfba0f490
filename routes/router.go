package routes

import (
	"github.com/gin-gonic/gin"

	"cresly-pos/controllers"
	"cresly-pos/ws"
)

func RegisterRoutes(
	r *gin.Engine,
	hub *ws.Hub,
	orders *controllers.OrderController,
	inventory *controllers.InventoryController,
	register *controllers.RegisterController,
	menu *controllers.MenuController,
) {
	// Orders
	orderRoutes := r.Group("/orders")
	{
		orderRoutes.POST("/", orders.SubmitCart)
		orderRoutes.GET("/pending", orders.GetPendingOrders)
		orderRoutes.GET("/today", orders.GetTodayOrders)
		orderRoutes.GET("/:id", orders.GetOrderByID)
		orderRoutes.POST("/complete", orders.CompleteOrders)
		orderRoutes.DELETE("/:id", orders.DeleteOrder)
	}

	// Inventory
	r.GET("/inventory", inventory.GetInventory)

	// Cash register
	registerRoutes := r.Group("/register")
	{
		registerRoutes.POST("/open", register.Open)
		registerRoutes.POST("/close", register.Close)
		registerRoutes.GET("/current", register.Current)
		registerRoutes.POST("/expenses", register.AddExpense)
	}

	// Menu
	menuRoutes := r.Group("/menu")
	{
		menuRoutes.POST("/days", menu.ConfigureDay)
		menuRoutes.GET("/today", menu.GetToday)
	}

	// Live channels
	r.GET("/ws/orders", controllers.ServeOrdersChannel(hub))
	r.GET("/ws/printing", controllers.ServePrintingChannel(hub))
}
