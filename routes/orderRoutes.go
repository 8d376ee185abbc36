package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/controllers"
	"github.com/verdantly/plantora-api/middlewares"
	"github.com/verdantly/plantora-api/services"
	"gorm.io/gorm"
)

func OrderRoutes(server *gin.Engine, db *gorm.DB, engine *services.Engine) {
	group := server.Group("/order", middlewares.RequireAuth())
	{
		group.POST("/checkout", controllers.Checkout(engine))
		group.GET("", middlewares.RequireAdmin(), controllers.GetOrders(db))
		group.GET("/mine", controllers.GetMyOrders(db))
		group.GET("/:orderId", controllers.GetOrderByID(db))

		group.POST("/:orderId/items", controllers.AddOrderItem(db, engine))
		group.PUT("/items/:itemId/increase", controllers.IncreaseOrderItemQty(db, engine))
		group.PUT("/items/:itemId/decrease", controllers.DecreaseOrderItemQty(db, engine))
		group.DELETE("/items/:itemId", controllers.RemoveOrderItem(db, engine))
		group.PUT("/items/:itemId/price", middlewares.RequireAdmin(), controllers.SetOrderItemPrice(engine))
	}
}
