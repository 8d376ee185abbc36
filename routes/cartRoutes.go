package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/controllers"
	"github.com/verdantly/plantora-api/middlewares"
	"github.com/verdantly/plantora-api/services"
)

func CartRoutes(server *gin.Engine, cart *services.CartService) {
	group := server.Group("/cart", middlewares.RequireAuth())
	{
		group.GET("", controllers.GetCart(cart))
		group.POST("", controllers.AddToCart(cart))
		group.PUT("/:id/increase", controllers.IncreaseCartQty(cart))
		group.PUT("/:id/decrease", controllers.DecreaseCartQty(cart))
		group.DELETE("/product/:productId", controllers.RemoveCartProduct(cart))
		group.DELETE("", controllers.ClearCart(cart))
	}
}
