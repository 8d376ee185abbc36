package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/controllers"
	"github.com/verdantly/plantora-api/middlewares"
	"github.com/verdantly/plantora-api/services"
)

func WishlistRoutes(server *gin.Engine, wishlist *services.WishlistService) {
	group := server.Group("/wishlist", middlewares.RequireAuth())
	{
		group.POST("/toggle", controllers.ToggleLike(wishlist))
		group.GET("", controllers.GetWishlist(wishlist))
		group.GET("/count", controllers.GetLikeCount(wishlist))
	}
}
