package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/controllers"
	"github.com/verdantly/plantora-api/middlewares"
	"gorm.io/gorm"
)

func AuthRoutes(server *gin.Engine, db *gorm.DB) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup(db))
		auth.POST("/login", controllers.Login(db))
		auth.GET("/me", middlewares.RequireAuth(), controllers.Me())
	}
}
