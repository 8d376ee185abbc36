package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/controllers"
	"github.com/verdantly/plantora-api/events"
	"github.com/verdantly/plantora-api/middlewares"
	"gorm.io/gorm"
)

func PlantRoutes(server *gin.Engine, db *gorm.DB, bus *events.Bus) {
	server.GET("/plant", controllers.GetPlants(db))
	server.GET("/plant/:id", controllers.GetPlant(db))

	admin := server.Group("/plant", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreatePlant(db, bus))
		admin.PUT("/:id", controllers.UpdatePlant(db, bus))
		admin.DELETE("/:id", controllers.DeletePlant(db, bus))
		admin.POST("/:id/image", controllers.UploadPlantImage(db, bus))
	}
}
