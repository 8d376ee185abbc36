package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/controllers"
	"github.com/verdantly/plantora-api/events"
)

func LiveRoutes(server *gin.Engine, bus *events.Bus) {
	server.GET("/live", controllers.LiveFeed(bus))
}
