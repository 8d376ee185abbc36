package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/controllers"
	"github.com/verdantly/plantora-api/middlewares"
	"github.com/verdantly/plantora-api/services"
)

func ReportRoutes(server *gin.Engine, report *services.ReportService) {
	group := server.Group("/admin/report", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		group.GET("/sales", controllers.GetSalesReport(report))
		group.GET("/sales/export", controllers.ExportSalesReport(report))
	}
}
