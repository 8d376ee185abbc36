package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/events"
	"github.com/verdantly/plantora-api/initializers"
	"github.com/verdantly/plantora-api/routes"
	"github.com/verdantly/plantora-api/services"
	"github.com/verdantly/plantora-api/store"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	server := gin.Default()

	allowOrigins := []string{"http://localhost:5173"}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		allowOrigins = append(allowOrigins, strings.Split(frontend, ",")...)
	}
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	bus := events.NewBus()
	st := store.NewGormStore(initializers.DB)
	engine := services.NewEngine(st, bus)
	cart := services.NewCartService(st, bus)
	wishlist := services.NewWishlistService(st, bus)
	report := services.NewReportService(st)

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, initializers.DB)
	routes.PlantRoutes(server, initializers.DB, bus)
	routes.CartRoutes(server, cart)
	routes.WishlistRoutes(server, wishlist)
	routes.OrderRoutes(server, initializers.DB, engine)
	routes.ReportRoutes(server, report)
	routes.LiveRoutes(server, bus)

	server.Run()
}
