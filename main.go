// @title Academic Portal API
// @version 1.0
// @description Session, assignment and enrollment backend for the portal.
// @host localhost:8000
// @BasePath /

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"portal-webbase/bootstrap"
	"portal-webbase/config"
	"portal-webbase/database"
	"portal-webbase/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	defer client.Disconnect(nil)

	if err := bootstrap.EnsureIndexes(database.DB); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.SetupAuth(app, cfg)
	routes.SetupRegistrations(app, client, cfg)
	routes.SetupClasses(app, client, cfg)
	routes.SetupAssignments(app, client, cfg)
	routes.SetupEnrollments(app, client, cfg)
	routes.SetupSessions(app, client, cfg)

	log.Fatal(app.Listen(":" + cfg.Port))
}
