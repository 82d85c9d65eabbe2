package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"yt-fetch-api/config"
	"yt-fetch-api/handlers"
	"yt-fetch-api/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jaevor/go-nanoid"
)

func main() {
	// Create staging directory and store
	if err := services.InitStore(config.StorageDir); err != nil {
		log.Fatalf("Failed to create staging directory: %v", err)
	}

	// Start sweep scheduler
	sweepCron := services.Artifacts.StartSweepScheduler()
	defer sweepCron.Stop()

	generateID, err := nanoid.Standard(config.RequestIDLength)
	if err != nil {
		log.Fatalf("Failed to create request ID generator: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:       "YouTube Fetch API",
		ServerHeader:  "yt-fetch-api",
		CaseSensitive: true,
		StrictRouting: false,
		// Disable body limit for file streaming
		BodyLimit: 0,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: generateID,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Accept",
	}))

	// API routes
	api := app.Group("/api")
	api.Post("/info", handlers.HandleInfo)
	api.Post("/download", handlers.HandleDownload)
	api.Delete("/files/:filename", handlers.HandleDeleteFile)
	api.Get("/thumbnail/:id", handlers.HandleThumbnail)

	// File serving
	app.Get("/files/:filename", handlers.HandleFile)

	// Health check
	app.Get("/health", handlers.HandleHealth)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down: %v\n", err)
		}
	}()

	// Start server
	addr := ":" + config.Port
	log.Printf("Starting server on http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
