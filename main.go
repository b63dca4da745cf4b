package main

import (
	"lms/config"
	controllers "lms/controllers/course"
	"lms/database"
	courseRoutes "lms/routers/courseRoutes"
	gradingRoutes "lms/routers/gradingRoutes"
	notificationRoutes "lms/routers/notificationRoutes"
	"lms/storage"
	"lms/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	store, err := storage.New()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	certificateService := controllers.InitCertificateService(store)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Locally stored certificate files are served straight from disk
	if config.AppConfig.StorageDriver == "local" {
		app.Static("/uploads", config.AppConfig.LocalStorageDir)
	}

	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	gradingRoutes.SetupGradingRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	utils.InitializeCertificateScheduler(certificateService, config.AppConfig.CertificateSweepMinutes)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
