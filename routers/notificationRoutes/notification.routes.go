package notificationRoutes

import (
	controllers "lms/controllers/notification"
	"lms/middleware"
	validators "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up user notification routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notification")

	notificationGroup.Get("/list", middleware.JWTMiddleware, validators.NotificationQuery(), controllers.GetNotifications)
	notificationGroup.Post("/read-all", middleware.JWTMiddleware, controllers.MarkAllNotificationsRead)
	notificationGroup.Post("/:id/read", middleware.JWTMiddleware, validators.NotificationID(), controllers.MarkNotificationRead)
}
