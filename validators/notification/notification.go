package notificationValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// NotificationQuery validates the notification listing request
func NotificationQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page       *int `json:"page"`
			Limit      *int `json:"limit"`
			UnreadOnly bool `json:"unread_only"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Underscored keys do not bind by field name
		reqData.UnreadOnly = c.QueryBool("unread_only")

		c.Locals("validatedNotificationQuery", reqData)
		return c.Next()
	}
}

// NotificationID validates requests that carry a notification id
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		notificationIDStr := strings.TrimSpace(c.Params("id"))
		if notificationIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Notification ID is required!", nil)
		}

		notificationID, err := strconv.Atoi(notificationIDStr)
		if err != nil || notificationID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Notification ID!", nil)
		}

		c.Locals("notificationID", notificationID)
		return c.Next()
	}
}
