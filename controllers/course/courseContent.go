package controllers

import (
	"errors"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

func progressService() *services.ProgressService {
	return services.NewProgressService(database.Database.Db, config.AppConfig.CompletionThreshold)
}

// RecordContentProgress upserts the student's progress on one content item
// and resyncs the enrollment
func RecordContentProgress(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	// User must be enrolled
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Content must exist, belong to the course and be published
	var item courseModels.ContentItem
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	reqData, ok := c.Locals("validatedContentProgress").(*struct {
		CompletionPct       *float64 `json:"completion_pct"`
		TimeSpentSeconds    *int     `json:"time_spent_seconds"`
		LastPositionSeconds *int     `json:"last_position_seconds"`
		Completed           bool     `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	input := services.ContentProgressInput{Completed: reqData.Completed}
	if reqData.CompletionPct != nil {
		input.CompletionPct = *reqData.CompletionPct
	}
	if reqData.TimeSpentSeconds != nil {
		input.TimeSpentSeconds = *reqData.TimeSpentSeconds
	}
	if reqData.LastPositionSeconds != nil {
		input.LastPositionSeconds = *reqData.LastPositionSeconds
	}

	svc := progressService()

	record, err := svc.RecordContentProgress(userID, &item, input)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	updated, err := svc.SyncEnrollment(userID, uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Progress was updated concurrently, please retry!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded successfully!", fiber.Map{
		"progress":   record,
		"enrollment": updated,
	})
}

// MarkContentComplete marks one content item fully complete
func MarkContentComplete(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var item courseModels.ContentItem
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	svc := progressService()

	record, err := svc.RecordContentProgress(userID, &item, services.ContentProgressInput{
		CompletionPct: 100,
		Completed:     true,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark content complete!", nil)
	}

	updated, err := svc.SyncEnrollment(userID, uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Progress was updated concurrently, please retry!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as complete!", fiber.Map{
		"progress":   record,
		"enrollment": updated,
	})
}

// GetUserProgress returns the enrollment summary plus per-content records
func GetUserProgress(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	summary, err := progressService().CourseProgress(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute progress!", nil)
	}

	var records []courseModels.ContentProgress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress records!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"summary":    summary,
		"records":    records,
	})
}
