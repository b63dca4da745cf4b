package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

func gradingService() *services.GradingService {
	return services.NewGradingService(database.Database.Db)
}

// GradeSubmission applies a grade and feedback to one submission
func GradeSubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	submissionID := c.Locals("submissionID").(int)

	reqData, ok := c.Locals("validatedGrade").(*struct {
		Grade    *float64 `json:"grade"`
		Feedback string   `json:"feedback"`
	})
	if !ok || reqData.Grade == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission, err := gradingService().GradeSubmission(userID, uint(submissionID), *reqData.Grade, reqData.Feedback)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
		}
		if errors.Is(err, services.ErrInvalidTransition) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only submitted work can be graded!", nil)
		}
		if errors.Is(err, services.ErrGradeOutOfRange) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"grade": "Grade must be between 0 and the assignment's maximum points!",
			})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}

// BulkGradeSubmissions applies one grade to many submissions. Invalid
// submissions are skipped and reported, the rest still go through.
func BulkGradeSubmissions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedBulkGrade").(*struct {
		SubmissionIDs []uint   `json:"submission_ids"`
		Grade         *float64 `json:"grade"`
		Feedback      string   `json:"feedback"`
	})
	if !ok || reqData.Grade == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := gradingService().BulkGrade(userID, reqData.SubmissionIDs, *reqData.Grade, reqData.Feedback)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk grading finished!", result)
}

// ListSubmissionsForAssignment lists submissions on one assignment for review
func ListSubmissionsForAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	reqData, _ := c.Locals("validatedSubmissionQuery").(*struct {
		Page   *int   `json:"page"`
		Limit  *int   `json:"limit"`
		Status string `json:"status"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.AssignmentSubmission{}).Where("assignment_id = ? AND is_deleted = ?", assignmentID, false)

	if reqData != nil && reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}

	var total int64
	db.Count(&total)

	type SubmissionWithUser struct {
		courseModels.AssignmentSubmission
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	var submissions []courseModels.AssignmentSubmission
	if err := db.Offset(offset).Limit(limit).Order("submitted_at asc, created_at asc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	result := make([]SubmissionWithUser, len(submissions))
	for i, s := range submissions {
		var student models.User
		database.Database.Db.Where("id = ?", s.UserID).First(&student)
		result[i] = SubmissionWithUser{
			AssignmentSubmission: s,
			UserName:             student.Name,
			UserEmail:            student.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"assignment":  assignment,
		"submissions": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
