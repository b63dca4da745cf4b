package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// SaveDraft creates or updates the student's draft for an assignment
func SaveDraft(c *fiber.Ctx) error {
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
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", assignmentID, false, true).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	// Student must be enrolled in the assignment's course
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, assignment.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	reqData, ok := c.Locals("validatedDraft").(*struct {
		Content       string `json:"content"`
		AttachmentURL string `json:"attachment_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var submission courseModels.AssignmentSubmission
	err := database.Database.Db.Where("assignment_id = ? AND user_id = ? AND is_deleted = ?", assignmentID, userID, false).First(&submission).Error

	if err != nil && err != gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submission!", nil)
	}

	if err == nil {
		// Submitted or graded work is frozen
		if submission.Status != courseModels.SubmissionDraft {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Submission can no longer be edited!", nil)
		}

		submission.Content = reqData.Content
		submission.AttachmentURL = reqData.AttachmentURL

		if err := database.Database.Db.Save(&submission).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save draft!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Draft saved successfully!", submission)
	}

	submission = courseModels.AssignmentSubmission{
		AssignmentID:  uint(assignmentID),
		UserID:        userID,
		CourseID:      assignment.CourseID,
		Content:       reqData.Content,
		AttachmentURL: reqData.AttachmentURL,
		Status:        courseModels.SubmissionDraft,
	}

	if err := database.Database.Db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save draft!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Draft saved successfully!", submission)
}

// SubmitAssignment moves the student's draft to submitted
func SubmitAssignment(c *fiber.Ctx) error {
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
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", assignmentID, false, true).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var submission courseModels.AssignmentSubmission
	if err := database.Database.Db.Where("assignment_id = ? AND user_id = ? AND is_deleted = ?", assignmentID, userID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No draft found, save your work first!", nil)
	}

	if submission.Status != courseModels.SubmissionDraft {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Assignment already submitted!", nil)
	}

	submittedAt := time.Now()
	submission.Status = courseModels.SubmissionSubmitted
	submission.SubmittedAt = &submittedAt

	// Late when the due day has fully passed
	if assignment.DueDate != nil {
		deadline := now.With(*assignment.DueDate).EndOfDay()
		submission.IsLate = submittedAt.After(deadline)
	}

	if err := database.Database.Db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment submitted successfully!", submission)
}

// GetMySubmissions lists the student's submissions for a course
func GetMySubmissions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	type SubmissionWithAssignment struct {
		courseModels.AssignmentSubmission
		AssignmentTitle  string  `json:"assignment_title"`
		AssignmentPoints float64 `json:"assignment_points"`
	}

	var submissions []courseModels.AssignmentSubmission
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Order("created_at desc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	result := make([]SubmissionWithAssignment, len(submissions))
	for i, s := range submissions {
		var assignment courseModels.Assignment
		database.Database.Db.Where("id = ?", s.AssignmentID).First(&assignment)
		result[i] = SubmissionWithAssignment{
			AssignmentSubmission: s,
			AssignmentTitle:      assignment.Title,
			AssignmentPoints:     assignment.Points,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"submissions": result,
		"total":       len(result),
	})
}
