package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminCreateAssignment creates a new assignment in a course
func AdminCreateAssignment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		Title        string  `json:"title"`
		Instructions string  `json:"instructions"`
		Points       float64 `json:"points"`
		DueDate      string  `json:"due_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	points := reqData.Points
	if points <= 0 {
		points = 100
	}

	var dueDate *time.Time
	if reqData.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", reqData.DueDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date, expected YYYY-MM-DD!", nil)
		}
		// Submissions stay on time until the end of the due day
		endOfDay := now.With(parsed).EndOfDay()
		dueDate = &endOfDay
	}

	assignment := courseModels.Assignment{
		CourseID:     uint(courseID),
		Title:        reqData.Title,
		Instructions: reqData.Instructions,
		Points:       points,
		DueDate:      dueDate,
		IsPublished:  false,
	}

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// AdminUpdateAssignment updates an existing assignment
func AdminUpdateAssignment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	reqData, ok := c.Locals("validatedAssignmentUpdate").(*struct {
		Title        string   `json:"title"`
		Instructions string   `json:"instructions"`
		Points       *float64 `json:"points"`
		DueDate      string   `json:"due_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		assignment.Title = reqData.Title
	}
	if reqData.Instructions != "" {
		assignment.Instructions = reqData.Instructions
	}
	if reqData.Points != nil && *reqData.Points > 0 {
		assignment.Points = *reqData.Points
	}
	if reqData.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", reqData.DueDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date, expected YYYY-MM-DD!", nil)
		}
		endOfDay := now.With(parsed).EndOfDay()
		assignment.DueDate = &endOfDay
	}

	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully!", assignment)
}

// AdminPublishAssignment publishes or unpublishes an assignment
func AdminPublishAssignment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)
	publishStatus := c.Locals("publishStatus").(bool)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	assignment.IsPublished = publishStatus
	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	message := "Assignment unpublished successfully!"
	if publishStatus {
		message = "Assignment published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, assignment)
}

// AdminDeleteAssignment soft deletes an assignment
func AdminDeleteAssignment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	assignment.IsDeleted = true
	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}

// AdminGetCourseAssignments lists a course's assignments with submission counts
func AdminGetCourseAssignments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	type AssignmentWithCounts struct {
		courseModels.Assignment
		SubmittedCount int64 `json:"submitted_count"`
		GradedCount    int64 `json:"graded_count"`
	}

	var assignments []courseModels.Assignment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("due_date asc, id asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	result := make([]AssignmentWithCounts, len(assignments))
	for i, a := range assignments {
		var submitted int64
		var graded int64
		database.Database.Db.Model(&courseModels.AssignmentSubmission{}).
			Where("assignment_id = ? AND status = ? AND is_deleted = ?", a.ID, courseModels.SubmissionSubmitted, false).Count(&submitted)
		database.Database.Db.Model(&courseModels.AssignmentSubmission{}).
			Where("assignment_id = ? AND status = ? AND is_deleted = ?", a.ID, courseModels.SubmissionGraded, false).Count(&graded)
		result[i] = AssignmentWithCounts{
			Assignment:     a,
			SubmittedCount: submitted,
			GradedCount:    graded,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": result,
		"total":       len(result),
	})
}
