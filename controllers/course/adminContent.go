package controllers

import (
	"encoding/json"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AdminCreateContent creates a new content item in a course
func AdminCreateContent(c *fiber.Ctx) error {
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

	// Check if course exists
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedContent").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		ContentType     string `json:"content_type"`
		Body            string `json:"body"`
		MediaURL        string `json:"media_url"`
		DurationMinutes int    `json:"duration_minutes"`
		OrderIndex      int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Get the next order index if not provided
	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.ContentItem{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	content := courseModels.ContentItem{
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		ContentType:     reqData.ContentType,
		Body:            reqData.Body,
		MediaURL:        reqData.MediaURL,
		DurationMinutes: reqData.DurationMinutes,
		OrderIndex:      orderIndex,
		IsPublished:     false,
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// AdminUpdateContent updates an existing content item
func AdminUpdateContent(c *fiber.Ctx) error {
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

	contentID := c.Locals("contentID").(int)

	var content courseModels.ContentItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	reqData, ok := c.Locals("validatedContentUpdate").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		ContentType     string `json:"content_type"`
		Body            string `json:"body"`
		MediaURL        string `json:"media_url"`
		DurationMinutes int    `json:"duration_minutes"`
		OrderIndex      int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		content.Title = reqData.Title
	}
	if reqData.Description != "" {
		content.Description = reqData.Description
	}
	if reqData.ContentType != "" {
		content.ContentType = reqData.ContentType
	}
	if reqData.Body != "" {
		content.Body = reqData.Body
	}
	if reqData.MediaURL != "" {
		content.MediaURL = reqData.MediaURL
	}
	if reqData.DurationMinutes > 0 {
		content.DurationMinutes = reqData.DurationMinutes
	}
	if reqData.OrderIndex > 0 {
		content.OrderIndex = reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", content)
}

// AdminDeleteContent soft deletes a content item
func AdminDeleteContent(c *fiber.Ctx) error {
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

	contentID := c.Locals("contentID").(int)

	var content courseModels.ContentItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	tx := database.Database.Db.Begin()

	content.IsDeleted = true
	if err := tx.Save(&content).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	// Progress rows for removed content no longer count toward completion
	if err := tx.Model(&courseModels.ContentProgress{}).Where("content_item_id = ?", contentID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete progress records!", nil)
	}

	// Delete quiz questions if content type is QUIZ
	if content.ContentType == courseModels.ContentQuiz {
		if err := tx.Model(&courseModels.QuizQuestion{}).Where("content_item_id = ?", contentID).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz questions!", nil)
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// AdminPublishContent publishes or unpublishes a content item
func AdminPublishContent(c *fiber.Ctx) error {
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

	contentID := c.Locals("contentID").(int)
	publishStatus := c.Locals("publishStatus").(bool)

	var content courseModels.ContentItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	// If publishing a quiz, ensure it has questions
	if publishStatus && content.ContentType == courseModels.ContentQuiz {
		var questionCount int64
		database.Database.Db.Model(&courseModels.QuizQuestion{}).Where("content_item_id = ? AND is_deleted = ?", contentID, false).Count(&questionCount)
		if questionCount == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz must have at least one question before publishing!", nil)
		}
	}

	content.IsPublished = publishStatus
	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	message := "Content unpublished successfully!"
	if publishStatus {
		message = "Content published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, content)
}

// AdminAddQuizQuestion adds a question to quiz content
func AdminAddQuizQuestion(c *fiber.Ctx) error {
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

	contentID := c.Locals("contentID").(int)

	// Verify content exists and is quiz type
	var content courseModels.ContentItem
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if content.ContentType != courseModels.ContentQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not a quiz!", nil)
	}

	reqData, ok := c.Locals("validatedQuizQuestion").(*struct {
		Prompt        string   `json:"prompt"`
		Options       []string `json:"options"`
		CorrectOption int      `json:"correct_option"`
		Points        int      `json:"points"`
		OrderIndex    int      `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Get the next order index if not provided
	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.QuizQuestion{}).
			Where("content_item_id = ? AND is_deleted = ?", contentID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	points := reqData.Points
	if points <= 0 {
		points = 1
	}

	optionsJSON, _ := json.Marshal(reqData.Options)

	question := courseModels.QuizQuestion{
		ContentItemID: uint(contentID),
		Prompt:        reqData.Prompt,
		Options:       datatypes.JSON(optionsJSON),
		CorrectOption: reqData.CorrectOption,
		Points:        points,
		OrderIndex:    orderIndex,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add quiz question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz question added successfully!", question)
}

// AdminUpdateQuizQuestion updates a quiz question
func AdminUpdateQuizQuestion(c *fiber.Ctx) error {
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

	questionID := c.Locals("questionID").(int)

	var question courseModels.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz question not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuizQuestionUpdate").(*struct {
		Prompt        string   `json:"prompt"`
		Options       []string `json:"options"`
		CorrectOption *int     `json:"correct_option"`
		Points        *int     `json:"points"`
		OrderIndex    int      `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Prompt != "" {
		question.Prompt = reqData.Prompt
	}
	if len(reqData.Options) > 0 {
		optionsJSON, _ := json.Marshal(reqData.Options)
		question.Options = datatypes.JSON(optionsJSON)
	}
	if reqData.CorrectOption != nil {
		question.CorrectOption = *reqData.CorrectOption
	}
	if reqData.Points != nil && *reqData.Points > 0 {
		question.Points = *reqData.Points
	}
	if reqData.OrderIndex > 0 {
		question.OrderIndex = reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz question updated successfully!", question)
}

// AdminDeleteQuizQuestion soft deletes a quiz question
func AdminDeleteQuizQuestion(c *fiber.Ctx) error {
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

	questionID := c.Locals("questionID").(int)

	var question courseModels.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz question deleted successfully!", nil)
}

// AdminContentWithQuestions represents admin content with quiz questions
type AdminContentWithQuestions struct {
	courseModels.ContentItem
	Questions []courseModels.QuizQuestion `json:"questions,omitempty"`
}

// AdminGetCourseContent gets all content for a course with quiz questions included
func AdminGetCourseContent(c *fiber.Ctx) error {
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

	var contents []courseModels.ContentItem
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	// Enrich quiz contents with their questions
	enrichedContents := make([]AdminContentWithQuestions, len(contents))
	for i, content := range contents {
		enrichedContents[i] = AdminContentWithQuestions{
			ContentItem: content,
		}

		if content.ContentType == courseModels.ContentQuiz {
			var questions []courseModels.QuizQuestion
			database.Database.Db.Where("content_item_id = ? AND is_deleted = ?", content.ID, false).Order("order_index asc").Find(&questions)
			enrichedContents[i].Questions = questions
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"course":        course,
		"contents":      enrichedContents,
		"total_content": len(contents),
	})
}
