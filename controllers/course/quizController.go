package controllers

import (
	"encoding/json"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// SubmitQuizAttempt scores a quiz submission server-side and records the attempt
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Check content exists and is a quiz
	var item courseModels.ContentItem
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if item.ContentType != courseModels.ContentQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not a quiz!", nil)
	}

	reqData := new(struct {
		Answers []struct {
			QuestionID     uint `json:"question_id"`
			SelectedOption int  `json:"selected_option"`
		} `json:"answers"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if len(reqData.Answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("content_item_id = ? AND is_deleted = ?", contentID, false).Find(&questions)

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions!", nil)
	}

	// Score against stored correct options; the client never sends a score
	questionByID := make(map[uint]courseModels.QuizQuestion)
	maxScore := 0
	for _, q := range questions {
		questionByID[q.ID] = q
		maxScore += q.Points
	}

	score := 0
	answered := make(map[uint]bool)
	for _, ans := range reqData.Answers {
		q, found := questionByID[ans.QuestionID]
		if !found || answered[ans.QuestionID] {
			continue
		}
		answered[ans.QuestionID] = true
		if ans.SelectedOption == q.CorrectOption {
			score += q.Points
		}
	}

	passed := maxScore > 0 && float64(score)/float64(maxScore)*100 >= config.AppConfig.QuizPassPct

	// Get attempt number
	var attemptCount int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).Where("user_id = ? AND content_item_id = ? AND is_deleted = ?", userID, contentID, false).Count(&attemptCount)

	answersJSON, _ := json.Marshal(reqData.Answers)
	now := time.Now()

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		CourseID:      uint(courseID),
		ContentItemID: uint(contentID),
		AttemptNumber: int(attemptCount) + 1,
		Answers:       datatypes.JSON(answersJSON),
		Score:         score,
		MaxScore:      maxScore,
		Passed:        passed,
		CompletedAt:   &now,
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	// A passing attempt completes the quiz content item
	if passed {
		svc := progressService()
		if _, err := svc.RecordContentProgress(userID, &item, services.ContentProgressInput{CompletionPct: 100, Completed: true}); err == nil {
			svc.SyncEnrollment(userID, uint(courseID))
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":   attempt,
		"score":     score,
		"max_score": maxScore,
		"passed":    passed,
	})
}

// GetQuizAttempts lists the user's attempts on one quiz
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

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

	var attempts []courseModels.QuizAttempt
	database.Database.Db.Where("user_id = ? AND content_item_id = ? AND is_deleted = ?", userID, contentID, false).Order("attempt_number asc").Find(&attempts)

	bestScore := 0
	for _, a := range attempts {
		if a.Score > bestScore {
			bestScore = a.Score
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts":   attempts,
		"best_score": bestScore,
	})
}
