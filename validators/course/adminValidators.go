package courseValidator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ============ Course Validators ============

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Category     string `json:"category"`
			Level        string `json:"level"`
			Duration     int64  `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
			TeacherID    *uint  `json:"teacher_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Category = strings.TrimSpace(reqData.Category)
		reqData.Level = strings.ToUpper(strings.TrimSpace(reqData.Level))

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		} else if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Title); matched {
			errors["title"] = "Title contains invalid characters!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Level != "" {
			validLevels := map[string]bool{"BEGINNER": true, "INTERMEDIATE": true, "ADVANCED": true}
			if !validLevels[reqData.Level] {
				errors["level"] = "Level must be BEGINNER, INTERMEDIATE, or ADVANCED!"
			}
		}

		if reqData.Duration < 0 {
			errors["duration"] = "Duration must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Category     string `json:"category"`
			Level        string `json:"level"`
			Duration     int64  `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
			Status       string `json:"status"`
			TeacherID    *uint  `json:"teacher_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Category = strings.TrimSpace(reqData.Category)
		reqData.Level = strings.ToUpper(strings.TrimSpace(reqData.Level))
		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Level != "" {
			validLevels := map[string]bool{"BEGINNER": true, "INTERMEDIATE": true, "ADVANCED": true}
			if !validLevels[reqData.Level] {
				errors["level"] = "Level must be BEGINNER, INTERMEDIATE, or ADVANCED!"
			}
		}

		if reqData.Status != "" {
			validStatuses := map[string]bool{"DRAFT": true, "ACTIVE": true, "INACTIVE": true}
			if !validStatuses[reqData.Status] {
				errors["status"] = "Status must be DRAFT, ACTIVE, or INACTIVE!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// DeleteCourse validates course deletion request
func DeleteCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// PublishCourse validates course publish/unpublish request
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			IsPublished bool `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("publishStatus", reqData.IsPublished)
		return c.Next()
	}
}

// AdminCourseList validates admin course listing request
func AdminCourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedAdminList", reqData)
		return c.Next()
	}
}

// ============ Content Validators ============

// CreateContent validates content creation request
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			ContentType     string `json:"content_type"`
			Body            string `json:"body"`
			MediaURL        string `json:"media_url"`
			DurationMinutes int    `json:"duration_minutes"`
			OrderIndex      int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		} else if len(reqData.Title) > 100 {
			errors["title"] = "Title must not exceed 100 characters!"
		}

		validTypes := map[string]bool{"VIDEO": true, "ARTICLE": true, "EXERCISE": true, "BOOK": true, "QUIZ": true}
		if reqData.ContentType == "" {
			errors["content_type"] = "Content type is required!"
		} else if !validTypes[reqData.ContentType] {
			errors["content_type"] = "Content type must be VIDEO, ARTICLE, EXERCISE, BOOK, or QUIZ!"
		}

		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

// UpdateContent validates content update request
func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("content_id"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			ContentType     string `json:"content_type"`
			Body            string `json:"body"`
			MediaURL        string `json:"media_url"`
			DurationMinutes int    `json:"duration_minutes"`
			OrderIndex      int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.ContentType != "" {
			validTypes := map[string]bool{"VIDEO": true, "ARTICLE": true, "EXERCISE": true, "BOOK": true, "QUIZ": true}
			if !validTypes[reqData.ContentType] {
				errors["content_type"] = "Content type must be VIDEO, ARTICLE, EXERCISE, BOOK, or QUIZ!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedContentUpdate", reqData)
		return c.Next()
	}
}

// ContentID validates requests that only carry a content id
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("content_id"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}

// PublishContent validates content publish/unpublish request
func PublishContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("content_id"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		reqData := new(struct {
			IsPublished bool `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("contentID", contentID)
		c.Locals("publishStatus", reqData.IsPublished)
		return c.Next()
	}
}

// ============ Quiz Question Validators ============

// AddQuizQuestion validates quiz question creation request
func AddQuizQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("content_id"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		reqData := new(struct {
			Prompt        string   `json:"prompt"`
			Options       []string `json:"options"`
			CorrectOption int      `json:"correct_option"`
			Points        int      `json:"points"`
			OrderIndex    int      `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Prompt = strings.TrimSpace(reqData.Prompt)

		if reqData.Prompt == "" {
			errors["prompt"] = "Prompt is required!"
		} else if len(reqData.Prompt) < 3 {
			errors["prompt"] = "Prompt must be at least 3 characters long!"
		}

		if len(reqData.Options) < 2 {
			errors["options"] = "Quiz question must have at least 2 options!"
		} else {
			for _, opt := range reqData.Options {
				if strings.TrimSpace(opt) == "" {
					errors["options"] = "Options must not be empty!"
					break
				}
			}
		}

		if reqData.CorrectOption < 0 || reqData.CorrectOption >= len(reqData.Options) {
			errors["correct_option"] = "Correct option must point to one of the options!"
		}

		if reqData.Points < 0 {
			errors["points"] = "Points must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedQuizQuestion", reqData)
		return c.Next()
	}
}

// UpdateQuizQuestion validates quiz question update request
func UpdateQuizQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionIDStr := strings.TrimSpace(c.Params("question_id"))
		if questionIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question ID is required!", nil)
		}

		questionID, err := strconv.Atoi(questionIDStr)
		if err != nil || questionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		reqData := new(struct {
			Prompt        string   `json:"prompt"`
			Options       []string `json:"options"`
			CorrectOption *int     `json:"correct_option"`
			Points        *int     `json:"points"`
			OrderIndex    int      `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Prompt = strings.TrimSpace(reqData.Prompt)

		if len(reqData.Options) > 0 {
			if len(reqData.Options) < 2 {
				errors["options"] = "Quiz question must have at least 2 options!"
			}
			if reqData.CorrectOption != nil && (*reqData.CorrectOption < 0 || *reqData.CorrectOption >= len(reqData.Options)) {
				errors["correct_option"] = "Correct option must point to one of the options!"
			}
		} else if reqData.CorrectOption != nil && *reqData.CorrectOption < 0 {
			errors["correct_option"] = "Correct option must not be negative!"
		}

		if reqData.Points != nil && *reqData.Points <= 0 {
			errors["points"] = "Points must be a positive number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("questionID", questionID)
		c.Locals("validatedQuizQuestionUpdate", reqData)
		return c.Next()
	}
}

// QuestionID validates requests that only carry a question id
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionIDStr := strings.TrimSpace(c.Params("question_id"))
		if questionIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question ID is required!", nil)
		}

		questionID, err := strconv.Atoi(questionIDStr)
		if err != nil || questionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// ============ Assignment Validators ============

// CreateAssignment validates assignment creation request
func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title        string  `json:"title"`
			Instructions string  `json:"instructions"`
			Points       float64 `json:"points"`
			DueDate      string  `json:"due_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.DueDate = strings.TrimSpace(reqData.DueDate)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Points < 0 {
			errors["points"] = "Points must not be negative!"
		}

		if reqData.DueDate != "" {
			if _, err := time.Parse("2006-01-02", reqData.DueDate); err != nil {
				errors["due_date"] = "Due date must be in YYYY-MM-DD format!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// UpdateAssignment validates assignment update request
func UpdateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignmentIDStr := strings.TrimSpace(c.Params("assignment_id"))
		if assignmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignment ID is required!", nil)
		}

		assignmentID, err := strconv.Atoi(assignmentIDStr)
		if err != nil || assignmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		reqData := new(struct {
			Title        string   `json:"title"`
			Instructions string   `json:"instructions"`
			Points       *float64 `json:"points"`
			DueDate      string   `json:"due_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.DueDate = strings.TrimSpace(reqData.DueDate)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Points != nil && *reqData.Points <= 0 {
			errors["points"] = "Points must be a positive number!"
		}

		if reqData.DueDate != "" {
			if _, err := time.Parse("2006-01-02", reqData.DueDate); err != nil {
				errors["due_date"] = "Due date must be in YYYY-MM-DD format!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("assignmentID", assignmentID)
		c.Locals("validatedAssignmentUpdate", reqData)
		return c.Next()
	}
}

// AssignmentID validates requests that only carry an assignment id
func AssignmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignmentIDStr := strings.TrimSpace(c.Params("assignment_id"))
		if assignmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignment ID is required!", nil)
		}

		assignmentID, err := strconv.Atoi(assignmentIDStr)
		if err != nil || assignmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		c.Locals("assignmentID", assignmentID)
		return c.Next()
	}
}

// PublishAssignment validates assignment publish/unpublish request
func PublishAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignmentIDStr := strings.TrimSpace(c.Params("assignment_id"))
		if assignmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignment ID is required!", nil)
		}

		assignmentID, err := strconv.Atoi(assignmentIDStr)
		if err != nil || assignmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		reqData := new(struct {
			IsPublished bool `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("assignmentID", assignmentID)
		c.Locals("publishStatus", reqData.IsPublished)
		return c.Next()
	}
}

// ============ Enrollment / Dashboard Validators ============

// AdminEnrollmentQuery validates the course enrollments listing request
func AdminEnrollmentQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Page   *int   `json:"page"`
			Limit  *int   `json:"limit"`
			Status string `json:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))

		if reqData.Status != "" {
			validStatuses := map[string]bool{"ENROLLED": true, "IN_PROGRESS": true, "COMPLETED": true}
			if !validStatuses[reqData.Status] {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"status": "Status must be ENROLLED, IN_PROGRESS, or COMPLETED!",
				})
			}
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedEnrollmentQuery", reqData)
		return c.Next()
	}
}

// StudentProgressQuery validates the student progress request
func StudentProgressQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("user_id"))
		if userIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}
