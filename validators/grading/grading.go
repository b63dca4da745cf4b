package gradingValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SaveDraft validates the draft submission request
func SaveDraft() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignmentIDStr := strings.TrimSpace(c.Params("assignment_id"))
		if assignmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignment ID is required!", nil)
		}

		assignmentID, err := strconv.Atoi(assignmentIDStr)
		if err != nil || assignmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		body := new(struct {
			Content       string `json:"content" validate:"max=50000"`
			AttachmentURL string `json:"attachment_url" validate:"omitempty,url"`
		})

		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		body.Content = strings.TrimSpace(body.Content)
		body.AttachmentURL = strings.TrimSpace(body.AttachmentURL)

		if err := validate.Struct(body); err != nil {
			errors := make(map[string]string)
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range fieldErrs {
					switch fieldErr.Field() {
					case "Content":
						errors["content"] = "Content must not exceed 50000 characters!"
					case "AttachmentURL":
						errors["attachment_url"] = "Attachment must be a valid URL!"
					}
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		if body.Content == "" && body.AttachmentURL == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content": "Draft needs content or an attachment!",
			})
		}

		reqData := &struct {
			Content       string `json:"content"`
			AttachmentURL string `json:"attachment_url"`
		}{
			Content:       body.Content,
			AttachmentURL: body.AttachmentURL,
		}

		c.Locals("assignmentID", assignmentID)
		c.Locals("validatedDraft", reqData)
		return c.Next()
	}
}

// SubmitAssignment validates the final submission request
func SubmitAssignment() fiber.Handler {
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

// MySubmissions validates the course submissions listing request
func MySubmissions() fiber.Handler {
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

// GradeSubmission validates the grading request
func GradeSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		submissionIDStr := strings.TrimSpace(c.Params("submission_id"))
		if submissionIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission ID is required!", nil)
		}

		submissionID, err := strconv.Atoi(submissionIDStr)
		if err != nil || submissionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Submission ID!", nil)
		}

		body := new(struct {
			Grade    *float64 `json:"grade" validate:"required,gte=0"`
			Feedback string   `json:"feedback" validate:"max=5000"`
		})

		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(body); err != nil {
			errors := make(map[string]string)
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range fieldErrs {
					switch fieldErr.Field() {
					case "Grade":
						if fieldErr.Tag() == "required" {
							errors["grade"] = "Grade is required!"
						} else {
							errors["grade"] = "Grade must not be negative!"
						}
					case "Feedback":
						errors["feedback"] = "Feedback must not exceed 5000 characters!"
					}
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Grade    *float64 `json:"grade"`
			Feedback string   `json:"feedback"`
		}{
			Grade:    body.Grade,
			Feedback: strings.TrimSpace(body.Feedback),
		}

		c.Locals("submissionID", submissionID)
		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}

// BulkGrade validates the bulk grading request
func BulkGrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			SubmissionIDs []uint   `json:"submission_ids" validate:"required,min=1,max=100,dive,gt=0"`
			Grade         *float64 `json:"grade" validate:"required,gte=0"`
			Feedback      string   `json:"feedback" validate:"max=5000"`
		})

		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(body); err != nil {
			errors := make(map[string]string)
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range fieldErrs {
					switch fieldErr.Field() {
					case "SubmissionIDs":
						switch fieldErr.Tag() {
						case "required", "min":
							errors["submission_ids"] = "At least one submission is required!"
						case "max":
							errors["submission_ids"] = "Cannot grade more than 100 submissions at once!"
						default:
							errors["submission_ids"] = "Submission IDs must be positive!"
						}
					case "Grade":
						if fieldErr.Tag() == "required" {
							errors["grade"] = "Grade is required!"
						} else {
							errors["grade"] = "Grade must not be negative!"
						}
					case "Feedback":
						errors["feedback"] = "Feedback must not exceed 5000 characters!"
					}
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			SubmissionIDs []uint   `json:"submission_ids"`
			Grade         *float64 `json:"grade"`
			Feedback      string   `json:"feedback"`
		}{
			SubmissionIDs: body.SubmissionIDs,
			Grade:         body.Grade,
			Feedback:      strings.TrimSpace(body.Feedback),
		}

		c.Locals("validatedBulkGrade", reqData)
		return c.Next()
	}
}

// SubmissionQuery validates the assignment submissions listing request
func SubmissionQuery() fiber.Handler {
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
			Page   *int   `json:"page"`
			Limit  *int   `json:"limit"`
			Status string `json:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		reqData.Status = strings.ToLower(strings.TrimSpace(reqData.Status))

		if reqData.Status != "" {
			validStatuses := map[string]bool{"draft": true, "submitted": true, "graded": true}
			if !validStatuses[reqData.Status] {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"status": "Status must be draft, submitted, or graded!",
				})
			}
		}

		c.Locals("assignmentID", assignmentID)
		c.Locals("validatedSubmissionQuery", reqData)
		return c.Next()
	}
}
