package gradingRoutes

import (
	controllers "lms/controllers/grading"
	"lms/middleware"
	validators "lms/validators/grading"

	"github.com/gofiber/fiber/v2"
)

// SetupGradingRoutes sets up submission and grading routes
func SetupGradingRoutes(app *fiber.App) {
	// Student submission flow
	assignmentGroup := app.Group("/assignment")
	assignmentGroup.Post("/:assignment_id/draft", middleware.JWTMiddleware, validators.SaveDraft(), controllers.SaveDraft)
	assignmentGroup.Post("/:assignment_id/submit", middleware.JWTMiddleware, validators.SubmitAssignment(), controllers.SubmitAssignment)

	courseGroup := app.Group("/course")
	courseGroup.Get("/:id/submissions", middleware.JWTMiddleware, validators.MySubmissions(), controllers.GetMySubmissions)

	// Grading flow, teachers and admins only
	gradingGroup := app.Group("/grading", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"))
	gradingGroup.Post("/submission/:submission_id", validators.GradeSubmission(), controllers.GradeSubmission)
	gradingGroup.Post("/bulk", validators.BulkGrade(), controllers.BulkGradeSubmissions)
	gradingGroup.Get("/assignment/:assignment_id/submissions", validators.SubmissionQuery(), controllers.ListSubmissionsForAssignment)
}
