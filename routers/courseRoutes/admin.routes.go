package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.DeleteCourse(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.AdminCourseList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", middleware.JWTMiddleware, validators.DeleteCourse(), controllers.AdminGetCourseDetails)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.PublishCourse(), controllers.AdminPublishCourse)

	// Content Management
	adminGroup.Post("/:id/content", middleware.JWTMiddleware, validators.CreateContent(), controllers.AdminCreateContent)
	adminGroup.Get("/:id/content", middleware.JWTMiddleware, validators.DeleteCourse(), controllers.AdminGetCourseContent)

	contentGroup := app.Group("/admin/content")
	contentGroup.Put("/:content_id", middleware.JWTMiddleware, validators.UpdateContent(), controllers.AdminUpdateContent)
	contentGroup.Delete("/:content_id", middleware.JWTMiddleware, validators.ContentID(), controllers.AdminDeleteContent)
	contentGroup.Post("/:content_id/publish", middleware.JWTMiddleware, validators.PublishContent(), controllers.AdminPublishContent)

	// Quiz Question Management
	contentGroup.Post("/:content_id/question", middleware.JWTMiddleware, validators.AddQuizQuestion(), controllers.AdminAddQuizQuestion)

	questionGroup := app.Group("/admin/question")
	questionGroup.Put("/:question_id", middleware.JWTMiddleware, validators.UpdateQuizQuestion(), controllers.AdminUpdateQuizQuestion)
	questionGroup.Delete("/:question_id", middleware.JWTMiddleware, validators.QuestionID(), controllers.AdminDeleteQuizQuestion)

	// Assignment Management
	adminGroup.Post("/:id/assignment", middleware.JWTMiddleware, validators.CreateAssignment(), controllers.AdminCreateAssignment)
	adminGroup.Get("/:id/assignments", middleware.JWTMiddleware, validators.DeleteCourse(), controllers.AdminGetCourseAssignments)

	assignmentGroup := app.Group("/admin/assignment")
	assignmentGroup.Put("/:assignment_id", middleware.JWTMiddleware, validators.UpdateAssignment(), controllers.AdminUpdateAssignment)
	assignmentGroup.Delete("/:assignment_id", middleware.JWTMiddleware, validators.AssignmentID(), controllers.AdminDeleteAssignment)
	assignmentGroup.Post("/:assignment_id/publish", middleware.JWTMiddleware, validators.PublishAssignment(), controllers.AdminPublishAssignment)

	// Enrollment & Progress Tracking
	adminGroup.Get("/:id/enrollments", middleware.JWTMiddleware, validators.AdminEnrollmentQuery(), controllers.AdminGetCourseEnrollments)
	adminGroup.Get("/:id/completed", middleware.JWTMiddleware, validators.DeleteCourse(), controllers.AdminGetCompletedStudents)

	studentGroup := app.Group("/admin/student")
	studentGroup.Get("/:user_id/progress", middleware.JWTMiddleware, validators.StudentProgressQuery(), controllers.AdminGetStudentProgress)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, controllers.AdminDashboardStats)
}
