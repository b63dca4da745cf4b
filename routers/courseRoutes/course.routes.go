package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)
	userGroup.Post("/:id/drop", middleware.JWTMiddleware, validators.DropCourse(), controllers.DropCourse)

	// Content progress
	userGroup.Post("/:course_id/content/:content_id/progress", middleware.JWTMiddleware, validators.RecordContentProgress(), controllers.RecordContentProgress)
	userGroup.Post("/:course_id/content/:content_id/complete", middleware.JWTMiddleware, validators.MarkContentComplete(), controllers.MarkContentComplete)
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// Quiz attempts
	userGroup.Post("/:course_id/content/:content_id/quiz/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuizAttempt)
	userGroup.Get("/:course_id/content/:content_id/quiz/attempts", middleware.JWTMiddleware, validators.GetQuizAttempts(), controllers.GetQuizAttempts)

	// Certificate issuance
	userGroup.Post("/:course_id/certificate", middleware.JWTMiddleware, validators.GenerateCertificate(), controllers.GenerateCertificate)

	// User enrollments and certificates
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
	userEnrollGroup.Get("/certificate/:certificate_id/download", middleware.JWTMiddleware, validators.DownloadCertificate(), controllers.DownloadCertificate)
}
