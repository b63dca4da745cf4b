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

// AdminGetCourseEnrollments gets all enrolled students for a course
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
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

	reqData, _ := c.Locals("validatedEnrollmentQuery").(*struct {
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

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false)

	if reqData != nil && reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}

	var total int64
	db.Count(&total)

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Fetch user details for each enrollment
	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var enrolledUser models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   enrolledUser.Name,
			UserEmail:  enrolledUser.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetCompletedStudents gets students who completed a course
func AdminGetCompletedStudents(c *fiber.Ctx) error {
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

	type CompletedStudent struct {
		UserID         uint       `json:"user_id"`
		UserName       string     `json:"user_name"`
		UserEmail      string     `json:"user_email"`
		Progress       float64    `json:"progress"`
		CompletedAt    *time.Time `json:"completed_at"`
		CertificateURL string     `json:"certificate_url"`
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND completed = ? AND is_deleted = ?", courseID, true, false).
		Order("completed_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed students!", nil)
	}

	result := make([]CompletedStudent, len(enrollments))
	for i, e := range enrollments {
		var enrolledUser models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		result[i] = CompletedStudent{
			UserID:         e.UserID,
			UserName:       enrolledUser.Name,
			UserEmail:      enrolledUser.Email,
			Progress:       e.Progress,
			CompletedAt:    e.CompletedAt,
			CertificateURL: e.CertificateURL,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed students fetched successfully!", fiber.Map{
		"completed_students": result,
		"total":              len(result),
	})
}

// AdminGetStudentProgress gets detailed progress for a student
func AdminGetStudentProgress(c *fiber.Ctx) error {
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

	targetUserID := c.Locals("targetUserID").(int)

	// Get target user
	var targetUser models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&targetUser).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	// Get all enrollments for the user
	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", targetUserID, false).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type CourseProgress struct {
		CourseID       uint       `json:"course_id"`
		CourseName     string     `json:"course_name"`
		Status         string     `json:"status"`
		Progress       float64    `json:"progress"`
		CompletedItems int        `json:"completed_items"`
		TotalItems     int        `json:"total_items"`
		EnrolledAt     time.Time  `json:"enrolled_at"`
		CompletedAt    *time.Time `json:"completed_at"`
	}

	// Quiz attempts summary
	var quizAttempts []courseModels.QuizAttempt
	database.Database.Db.Where("user_id = ? AND is_deleted = ?", targetUserID, false).Find(&quizAttempts)

	totalQuizAttempts := len(quizAttempts)
	passedQuizzes := 0
	for _, attempt := range quizAttempts {
		if attempt.Passed {
			passedQuizzes++
		}
	}

	// Graded submissions summary
	var gradedSubmissions []courseModels.AssignmentSubmission
	database.Database.Db.Where("user_id = ? AND status = ? AND is_deleted = ?", targetUserID, courseModels.SubmissionGraded, false).Find(&gradedSubmissions)

	gradeSum := float64(0)
	for _, sub := range gradedSubmissions {
		if sub.Grade != nil {
			gradeSum += *sub.Grade
		}
	}

	courseProgress := make([]CourseProgress, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		courseProgress[i] = CourseProgress{
			CourseID:       e.CourseID,
			CourseName:     course.Title,
			Status:         e.Status,
			Progress:       e.Progress,
			CompletedItems: e.CompletedItems,
			TotalItems:     e.TotalItems,
			EnrolledAt:     e.CreatedAt,
			CompletedAt:    e.CompletedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":    targetUser.ID,
			"name":  targetUser.Name,
			"email": targetUser.Email,
		},
		"course_progress": courseProgress,
		"quiz_summary": fiber.Map{
			"total_attempts": totalQuizAttempts,
			"passed":         passedQuizzes,
			"pass_rate_percent": func() float64 {
				if totalQuizAttempts == 0 {
					return 0
				}
				return float64(passedQuizzes) / float64(totalQuizAttempts) * 100
			}(),
		},
		"grading_summary": fiber.Map{
			"graded_submissions": len(gradedSubmissions),
			"average_grade": func() float64 {
				if len(gradedSubmissions) == 0 {
					return 0
				}
				return gradeSum / float64(len(gradedSubmissions))
			}(),
		},
	})
}

// AdminDashboardStats gets dashboard statistics
func AdminDashboardStats(c *fiber.Ctx) error {
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

	var totalCourses, publishedCourses, totalStudents, totalEnrollments, completedEnrollments int64
	var issuedCertificates, pendingCertificates, awaitingGrading, enrollmentsThisMonth int64

	database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)
	database.Database.Db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, "STUDENT").Count(&totalStudents)
	database.Database.Db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	database.Database.Db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND completed = ?", false, true).Count(&completedEnrollments)
	database.Database.Db.Model(&courseModels.Certificate{}).Where("is_deleted = ? AND status = ?", false, courseModels.CertificateIssued).Count(&issuedCertificates)
	database.Database.Db.Model(&courseModels.Certificate{}).Where("is_deleted = ? AND status = ?", false, courseModels.CertificatePending).Count(&pendingCertificates)
	database.Database.Db.Model(&courseModels.AssignmentSubmission{}).Where("is_deleted = ? AND status = ?", false, courseModels.SubmissionSubmitted).Count(&awaitingGrading)
	database.Database.Db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND created_at >= ?", false, now.BeginningOfMonth()).Count(&enrollmentsThisMonth)

	// Get recent enrollments
	type RecentEnrollment struct {
		UserName   string    `json:"user_name"`
		CourseName string    `json:"course_name"`
		EnrolledAt time.Time `json:"enrolled_at"`
	}

	var recentEnrollments []courseModels.Enrollment
	database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var enrolledUser models.User
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		recent[i] = RecentEnrollment{
			UserName:   enrolledUser.Name,
			CourseName: course.Title,
			EnrolledAt: e.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"total_courses":          totalCourses,
			"published_courses":      publishedCourses,
			"total_students":         totalStudents,
			"total_enrollments":      totalEnrollments,
			"completed_enrollments":  completedEnrollments,
			"issued_certificates":    issuedCertificates,
			"pending_certificates":   pendingCertificates,
			"awaiting_grading":       awaitingGrading,
			"enrollments_this_month": enrollmentsThisMonth,
		},
		"recent_enrollments": recent,
	})
}
