package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
)

var certificateService *services.CertificateService

// InitCertificateService wires the certificate service to the configured
// storage backend. Must be called before the certificate routes are served.
func InitCertificateService(store storage.Storage) *services.CertificateService {
	certificateService = services.NewCertificateService(database.Database.Db, store)
	return certificateService
}

// GenerateCertificate renders and issues a certificate for a completed course
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	result, err := certificateService.Issue(c.Context(), userID, uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		}
		if errors.Is(err, services.ErrCourseNotCompleted) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
		}
		if errors.Is(err, services.ErrStorageUnavailable) && result != nil {
			// Storage is down. The issuance stays pending for the sweep to
			// finish, and the student gets the rendered PDF directly.
			c.Set(fiber.HeaderContentType, "application/pdf")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Certificate.SerialNumber+`.pdf"`)
			c.Status(fiber.StatusAccepted)
			return c.Send(result.PDF)
		}
		if errors.Is(err, services.ErrEnrollmentConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment was updated concurrently, please retry!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", result)
}

// DownloadCertificate streams the stored certificate PDF back to its owner
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	certificateID := c.Locals("certificateID").(int)

	var certificate courseModels.Certificate
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", certificateID, userID, false).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if certificate.Status != courseModels.CertificateIssued {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate is not ready yet!", nil)
	}

	data, err := certificateService.Download(c.Context(), &certificate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch certificate file!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+certificate.SerialNumber+`.pdf"`)
	return c.Send(data)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	pending := 0
	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		if cert.Status == courseModels.CertificatePending {
			pending++
		}
		var crs courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&crs)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseName:  crs.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"pending":      pending,
	})
}
