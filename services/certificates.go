package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lms/models"
	"lms/models/course"
	"lms/storage"
	"lms/utils"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrCourseNotCompleted is returned when the enrollment has not completed yet
	ErrCourseNotCompleted = errors.New("course is not completed yet")
	// ErrStorageUnavailable is returned when the certificate blob could not be uploaded.
	// The error is recoverable: the caller still gets the rendered bytes.
	ErrStorageUnavailable = errors.New("certificate upload failed, please try again")
)

// CertificateService issues course completion certificates in two phases:
// a PENDING row is staged, the blob is uploaded, then the row is confirmed
// ISSUED and the enrollment pointer is written. A crash between the phases
// leaves a PENDING row for the sweep instead of a dangling URL. Issuance is
// not idempotent: every call renders a new blob at a new path and the
// enrollment pointer always follows the last successful write.
type CertificateService struct {
	db    *gorm.DB
	store storage.Storage
}

func NewCertificateService(db *gorm.DB, store storage.Storage) *CertificateService {
	return &CertificateService{db: db, store: store}
}

// IssueResult carries the outcome of one issuance. PDF is always populated
// once rendering succeeded, so the document can be offered as a download
// even when the upload failed.
type IssueResult struct {
	Certificate *course.Certificate `json:"certificate"`
	PDF         []byte              `json:"-"`
	URL         string              `json:"url"`
}

// SweepReport summarizes one reconciliation pass
type SweepReport struct {
	Finalized int `json:"finalized"`
	Failed    int `json:"failed"`
}

// Issue renders, stores and records a certificate for a completed enrollment
func (s *CertificateService) Issue(ctx context.Context, userID uint, courseID uint) (*IssueResult, error) {
	var enrollment course.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	// Certificates only exist for completed courses
	if !enrollment.Completed {
		return nil, ErrCourseNotCompleted
	}

	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, err
	}

	var crs course.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return nil, err
	}

	completedAt := time.Now()
	if enrollment.CompletedAt != nil {
		completedAt = *enrollment.CompletedAt
	}

	shortID := strings.Split(uuid.New().String(), "-")[0]
	serial := fmt.Sprintf("CERT-%d-%d-%s", courseID, userID, strings.ToUpper(shortID))

	pdfBytes, err := utils.RenderCertificatePDF(utils.CertificateData{
		StudentName:  user.Name,
		CourseTitle:  crs.Title,
		SerialNumber: serial,
		CompletedAt:  completedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}

	objectPath := fmt.Sprintf("certificates/%d/certificate_%d_%d_%s.pdf",
		userID, courseID, time.Now().Unix(), shortID)

	// Phase one: stage the row before touching storage
	certificate := course.Certificate{
		UserID:       userID,
		CourseID:     courseID,
		EnrollmentID: enrollment.ID,
		SerialNumber: serial,
		StoragePath:  objectPath,
		Status:       course.CertificatePending,
	}
	if err := s.db.Create(&certificate).Error; err != nil {
		return nil, err
	}

	// Upload strictly before any enrollment write
	if err := s.store.Upload(ctx, objectPath, pdfBytes, "application/pdf"); err != nil {
		log.Printf("Certificate upload failed for enrollment %d: %v", enrollment.ID, err)
		return &IssueResult{Certificate: &certificate, PDF: pdfBytes}, ErrStorageUnavailable
	}

	// Phase two: confirm the row and move the enrollment pointer
	url := s.store.PublicURL(objectPath)
	err = s.finalize(&certificate, &enrollment, url)
	if errors.Is(err, ErrEnrollmentConflict) {
		// A progress sync raced us; re-read and take the last write
		if readErr := s.db.First(&enrollment, enrollment.ID).Error; readErr == nil {
			err = s.finalize(&certificate, &enrollment, url)
		}
	}
	if err != nil {
		return nil, err
	}

	s.announceCertificate(&user, &crs, &certificate)

	return &IssueResult{Certificate: &certificate, PDF: pdfBytes, URL: url}, nil
}

// Download fetches the stored certificate blob for an issued certificate
func (s *CertificateService) Download(ctx context.Context, certificate *course.Certificate) ([]byte, error) {
	return s.store.Download(ctx, certificate.StoragePath)
}

// finalize confirms the certificate row and, when enrollment is non-nil,
// rewrites the enrollment's pointer under the version guard. Passing a nil
// enrollment confirms the row only, used when a newer certificate already
// owns the pointer.
func (s *CertificateService) finalize(certificate *course.Certificate, enrollment *course.Enrollment, url string) error {
	issuedAt := time.Now()

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	certificate.Status = course.CertificateIssued
	certificate.CertificateURL = url
	certificate.IssuedAt = &issuedAt
	if err := tx.Save(certificate).Error; err != nil {
		tx.Rollback()
		return err
	}

	if enrollment != nil {
		result := tx.Model(&course.Enrollment{}).
			Where("id = ? AND version = ?", enrollment.ID, enrollment.Version).
			Updates(map[string]interface{}{
				"certificate_url": url,
				"version":         enrollment.Version + 1,
			})
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrEnrollmentConflict
		}
	}

	return tx.Commit().Error
}

// Sweep reconciles stale PENDING certificates: rows whose blob made it to
// storage are confirmed, rows whose upload never landed are marked FAILED.
// Runs on a schedule; gracePeriod keeps in-flight issuances out of the pass.
func (s *CertificateService) Sweep(gracePeriod time.Duration) SweepReport {
	var report SweepReport
	cutoff := time.Now().Add(-gracePeriod)

	var pending []course.Certificate
	if err := s.db.Where("status = ? AND is_deleted = ? AND created_at < ?",
		course.CertificatePending, false, cutoff).Find(&pending).Error; err != nil {
		log.Printf("[SCHEDULER] Certificate sweep query failed: %v", err)
		return report
	}

	for i := range pending {
		certificate := &pending[i]

		exists, err := s.store.Exists(context.Background(), certificate.StoragePath)
		if err != nil {
			log.Printf("[SCHEDULER] Could not check object %s: %v", certificate.StoragePath, err)
			continue
		}

		if !exists {
			// The upload never landed; the caller already saw the failure
			if err := s.db.Model(certificate).Update("status", course.CertificateFailed).Error; err != nil {
				log.Printf("[SCHEDULER] Could not mark certificate %s failed: %v", certificate.SerialNumber, err)
				continue
			}
			report.Failed++
			continue
		}

		// The blob landed but the confirmation write was lost. Re-link the
		// enrollment unless a newer certificate was issued since.
		var newerIssued int64
		s.db.Model(&course.Certificate{}).
			Where("enrollment_id = ? AND id > ? AND status = ? AND is_deleted = ?",
				certificate.EnrollmentID, certificate.ID, course.CertificateIssued, false).
			Count(&newerIssued)

		url := s.store.PublicURL(certificate.StoragePath)

		var enrollment *course.Enrollment
		if newerIssued == 0 {
			var found course.Enrollment
			if err := s.db.First(&found, certificate.EnrollmentID).Error; err != nil {
				log.Printf("[SCHEDULER] Could not load enrollment %d: %v", certificate.EnrollmentID, err)
				continue
			}
			enrollment = &found
		}

		if err := s.finalize(certificate, enrollment, url); err != nil {
			log.Printf("[SCHEDULER] Could not finalize certificate %s: %v", certificate.SerialNumber, err)
			continue
		}
		report.Finalized++
	}

	return report
}

// VerifyIssuedURLs HEAD-checks the most recently issued certificate URLs and
// logs the ones that no longer dereference. Read-only: dangling pointers are
// resolved by regeneration, not by the sweep.
func (s *CertificateService) VerifyIssuedURLs(limit int) int {
	var issued []course.Certificate
	if err := s.db.Where("status = ? AND is_deleted = ?", course.CertificateIssued, false).
		Order("id DESC").Limit(limit).Find(&issued).Error; err != nil {
		log.Printf("[SCHEDULER] Certificate verification query failed: %v", err)
		return 0
	}

	client := resty.New().SetTimeout(10 * time.Second)
	dangling := 0

	for _, certificate := range issued {
		if certificate.CertificateURL == "" {
			continue
		}
		resp, err := client.R().Head(certificate.CertificateURL)
		if err != nil {
			log.Printf("[SCHEDULER] Could not verify certificate %s: %v", certificate.SerialNumber, err)
			continue
		}
		if resp.StatusCode() >= 400 {
			log.Printf("[SCHEDULER] Certificate %s URL returns %d: %s",
				certificate.SerialNumber, resp.StatusCode(), certificate.CertificateURL)
			dangling++
		}
	}

	return dangling
}

// RunSweep is the scheduler entry point for the reconciliation pass
func (s *CertificateService) RunSweep() {
	report := s.Sweep(15 * time.Minute)
	log.Printf("[SCHEDULER] Certificate sweep done: %d finalized, %d failed", report.Finalized, report.Failed)
}

// RunURLCheck is the scheduler entry point for issued URL verification
func (s *CertificateService) RunURLCheck() {
	dangling := s.VerifyIssuedURLs(100)
	log.Printf("[SCHEDULER] Certificate URL check done: %d dangling", dangling)
}

// announceCertificate notifies the student that the certificate is ready
func (s *CertificateService) announceCertificate(user *models.User, crs *course.Course, certificate *course.Certificate) {
	message := fmt.Sprintf("Your certificate for \"%s\" is ready. Certificate number: %s.",
		crs.Title, certificate.SerialNumber)

	if err := Notify(s.db, user.ID, models.NotificationCertificate,
		"Certificate issued", message, "certificate"); err != nil {
		log.Printf("Failed to create certificate notification for user %d: %v", user.ID, err)
	}

	utils.SendCertificateEmail(user.Email, user.Name, crs.Title, certificate.SerialNumber, certificate.CertificateURL)
}
