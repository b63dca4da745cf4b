package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lms/models"
	"lms/models/course"
	"lms/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingStorage simulates an unreachable object store
type failingStorage struct{}

func (failingStorage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	return errors.New("storage offline")
}

func (failingStorage) Download(ctx context.Context, path string) ([]byte, error) {
	return nil, errors.New("storage offline")
}

func (failingStorage) Exists(ctx context.Context, path string) (bool, error) {
	return false, errors.New("storage offline")
}

func (failingStorage) PublicURL(path string) string { return "" }

func completeEnrollment(t *testing.T, db *gorm.DB, userID uint, courseID uint) *course.Enrollment {
	t.Helper()

	now := time.Now()
	enrollment := course.Enrollment{
		UserID:      userID,
		CourseID:    courseID,
		Status:      course.StatusCompleted,
		Progress:    100,
		Completed:   true,
		CompletedAt: &now,
		Version:     1,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("Failed to create enrollment: %v", err)
	}
	return &enrollment
}

func TestIssueRequiresCompletedCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db, storage.NewLocalStorage(t.TempDir(), "http://localhost:3000"))
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 2)

	_, err := svc.Issue(context.Background(), student.ID, crs.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	enrollStudent(t, db, student.ID, crs.ID)
	_, err = svc.Issue(context.Background(), student.ID, crs.ID)
	assert.ErrorIs(t, err, ErrCourseNotCompleted)

	var count int64
	db.Model(&course.Certificate{}).Count(&count)
	assert.Equal(t, int64(0), count, "a rejected issuance must not stage a row")
}

func TestIssueStoresPDFAndLinksEnrollment(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStorage(t.TempDir(), "http://localhost:3000")
	svc := NewCertificateService(db, store)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 2)
	completeEnrollment(t, db, student.ID, crs.ID)

	result, err := svc.Issue(context.Background(), student.ID, crs.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Certificate)

	assert.Equal(t, course.CertificateIssued, result.Certificate.Status)
	assert.Contains(t, result.Certificate.SerialNumber, "CERT-")
	assert.NotNil(t, result.Certificate.IssuedAt)
	assert.True(t, bytes.HasPrefix(result.PDF, []byte("%PDF")), "result must carry the rendered document")

	// The blob lands under the student's own prefix
	assert.Contains(t, result.Certificate.StoragePath, fmt.Sprintf("certificates/%d/", student.ID))
	exists, err := store.Exists(context.Background(), result.Certificate.StoragePath)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NotEmpty(t, result.URL)
	assert.Equal(t, store.PublicURL(result.Certificate.StoragePath), result.URL)

	var enrollment course.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", student.ID, crs.ID).First(&enrollment).Error)
	assert.Equal(t, result.URL, enrollment.CertificateURL)
	assert.Equal(t, 2, enrollment.Version)

	assert.Equal(t, int64(1), countNotifications(t, db, student.ID, models.NotificationCertificate))
}

func TestRegenerationKeepsHistoryAndMovesPointer(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStorage(t.TempDir(), "http://localhost:3000")
	svc := NewCertificateService(db, store)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 2)
	completeEnrollment(t, db, student.ID, crs.ID)

	first, err := svc.Issue(context.Background(), student.ID, crs.ID)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), student.ID, crs.ID)
	require.NoError(t, err)

	// Both rows survive as history, each with its own blob
	var count int64
	db.Model(&course.Certificate{}).Where("user_id = ? AND course_id = ?", student.ID, crs.ID).Count(&count)
	assert.Equal(t, int64(2), count)
	assert.NotEqual(t, first.Certificate.StoragePath, second.Certificate.StoragePath)
	for _, path := range []string{first.Certificate.StoragePath, second.Certificate.StoragePath} {
		exists, err := store.Exists(context.Background(), path)
		require.NoError(t, err)
		assert.True(t, exists)
	}

	// The pointer follows the last successful write
	var enrollment course.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", student.ID, crs.ID).First(&enrollment).Error)
	assert.Equal(t, second.URL, enrollment.CertificateURL)
	assert.Equal(t, 3, enrollment.Version)
}

func TestIssueUploadFailureStaysPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db, failingStorage{})
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 2)
	completeEnrollment(t, db, student.ID, crs.ID)

	result, err := svc.Issue(context.Background(), student.ID, crs.ID)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	// The document is still offered even though the upload failed
	require.NotNil(t, result)
	assert.True(t, bytes.HasPrefix(result.PDF, []byte("%PDF")))
	assert.Empty(t, result.URL)

	var certificate course.Certificate
	require.NoError(t, db.First(&certificate, result.Certificate.ID).Error)
	assert.Equal(t, course.CertificatePending, certificate.Status)
	assert.Empty(t, certificate.CertificateURL)

	// No enrollment write before the blob is safe
	var enrollment course.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", student.ID, crs.ID).First(&enrollment).Error)
	assert.Empty(t, enrollment.CertificateURL)
	assert.Equal(t, 1, enrollment.Version)

	assert.Equal(t, int64(0), countNotifications(t, db, student.ID, models.NotificationCertificate))
}

func TestSweepReconcilesPending(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStorage(t.TempDir(), "http://localhost:3000")
	svc := NewCertificateService(db, store)
	crs, _ := createPublishedCourse(t, db, "Algebra", 2)

	studentA := createStudent(t, db, "Asha Verma", "asha@example.com")
	enrollmentA := completeEnrollment(t, db, studentA.ID, crs.ID)
	studentB := createStudent(t, db, "Vikram Singh", "vikram@example.com")
	enrollmentB := completeEnrollment(t, db, studentB.ID, crs.ID)

	// A: the blob landed but the confirmation write was lost
	pathA := fmt.Sprintf("certificates/%d/certificate_recovered.pdf", studentA.ID)
	require.NoError(t, store.Upload(context.Background(), pathA, []byte("%PDF-1.4 recovered"), "application/pdf"))
	certA := course.Certificate{
		UserID:       studentA.ID,
		CourseID:     crs.ID,
		EnrollmentID: enrollmentA.ID,
		SerialNumber: "CERT-SWEEP-A",
		StoragePath:  pathA,
		Status:       course.CertificatePending,
	}
	require.NoError(t, db.Create(&certA).Error)

	// B: the upload never landed
	certB := course.Certificate{
		UserID:       studentB.ID,
		CourseID:     crs.ID,
		EnrollmentID: enrollmentB.ID,
		SerialNumber: "CERT-SWEEP-B",
		StoragePath:  fmt.Sprintf("certificates/%d/certificate_lost.pdf", studentB.ID),
		Status:       course.CertificatePending,
	}
	require.NoError(t, db.Create(&certB).Error)

	// Give the staged rows a created_at strictly before the cutoff
	time.Sleep(20 * time.Millisecond)

	report := svc.Sweep(0)
	assert.Equal(t, 1, report.Finalized)
	assert.Equal(t, 1, report.Failed)

	var reloadedA course.Certificate
	require.NoError(t, db.First(&reloadedA, certA.ID).Error)
	assert.Equal(t, course.CertificateIssued, reloadedA.Status)
	assert.Equal(t, store.PublicURL(pathA), reloadedA.CertificateURL)
	assert.NotNil(t, reloadedA.IssuedAt)

	var reloadedEnrollmentA course.Enrollment
	require.NoError(t, db.First(&reloadedEnrollmentA, enrollmentA.ID).Error)
	assert.Equal(t, store.PublicURL(pathA), reloadedEnrollmentA.CertificateURL)
	assert.Equal(t, 2, reloadedEnrollmentA.Version)

	var reloadedB course.Certificate
	require.NoError(t, db.First(&reloadedB, certB.ID).Error)
	assert.Equal(t, course.CertificateFailed, reloadedB.Status)

	var reloadedEnrollmentB course.Enrollment
	require.NoError(t, db.First(&reloadedEnrollmentB, enrollmentB.ID).Error)
	assert.Empty(t, reloadedEnrollmentB.CertificateURL)
	assert.Equal(t, 1, reloadedEnrollmentB.Version)
}

func TestSweepLeavesPointerWithNewerIssued(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStorage(t.TempDir(), "http://localhost:3000")
	svc := NewCertificateService(db, store)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 2)
	enrollment := completeEnrollment(t, db, student.ID, crs.ID)

	// An older stranded issuance whose blob made it to storage
	stalePath := fmt.Sprintf("certificates/%d/certificate_stale.pdf", student.ID)
	require.NoError(t, store.Upload(context.Background(), stalePath, []byte("%PDF-1.4 stale"), "application/pdf"))
	stale := course.Certificate{
		UserID:       student.ID,
		CourseID:     crs.ID,
		EnrollmentID: enrollment.ID,
		SerialNumber: "CERT-SWEEP-STALE",
		StoragePath:  stalePath,
		Status:       course.CertificatePending,
	}
	require.NoError(t, db.Create(&stale).Error)

	// A regeneration issued after the stranded one owns the pointer
	latest, err := svc.Issue(context.Background(), student.ID, crs.ID)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	report := svc.Sweep(0)
	assert.Equal(t, 1, report.Finalized)

	// The stranded row is confirmed, but the pointer stays on the newer blob
	var reloadedStale course.Certificate
	require.NoError(t, db.First(&reloadedStale, stale.ID).Error)
	assert.Equal(t, course.CertificateIssued, reloadedStale.Status)
	assert.Equal(t, store.PublicURL(stalePath), reloadedStale.CertificateURL)

	var reloadedEnrollment course.Enrollment
	require.NoError(t, db.First(&reloadedEnrollment, enrollment.ID).Error)
	assert.Equal(t, latest.URL, reloadedEnrollment.CertificateURL)
	assert.Equal(t, 2, reloadedEnrollment.Version)
}

func TestDownloadReturnsStoredBlob(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStorage(t.TempDir(), "http://localhost:3000")
	svc := NewCertificateService(db, store)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 2)
	completeEnrollment(t, db, student.ID, crs.ID)

	result, err := svc.Issue(context.Background(), student.ID, crs.ID)
	require.NoError(t, err)

	data, err := svc.Download(context.Background(), result.Certificate)
	require.NoError(t, err)
	assert.Equal(t, result.PDF, data)
}
