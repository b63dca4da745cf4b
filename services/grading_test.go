package services

import (
	"testing"
	"time"

	"lms/models"
	"lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createAssignment(t *testing.T, db *gorm.DB, courseID uint, points float64) *course.Assignment {
	t.Helper()

	assignment := course.Assignment{
		CourseID:    courseID,
		Title:       "Weekly Problem Set",
		Points:      points,
		IsPublished: true,
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("Failed to create assignment: %v", err)
	}
	return &assignment
}

func createSubmission(t *testing.T, db *gorm.DB, assignment *course.Assignment, userID uint, status string) *course.AssignmentSubmission {
	t.Helper()

	submission := course.AssignmentSubmission{
		AssignmentID: assignment.ID,
		UserID:       userID,
		CourseID:     assignment.CourseID,
		Content:      "My answer",
		Status:       status,
	}
	if status != course.SubmissionDraft {
		now := time.Now()
		submission.SubmittedAt = &now
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("Failed to create submission: %v", err)
	}
	return &submission
}

func TestGradeSubmissionSetsFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGradingService(db)
	grader := createStudent(t, db, "Teacher Rao", "rao@example.com")
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 1)
	assignment := createAssignment(t, db, crs.ID, 20)
	submission := createSubmission(t, db, assignment, student.ID, course.SubmissionSubmitted)

	graded, err := svc.GradeSubmission(grader.ID, submission.ID, 17.5, "Good work")
	require.NoError(t, err)

	assert.Equal(t, course.SubmissionGraded, graded.Status)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, 17.5, *graded.Grade)
	assert.Equal(t, "Good work", graded.Feedback)
	require.NotNil(t, graded.GradedBy)
	assert.Equal(t, grader.ID, *graded.GradedBy)
	assert.NotNil(t, graded.GradedAt)
	assert.Equal(t, int64(1), countNotifications(t, db, student.ID, models.NotificationGrade))
}

func TestGradeSubmissionAcceptsBoundaries(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGradingService(db)
	grader := createStudent(t, db, "Teacher Rao", "rao@example.com")
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 1)
	assignment := createAssignment(t, db, crs.ID, 20)

	zero := createSubmission(t, db, assignment, student.ID, course.SubmissionSubmitted)
	graded, err := svc.GradeSubmission(grader.ID, zero.ID, 0, "")
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, float64(0), *graded.Grade)

	full := createSubmission(t, db, assignment, student.ID, course.SubmissionSubmitted)
	graded, err = svc.GradeSubmission(grader.ID, full.ID, 20, "")
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, float64(20), *graded.Grade)
}

func TestGradeSubmissionRejectsOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGradingService(db)
	grader := createStudent(t, db, "Teacher Rao", "rao@example.com")
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 1)
	assignment := createAssignment(t, db, crs.ID, 20)
	submission := createSubmission(t, db, assignment, student.ID, course.SubmissionSubmitted)

	_, err := svc.GradeSubmission(grader.ID, submission.ID, -1, "")
	assert.ErrorIs(t, err, ErrGradeOutOfRange)

	_, err = svc.GradeSubmission(grader.ID, submission.ID, 21, "")
	assert.ErrorIs(t, err, ErrGradeOutOfRange)

	// A rejected grade leaves the submission untouched
	var reloaded course.AssignmentSubmission
	require.NoError(t, db.First(&reloaded, submission.ID).Error)
	assert.Equal(t, course.SubmissionSubmitted, reloaded.Status)
	assert.Nil(t, reloaded.Grade)
	assert.Nil(t, reloaded.GradedAt)
	assert.Equal(t, int64(0), countNotifications(t, db, student.ID, models.NotificationGrade))
}

func TestGradeSubmissionRejectsWrongStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGradingService(db)
	grader := createStudent(t, db, "Teacher Rao", "rao@example.com")
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 1)
	assignment := createAssignment(t, db, crs.ID, 20)

	draft := createSubmission(t, db, assignment, student.ID, course.SubmissionDraft)
	_, err := svc.GradeSubmission(grader.ID, draft.ID, 10, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	submitted := createSubmission(t, db, assignment, student.ID, course.SubmissionSubmitted)
	_, err = svc.GradeSubmission(grader.ID, submitted.ID, 10, "")
	require.NoError(t, err)

	// Grading twice is not allowed either
	_, err = svc.GradeSubmission(grader.ID, submitted.ID, 12, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGradeSubmissionNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGradingService(db)
	grader := createStudent(t, db, "Teacher Rao", "rao@example.com")

	_, err := svc.GradeSubmission(grader.ID, 9999, 10, "")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestBulkGradeSkipsInvalid(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGradingService(db)
	grader := createStudent(t, db, "Teacher Rao", "rao@example.com")
	student1 := createStudent(t, db, "Asha Verma", "asha@example.com")
	student2 := createStudent(t, db, "Vikram Singh", "vikram@example.com")
	student3 := createStudent(t, db, "Meena Iyer", "meena@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 1)
	assignment := createAssignment(t, db, crs.ID, 10)

	s1 := createSubmission(t, db, assignment, student1.ID, course.SubmissionSubmitted)
	s2 := createSubmission(t, db, assignment, student2.ID, course.SubmissionDraft)
	s3 := createSubmission(t, db, assignment, student3.ID, course.SubmissionSubmitted)

	result := svc.BulkGrade(grader.ID, []uint{s1.ID, s2.ID, 9999, s3.ID}, 8, "Checked")

	// Valid items land in order, invalid ones are skipped with a reason
	assert.Equal(t, []uint{s1.ID, s3.ID}, result.Graded)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, s2.ID, result.Skipped[0].SubmissionID)
	assert.Equal(t, ErrInvalidTransition.Error(), result.Skipped[0].Reason)
	assert.Equal(t, uint(9999), result.Skipped[1].SubmissionID)
	assert.Equal(t, ErrSubmissionNotFound.Error(), result.Skipped[1].Reason)

	// One notification per graded submission, none for skipped ones
	assert.Equal(t, int64(1), countNotifications(t, db, student1.ID, models.NotificationGrade))
	assert.Equal(t, int64(0), countNotifications(t, db, student2.ID, models.NotificationGrade))
	assert.Equal(t, int64(1), countNotifications(t, db, student3.ID, models.NotificationGrade))
}

func TestBulkGradeValidatesEachCeiling(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGradingService(db)
	grader := createStudent(t, db, "Teacher Rao", "rao@example.com")
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, _ := createPublishedCourse(t, db, "Algebra", 1)

	small := createAssignment(t, db, crs.ID, 5)
	large := createAssignment(t, db, crs.ID, 50)
	onSmall := createSubmission(t, db, small, student.ID, course.SubmissionSubmitted)
	onLarge := createSubmission(t, db, large, student.ID, course.SubmissionSubmitted)

	result := svc.BulkGrade(grader.ID, []uint{onSmall.ID, onLarge.ID}, 8, "")

	assert.Equal(t, []uint{onLarge.ID}, result.Graded)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, onSmall.ID, result.Skipped[0].SubmissionID)
	assert.Equal(t, ErrGradeOutOfRange.Error(), result.Skipped[0].Reason)
}
