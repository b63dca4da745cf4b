package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"lms/models"
	"lms/models/course"
	"lms/utils"

	"gorm.io/gorm"
)

var (
	// ErrSubmissionNotFound is returned when the submission does not exist
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrInvalidTransition is returned when the submission is not in submitted status
	ErrInvalidTransition = errors.New("only submitted work can be graded")
	// ErrGradeOutOfRange is returned when the grade falls outside [0, assignment points]
	ErrGradeOutOfRange = errors.New("grade must be between 0 and the assignment's points")
)

// GradingService moves submissions from submitted to graded and notifies
// the student. Transitions only move forward; a rejected grade leaves the
// submission untouched.
type GradingService struct {
	db *gorm.DB
}

func NewGradingService(db *gorm.DB) *GradingService {
	return &GradingService{db: db}
}

// BulkGradeItem reports one skipped submission in a bulk run
type BulkGradeItem struct {
	SubmissionID uint   `json:"submission_id"`
	Reason       string `json:"reason"`
}

// BulkGradeResult summarizes a bulk grading run
type BulkGradeResult struct {
	Graded  []uint          `json:"graded"`
	Skipped []BulkGradeItem `json:"skipped"`
}

// GradeSubmission validates and applies one grade. On success the grade,
// feedback, status, grader and timestamp land in a single write and the
// student gets one notification.
func (s *GradingService) GradeSubmission(graderID uint, submissionID uint, grade float64, feedback string) (*course.AssignmentSubmission, error) {
	var submission course.AssignmentSubmission
	if err := s.db.Where("id = ? AND is_deleted = ?", submissionID, false).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	var assignment course.Assignment
	if err := s.db.Where("id = ? AND is_deleted = ?", submission.AssignmentID, false).First(&assignment).Error; err != nil {
		return nil, err
	}

	// Validate before any mutation
	if submission.Status != course.SubmissionSubmitted {
		return nil, ErrInvalidTransition
	}
	if grade < 0 || grade > assignment.Points {
		return nil, ErrGradeOutOfRange
	}

	gradedAt := time.Now()
	submission.Grade = &grade
	submission.Feedback = feedback
	submission.Status = course.SubmissionGraded
	submission.GradedAt = &gradedAt
	submission.GradedBy = &graderID

	if err := s.db.Save(&submission).Error; err != nil {
		return nil, err
	}

	s.announceGrade(&submission, &assignment, grade)

	return &submission, nil
}

// BulkGrade applies one grade and feedback to many submissions. The run is
// sequential and not atomic: every submission is validated against its own
// assignment's ceiling, invalid items are skipped and reported, and each
// graded item emits its own notification.
func (s *GradingService) BulkGrade(graderID uint, submissionIDs []uint, grade float64, feedback string) BulkGradeResult {
	result := BulkGradeResult{Graded: []uint{}, Skipped: []BulkGradeItem{}}

	for _, submissionID := range submissionIDs {
		if _, err := s.GradeSubmission(graderID, submissionID, grade, feedback); err != nil {
			result.Skipped = append(result.Skipped, BulkGradeItem{
				SubmissionID: submissionID,
				Reason:       err.Error(),
			})
			continue
		}
		result.Graded = append(result.Graded, submissionID)
	}

	return result
}

// announceGrade notifies the student about the new grade
func (s *GradingService) announceGrade(submission *course.AssignmentSubmission, assignment *course.Assignment, grade float64) {
	message := fmt.Sprintf("Your submission for \"%s\" was graded: %.4g out of %.4g points.",
		assignment.Title, grade, assignment.Points)
	if submission.Feedback != "" {
		message += " Your teacher left feedback."
	}

	if err := Notify(s.db, submission.UserID, models.NotificationGrade,
		"Assignment graded", message, "grading"); err != nil {
		log.Printf("Failed to create grade notification for user %d: %v", submission.UserID, err)
	}

	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", submission.UserID, false).First(&user).Error; err != nil {
		return
	}
	utils.SendGradeEmail(user.Email, user.Name, assignment.Title, grade, assignment.Points)
}
