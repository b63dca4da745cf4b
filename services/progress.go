package services

import (
	"errors"
	"log"
	"math"
	"time"

	"lms/models"
	"lms/models/course"
	"lms/utils"

	"gorm.io/gorm"
)

var (
	// ErrNotEnrolled is returned when no active enrollment exists for the user and course
	ErrNotEnrolled = errors.New("enrollment not found")
	// ErrEnrollmentConflict is returned when a guarded enrollment update loses to a concurrent writer
	ErrEnrollmentConflict = errors.New("enrollment was updated concurrently, please retry")
)

// ProgressService aggregates per-student completion and flips enrollments
// to completed when they cross the threshold.
type ProgressService struct {
	db        *gorm.DB
	threshold float64
}

func NewProgressService(db *gorm.DB, threshold float64) *ProgressService {
	return &ProgressService{db: db, threshold: threshold}
}

// ProgressSummary is the aggregation result for one enrollment
type ProgressSummary struct {
	CompletedItems int     `json:"completed_items"`
	TotalItems     int     `json:"total_items"`
	Percent        float64 `json:"percent"`
}

// ContentProgressInput carries one client progress report. Time and position
// are cumulative values, so repeating a report changes nothing.
type ContentProgressInput struct {
	CompletionPct       float64
	TimeSpentSeconds    int
	LastPositionSeconds int
	Completed           bool
}

// CourseProgress computes the student's completion percentage for a course:
// completed items over published items, rounded, 0 when the course has no
// published content. The result is always within [0, 100].
func (s *ProgressService) CourseProgress(userID uint, courseID uint) (ProgressSummary, error) {
	var totalItems int64
	if err := s.db.Model(&course.ContentItem{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalItems).Error; err != nil {
		return ProgressSummary{}, err
	}

	// A course with no published content reads as zero progress
	if totalItems == 0 {
		return ProgressSummary{}, nil
	}

	var completedItems int64
	if err := s.db.Model(&course.ContentProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ? AND is_deleted = ?", userID, courseID, true, false).
		Count(&completedItems).Error; err != nil {
		return ProgressSummary{}, err
	}

	percent := math.Round(float64(completedItems) / float64(totalItems) * 100)
	if percent > 100 {
		// Completions can outnumber published items when content is
		// unpublished later; the percentage still caps at 100.
		percent = 100
	}

	return ProgressSummary{
		CompletedItems: int(completedItems),
		TotalItems:     int(totalItems),
		Percent:        percent,
	}, nil
}

// SyncEnrollment recomputes the enrollment's progress and applies the
// completion trigger. Completed and CompletedAt are written in the same
// guarded UPDATE, and only for an enrollment that has never completed, so
// the stamp happens exactly once. Version conflicts get one retry before
// the caller is told.
func (s *ProgressService) SyncEnrollment(userID uint, courseID uint) (*course.Enrollment, error) {
	for attempt := 0; attempt < 2; attempt++ {
		var enrollment course.Enrollment
		if err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
			First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotEnrolled
			}
			return nil, err
		}

		summary, err := s.CourseProgress(userID, courseID)
		if err != nil {
			return nil, err
		}

		updates := map[string]interface{}{
			"progress":        summary.Percent,
			"completed_items": summary.CompletedItems,
			"total_items":     summary.TotalItems,
			"version":         enrollment.Version + 1,
		}

		justCompleted := false
		if !enrollment.Completed {
			if summary.Percent >= s.threshold {
				completedAt := time.Now()
				updates["status"] = course.StatusCompleted
				updates["completed"] = true
				updates["completed_at"] = completedAt
				justCompleted = true
			} else if summary.Percent > 0 {
				updates["status"] = course.StatusInProgress
			}
		}

		result := s.db.Model(&course.Enrollment{}).
			Where("id = ? AND version = ?", enrollment.ID, enrollment.Version).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race, re-read and try once more
			continue
		}

		if err := s.db.First(&enrollment, enrollment.ID).Error; err != nil {
			return nil, err
		}

		if justCompleted {
			s.announceCompletion(&enrollment)
		}

		return &enrollment, nil
	}

	return nil, ErrEnrollmentConflict
}

// RecordContentProgress upserts the student's progress row for one content
// item and resyncs the enrollment. Completed is monotonic: a later report
// with a lower percentage never un-completes the item.
func (s *ProgressService) RecordContentProgress(userID uint, item *course.ContentItem, input ContentProgressInput) (*course.ContentProgress, error) {
	var record course.ContentProgress
	err := s.db.Where("user_id = ? AND content_item_id = ? AND is_deleted = ?", userID, item.ID, false).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = course.ContentProgress{
			UserID:        userID,
			CourseID:      item.CourseID,
			ContentItemID: item.ID,
		}
	} else if err != nil {
		return nil, err
	}

	pct := input.CompletionPct
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	record.CompletionPct = pct
	record.TimeSpentSeconds = input.TimeSpentSeconds
	record.LastPositionSeconds = input.LastPositionSeconds
	if input.Completed || pct >= 100 {
		record.Completed = true
		record.CompletionPct = 100
	}

	if err := s.db.Save(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// announceCompletion notifies the student that the course is done
func (s *ProgressService) announceCompletion(enrollment *course.Enrollment) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&user).Error; err != nil {
		return
	}
	var crs course.Course
	if err := s.db.Where("id = ?", enrollment.CourseID).First(&crs).Error; err != nil {
		return
	}

	if err := Notify(s.db, user.ID, models.NotificationCompletion,
		"Course completed",
		"Congratulations! You have completed \""+crs.Title+"\". Your certificate is ready to be generated.",
		"progress", "completion"); err != nil {
		log.Printf("Failed to create completion notification for user %d: %v", user.ID, err)
	}

	utils.SendCompletionEmail(user.Email, user.Name, crs.Title)
}
