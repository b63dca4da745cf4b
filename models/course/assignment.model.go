package course

import (
	"time"

	"gorm.io/gorm"
)

// Submission statuses. Transitions only move forward:
// draft -> submitted -> graded.
const (
	SubmissionDraft     = "draft"
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
)

// Assignment is teacher-authored work attached to a course. Points is the
// grade ceiling for its submissions.
type Assignment struct {
	gorm.Model
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	Title        string     `json:"title"`
	Instructions string     `json:"instructions" gorm:"type:text"`
	Points       float64    `json:"points" gorm:"default:100"`
	DueDate      *time.Time `json:"due_date"`
	IsPublished  bool       `json:"is_published" gorm:"default:false"`
	IsDeleted    bool       `gorm:"default:false"`
}

// AssignmentSubmission is a student's answer to an assignment.
// Grade stays within [0, assignment.Points] whenever it is set.
type AssignmentSubmission struct {
	gorm.Model
	AssignmentID  uint       `json:"assignment_id" gorm:"index;not null"`
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	CourseID      uint       `json:"course_id" gorm:"index;not null"`
	Content       string     `json:"content" gorm:"type:text"`
	AttachmentURL string     `json:"attachment_url"`
	Status        string     `json:"status" gorm:"default:'draft'"` // draft, submitted, graded
	Grade         *float64   `json:"grade"`
	Feedback      string     `json:"feedback" gorm:"type:text"`
	GradedBy      *uint      `json:"graded_by"`
	GradedAt      *time.Time `json:"graded_at"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	IsLate        bool       `json:"is_late" gorm:"default:false"`
	IsDeleted     bool       `gorm:"default:false"`
}
