package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	StatusEnrolled   = "ENROLLED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Enrollment tracks a user's enrollment in a course with progress.
// Invariants: Completed=true implies CompletedAt is set, and CompletedAt is
// stamped exactly once. CertificateURL holds the authoritative pointer to
// the latest issued certificate; regeneration overwrites it. Version guards
// every update so concurrent writers cannot clobber each other.
type Enrollment struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	CourseID       uint       `json:"course_id" gorm:"index;not null"`
	Status         string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress       float64    `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedItems int        `json:"completed_items" gorm:"default:0"`
	TotalItems     int        `json:"total_items" gorm:"default:0"`
	Completed      bool       `json:"completed" gorm:"default:false"`
	CompletedAt    *time.Time `json:"completed_at"`
	CertificateURL string     `json:"certificate_url"`
	Version        int        `json:"version" gorm:"default:1"`
	IsDeleted      bool       `gorm:"default:false"`
}
