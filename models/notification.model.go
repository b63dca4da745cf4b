package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Notification types emitted by the workflows
const (
	NotificationEnrollment  = "ENROLLMENT"
	NotificationCompletion  = "COMPLETION"
	NotificationGrade       = "GRADE"
	NotificationCertificate = "CERTIFICATE"
)

// Notification is an append-only record pushed to a user's inbox.
// Rows are inserted by workflows; only the Read flag changes afterwards.
type Notification struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Type      string         `json:"type" gorm:"index;not null"`
	Title     string         `json:"title"`
	Message   string         `json:"message" gorm:"type:text"`
	Read      bool           `json:"read" gorm:"default:false"`
	Tags      pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsDeleted bool           `gorm:"default:false"`
}
