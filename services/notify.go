package services

import (
	"lms/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Notify appends a notification to a user's inbox. The inbox is insert-only;
// delivery means the row exists, nothing more is acknowledged.
func Notify(db *gorm.DB, userID uint, notificationType, title, message string, tags ...string) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Tags:    pq.StringArray(tags),
	}
	return db.Create(&notification).Error
}
