package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"lms/models"
	"lms/models/course"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("setupTestDB() failed: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&course.Course{},
		&course.ContentItem{},
		&course.ContentProgress{},
		&course.Enrollment{},
		&course.QuizQuestion{},
		&course.QuizAttempt{},
		&course.Assignment{},
		&course.AssignmentSubmission{},
		&course.Certificate{},
	); err != nil {
		t.Fatalf("setupTestDB() migration failed: %v", err)
	}

	return db
}

func createStudent(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: "STUDENT"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return user
}

func createPublishedCourse(t *testing.T, db *gorm.DB, title string, itemCount int) (course.Course, []course.ContentItem) {
	t.Helper()

	crs := course.Course{
		Title:       title,
		Description: "Test course",
		Category:    "Testing",
		Status:      "ACTIVE",
		IsPublished: true,
	}
	if err := db.Create(&crs).Error; err != nil {
		t.Fatalf("createPublishedCourse() failed: %v", err)
	}

	items := make([]course.ContentItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		item := course.ContentItem{
			CourseID:    crs.ID,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			ContentType: course.ContentArticle,
			OrderIndex:  i + 1,
			IsPublished: true,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("createPublishedCourse() content failed: %v", err)
		}
		items = append(items, item)
	}

	return crs, items
}

func enrollStudent(t *testing.T, db *gorm.DB, userID, courseID uint) course.Enrollment {
	t.Helper()

	enrollment := course.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   course.StatusEnrolled,
		Version:  1,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("enrollStudent() failed: %v", err)
	}
	return enrollment
}

func countNotifications(t *testing.T, db *gorm.DB, userID uint, notificationType string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, notificationType).
		Count(&count).Error; err != nil {
		t.Fatalf("countNotifications() failed: %v", err)
	}
	return count
}
