package course

import "gorm.io/gorm"

// Content item types
const (
	ContentVideo    = "VIDEO"
	ContentArticle  = "ARTICLE"
	ContentExercise = "EXERCISE"
	ContentBook     = "BOOK"
	ContentQuiz     = "QUIZ"
)

// ContentItem represents a single piece of learnable content in a course
type ContentItem struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ContentType     string `json:"content_type" gorm:"default:'ARTICLE'"` // VIDEO, ARTICLE, EXERCISE, BOOK, QUIZ
	Body            string `json:"body" gorm:"type:text"`                 // For ARTICLE and EXERCISE types
	MediaURL        string `json:"media_url"`                             // For VIDEO and BOOK types
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}

// ContentProgress tracks a student's progress through one content item.
// Exactly one row exists per (user, content item); writes are upserts.
// TimeSpentSeconds and LastPositionSeconds are client-reported cumulative
// values so repeating the same report leaves the row unchanged.
type ContentProgress struct {
	gorm.Model
	UserID              uint    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_content"`
	CourseID            uint    `json:"course_id" gorm:"index;not null"`
	ContentItemID       uint    `json:"content_item_id" gorm:"not null;uniqueIndex:idx_user_content"`
	CompletionPct       float64 `json:"completion_pct" gorm:"default:0"` // 0-100
	Completed           bool    `json:"completed" gorm:"default:false"`
	TimeSpentSeconds    int     `json:"time_spent_seconds" gorm:"default:0"`
	LastPositionSeconds int     `json:"last_position_seconds" gorm:"default:0"`
	IsDeleted           bool    `gorm:"default:false"`
}
