package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion belongs to a QUIZ content item. Options is a JSON array of
// answer texts; CorrectOption indexes into it.
type QuizQuestion struct {
	gorm.Model
	ContentItemID uint           `json:"content_item_id" gorm:"index;not null"`
	Prompt        string         `json:"prompt" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"`
	CorrectOption int            `json:"correct_option" gorm:"default:0"`
	Points        int            `json:"points" gorm:"default:1"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}

// QuizAttempt records one scored pass through a quiz. Rows are immutable
// once CompletedAt is set; a retake inserts a new row with the next
// AttemptNumber.
type QuizAttempt struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	CourseID      uint           `json:"course_id" gorm:"index;not null"`
	ContentItemID uint           `json:"content_item_id" gorm:"index;not null"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
	Answers       datatypes.JSON `json:"answers"` // question id -> chosen option index
	Score         int            `json:"score"`
	MaxScore      int            `json:"max_score"`
	Passed        bool           `json:"passed" gorm:"default:false"`
	CompletedAt   *time.Time     `json:"completed_at"`
	IsDeleted     bool           `gorm:"default:false"`
}
