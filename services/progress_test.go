package services

import (
	"testing"
	"time"

	"lms/models"
	"lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeItem(t *testing.T, svc *ProgressService, userID uint, item *course.ContentItem) {
	t.Helper()

	if _, err := svc.RecordContentProgress(userID, item, ContentProgressInput{CompletionPct: 100, Completed: true}); err != nil {
		t.Fatalf("completeItem() failed: %v", err)
	}
}

func TestCourseProgressRounding(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db, 100)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")

	t.Run("three of four", func(t *testing.T) {
		crs, items := createPublishedCourse(t, db, "Algebra", 4)
		enrollStudent(t, db, student.ID, crs.ID)
		for i := 0; i < 3; i++ {
			completeItem(t, svc, student.ID, &items[i])
		}

		summary, err := svc.CourseProgress(student.ID, crs.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.CompletedItems)
		assert.Equal(t, 4, summary.TotalItems)
		assert.Equal(t, float64(75), summary.Percent)
	})

	t.Run("one of three rounds down", func(t *testing.T) {
		crs, items := createPublishedCourse(t, db, "Biology", 3)
		enrollStudent(t, db, student.ID, crs.ID)
		completeItem(t, svc, student.ID, &items[0])

		summary, err := svc.CourseProgress(student.ID, crs.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(33), summary.Percent)
	})

	t.Run("two of three rounds up", func(t *testing.T) {
		crs, items := createPublishedCourse(t, db, "Chemistry", 3)
		enrollStudent(t, db, student.ID, crs.ID)
		completeItem(t, svc, student.ID, &items[0])
		completeItem(t, svc, student.ID, &items[1])

		summary, err := svc.CourseProgress(student.ID, crs.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(67), summary.Percent)
	})

	t.Run("no published content reads zero", func(t *testing.T) {
		crs, _ := createPublishedCourse(t, db, "Empty Course", 0)
		enrollStudent(t, db, student.ID, crs.ID)

		summary, err := svc.CourseProgress(student.ID, crs.ID)
		require.NoError(t, err)
		assert.Zero(t, summary.TotalItems)
		assert.Zero(t, summary.Percent)
	})
}

func TestCourseProgressCapsAtHundred(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db, 100)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")

	crs, items := createPublishedCourse(t, db, "History", 2)
	enrollStudent(t, db, student.ID, crs.ID)
	completeItem(t, svc, student.ID, &items[0])
	completeItem(t, svc, student.ID, &items[1])

	// Unpublishing an already completed item leaves more completions than
	// published items
	err := db.Model(&course.ContentItem{}).Where("id = ?", items[1].ID).
		Update("is_published", false).Error
	require.NoError(t, err)

	summary, err := svc.CourseProgress(student.ID, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.CompletedItems)
	assert.Equal(t, 1, summary.TotalItems)
	assert.Equal(t, float64(100), summary.Percent)
}

func TestSyncEnrollmentCompletionTrigger(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db, 100)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, items := createPublishedCourse(t, db, "Algebra", 2)
	enrollStudent(t, db, student.ID, crs.ID)

	// Halfway: in progress, no completion stamp
	completeItem(t, svc, student.ID, &items[0])
	enrollment, err := svc.SyncEnrollment(student.ID, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50), enrollment.Progress)
	assert.Equal(t, course.StatusInProgress, enrollment.Status)
	assert.False(t, enrollment.Completed)
	assert.Nil(t, enrollment.CompletedAt)
	assert.Equal(t, 2, enrollment.Version)

	// Done: the trigger fires
	completeItem(t, svc, student.ID, &items[1])
	enrollment, err = svc.SyncEnrollment(student.ID, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), enrollment.Progress)
	assert.Equal(t, course.StatusCompleted, enrollment.Status)
	assert.True(t, enrollment.Completed)
	require.NotNil(t, enrollment.CompletedAt)
	assert.Equal(t, 3, enrollment.Version)
	assert.Equal(t, int64(1), countNotifications(t, db, student.ID, models.NotificationCompletion))

	// Re-syncing keeps the original stamp and does not notify again
	stamp := *enrollment.CompletedAt
	time.Sleep(20 * time.Millisecond)

	enrollment, err = svc.SyncEnrollment(student.ID, crs.ID)
	require.NoError(t, err)
	assert.True(t, enrollment.Completed)
	require.NotNil(t, enrollment.CompletedAt)
	assert.True(t, stamp.Equal(*enrollment.CompletedAt), "completion stamp must be written exactly once")
	assert.Equal(t, 4, enrollment.Version)
	assert.Equal(t, int64(1), countNotifications(t, db, student.ID, models.NotificationCompletion))
}

func TestSyncEnrollmentThresholdConfigurable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db, 50)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, items := createPublishedCourse(t, db, "Algebra", 2)
	enrollStudent(t, db, student.ID, crs.ID)

	completeItem(t, svc, student.ID, &items[0])

	enrollment, err := svc.SyncEnrollment(student.ID, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50), enrollment.Progress)
	assert.True(t, enrollment.Completed)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestSyncEnrollmentNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db, 100)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")

	_, err := svc.SyncEnrollment(student.ID, 999)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestRecordContentProgressUpsert(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db, 100)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, items := createPublishedCourse(t, db, "Algebra", 1)
	enrollStudent(t, db, student.ID, crs.ID)

	countRows := func() int64 {
		var count int64
		db.Model(&course.ContentProgress{}).
			Where("user_id = ? AND content_item_id = ?", student.ID, items[0].ID).
			Count(&count)
		return count
	}

	record, err := svc.RecordContentProgress(student.ID, &items[0], ContentProgressInput{CompletionPct: 40, TimeSpentSeconds: 120})
	require.NoError(t, err)
	assert.Equal(t, float64(40), record.CompletionPct)
	assert.False(t, record.Completed)
	assert.Equal(t, int64(1), countRows())

	// Repeating the same report changes nothing and adds no row
	record, err = svc.RecordContentProgress(student.ID, &items[0], ContentProgressInput{CompletionPct: 40, TimeSpentSeconds: 120})
	require.NoError(t, err)
	assert.Equal(t, float64(40), record.CompletionPct)
	assert.Equal(t, int64(1), countRows())

	record, err = svc.RecordContentProgress(student.ID, &items[0], ContentProgressInput{CompletionPct: 100})
	require.NoError(t, err)
	assert.True(t, record.Completed)
	assert.Equal(t, float64(100), record.CompletionPct)

	// A later lower report never un-completes the item
	record, err = svc.RecordContentProgress(student.ID, &items[0], ContentProgressInput{CompletionPct: 30})
	require.NoError(t, err)
	assert.True(t, record.Completed)
	assert.Equal(t, int64(1), countRows())
}

func TestRecordContentProgressClampsPercent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db, 100)
	student := createStudent(t, db, "Asha Verma", "asha@example.com")
	crs, items := createPublishedCourse(t, db, "Algebra", 2)
	enrollStudent(t, db, student.ID, crs.ID)

	record, err := svc.RecordContentProgress(student.ID, &items[0], ContentProgressInput{CompletionPct: -10})
	require.NoError(t, err)
	assert.Equal(t, float64(0), record.CompletionPct)
	assert.False(t, record.Completed)

	record, err = svc.RecordContentProgress(student.ID, &items[1], ContentProgressInput{CompletionPct: 150})
	require.NoError(t, err)
	assert.Equal(t, float64(100), record.CompletionPct)
	assert.True(t, record.Completed)
}
