package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/models/course"
	"lms/routers/gradingRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:              "test-secret",
		CompletionThreshold: 100,
		QuizPassPct:         70,
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&course.Course{},
		&course.Enrollment{},
		&course.Assignment{},
		&course.AssignmentSubmission{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	gradingRoutes.SetupGradingRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) (*models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("Failed to mint token: %v", err)
	}
	return &user, token
}

func seedAssignment(t *testing.T, db *gorm.DB, studentID uint, points float64) *course.Assignment {
	t.Helper()

	crs := course.Course{Title: "Algebra", Status: "ACTIVE", IsPublished: true}
	if err := db.Create(&crs).Error; err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	assignment := course.Assignment{CourseID: crs.ID, Title: "Problem Set", Points: points, IsPublished: true}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("Failed to create assignment: %v", err)
	}
	enrollment := course.Enrollment{UserID: studentID, CourseID: crs.ID, Status: course.StatusEnrolled, Version: 1}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("Failed to create enrollment: %v", err)
	}
	return &assignment
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, target, err)
	}
	return resp
}

func TestSubmissionAndGradingFlow(t *testing.T) {
	app, db := setupApp(t)
	student, studentToken := createUser(t, db, "Asha Verma", "asha@example.com", "STUDENT")
	_, teacherToken := createUser(t, db, "Teacher Rao", "rao@example.com", "TEACHER")
	assignment := seedAssignment(t, db, student.ID, 10)

	resp := doRequest(t, app, fiber.MethodPost,
		fmt.Sprintf("/assignment/%d/draft", assignment.ID), studentToken,
		fiber.Map{"content": "My essay"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPost,
		fmt.Sprintf("/assignment/%d/submit", assignment.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var submission course.AssignmentSubmission
	require.NoError(t, db.Where("assignment_id = ? AND user_id = ?", assignment.ID, student.ID).First(&submission).Error)
	assert.Equal(t, course.SubmissionSubmitted, submission.Status)
	assert.NotNil(t, submission.SubmittedAt)

	resp = doRequest(t, app, fiber.MethodPost,
		fmt.Sprintf("/grading/submission/%d", submission.ID), teacherToken,
		fiber.Map{"grade": 8, "feedback": "Solid work"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&submission, submission.ID).Error)
	assert.Equal(t, course.SubmissionGraded, submission.Status)
	require.NotNil(t, submission.Grade)
	assert.Equal(t, float64(8), *submission.Grade)
	assert.Equal(t, "Solid work", submission.Feedback)

	var notifications int64
	db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", student.ID, models.NotificationGrade).Count(&notifications)
	assert.Equal(t, int64(1), notifications)
}

func TestGradingRequiresTeacherRole(t *testing.T) {
	app, db := setupApp(t)
	_, studentToken := createUser(t, db, "Asha Verma", "asha@example.com", "STUDENT")

	resp := doRequest(t, app, fiber.MethodPost, "/grading/submission/1", studentToken, fiber.Map{"grade": 5})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGradingRequiresToken(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, fiber.MethodPost, "/grading/submission/1", "", fiber.Map{"grade": 5})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGradeValidationRejectsNegative(t *testing.T) {
	app, db := setupApp(t)
	_, teacherToken := createUser(t, db, "Teacher Rao", "rao@example.com", "TEACHER")

	resp := doRequest(t, app, fiber.MethodPost, "/grading/submission/1", teacherToken, fiber.Map{"grade": -2})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Status  bool              `json:"status"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Status)
	assert.Equal(t, "Validation failed!", body.Message)
	assert.Contains(t, body.Data, "grade")
}

func TestGradeAboveCeilingReturnsValidationError(t *testing.T) {
	app, db := setupApp(t)
	student, _ := createUser(t, db, "Asha Verma", "asha@example.com", "STUDENT")
	_, teacherToken := createUser(t, db, "Teacher Rao", "rao@example.com", "TEACHER")
	assignment := seedAssignment(t, db, student.ID, 10)

	submission := course.AssignmentSubmission{
		AssignmentID: assignment.ID,
		UserID:       student.ID,
		CourseID:     assignment.CourseID,
		Content:      "My essay",
		Status:       course.SubmissionSubmitted,
	}
	require.NoError(t, db.Create(&submission).Error)

	resp := doRequest(t, app, fiber.MethodPost,
		fmt.Sprintf("/grading/submission/%d", submission.ID), teacherToken,
		fiber.Map{"grade": 50})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// The rejected grade leaves the row untouched
	var reloaded course.AssignmentSubmission
	require.NoError(t, db.First(&reloaded, submission.ID).Error)
	assert.Equal(t, course.SubmissionSubmitted, reloaded.Status)
	assert.Nil(t, reloaded.Grade)
}
