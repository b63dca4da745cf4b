package main

import (
	"encoding/csv"
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"log"
	"os"
	"strconv"
	"strings"
)

// Seeds courses and their content items from a denormalized CSV export.
// Each row carries the course columns plus one content item; rows with an
// empty contentTitle only upsert the course.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("Courses.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	coursesCreated := 0
	coursesUpdated := 0
	contentsCreated := 0
	contentsUpdated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		courseTitle := getField(row, headerIndex, "courseTitle")
		if courseTitle == "" {
			skipped++
			continue
		}

		course := courseModels.Course{
			Title:        courseTitle,
			Description:  getField(row, headerIndex, "courseDescription"),
			Category:     getField(row, headerIndex, "category"),
			Level:        strings.ToUpper(getField(row, headerIndex, "level")),
			Duration:     int64(parseInt(getField(row, headerIndex, "duration"))),
			ThumbnailURL: getField(row, headerIndex, "thumbnailUrl"),
			Status:       "DRAFT",
			IsDeleted:    false,
		}
		if course.Level == "" {
			course.Level = "BEGINNER"
		}

		// Upsert course by title
		var existingCourse courseModels.Course
		result := database.Database.Db.Where("title = ? AND is_deleted = ?", course.Title, false).First(&existingCourse)

		if result.Error != nil {
			if err := database.Database.Db.Create(&course).Error; err != nil {
				log.Printf("Error inserting course %s: %v", course.Title, err)
				continue
			}
			existingCourse = course
			coursesCreated++
		} else {
			existingCourse.Description = course.Description
			existingCourse.Category = course.Category
			existingCourse.Level = course.Level
			existingCourse.Duration = course.Duration
			existingCourse.ThumbnailURL = course.ThumbnailURL

			if err := database.Database.Db.Save(&existingCourse).Error; err != nil {
				log.Printf("Error updating course %s: %v", course.Title, err)
				continue
			}
			coursesUpdated++
		}

		contentTitle := getField(row, headerIndex, "contentTitle")
		if contentTitle == "" {
			continue
		}

		contentType := strings.ToUpper(getField(row, headerIndex, "contentType"))
		if contentType == "" {
			contentType = courseModels.ContentArticle
		}

		content := courseModels.ContentItem{
			CourseID:        existingCourse.ID,
			Title:           contentTitle,
			Description:     getField(row, headerIndex, "contentDescription"),
			ContentType:     contentType,
			Body:            getField(row, headerIndex, "contentBody"),
			MediaURL:        getField(row, headerIndex, "mediaUrl"),
			DurationMinutes: parseInt(getField(row, headerIndex, "durationMinutes")),
			OrderIndex:      parseInt(getField(row, headerIndex, "orderIndex")),
			IsDeleted:       false,
		}

		// Upsert content by course and title
		var existingContent courseModels.ContentItem
		result = database.Database.Db.Where("course_id = ? AND title = ? AND is_deleted = ?", existingCourse.ID, content.Title, false).First(&existingContent)

		if result.Error != nil {
			if err := database.Database.Db.Create(&content).Error; err != nil {
				log.Printf("Error inserting content %s (course=%s): %v", content.Title, course.Title, err)
				continue
			}
			contentsCreated++
		} else {
			existingContent.Description = content.Description
			existingContent.ContentType = content.ContentType
			existingContent.Body = content.Body
			existingContent.MediaURL = content.MediaURL
			existingContent.DurationMinutes = content.DurationMinutes
			existingContent.OrderIndex = content.OrderIndex

			if err := database.Database.Db.Save(&existingContent).Error; err != nil {
				log.Printf("Error updating content %s (course=%s): %v", content.Title, course.Title, err)
				continue
			}
			contentsUpdated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Courses created: %d", coursesCreated)
	log.Printf("Courses updated: %d", coursesUpdated)
	log.Printf("Contents created: %d", contentsCreated)
	log.Printf("Contents updated: %d", contentsUpdated)
	log.Printf("Skipped: %d", skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseInt converts string to int
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return val
}
