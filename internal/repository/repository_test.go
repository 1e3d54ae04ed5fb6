package repository

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, instructorID uint, title, slug string) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:        title,
		Slug:         slug,
		InstructorID: instructorID,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func createLesson(t *testing.T, db *gorm.DB, courseID uint, order, duration int) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		CourseID:        courseID,
		Title:           fmt.Sprintf("Lesson %d", order),
		Order:           order,
		DurationMinutes: duration,
		IsPublished:     true,
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}
