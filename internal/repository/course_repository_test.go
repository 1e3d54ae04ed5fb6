package repository

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatsWithoutReviews(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	course := createCourse(t, db, instructor.ID, "Empty Course", "empty-course")

	stats, err := repo.Stats(course.ID)
	require.NoError(t, err)
	assert.Nil(t, stats.AverageRating)
	assert.Equal(t, int64(0), stats.ReviewCount)
	assert.Equal(t, int64(0), stats.EnrollmentCount)
	assert.Equal(t, int64(0), stats.LessonCount)
	assert.Equal(t, int64(0), stats.TotalDuration)
}

func TestStatsAggregation(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	course := createCourse(t, db, instructor.ID, "Rated Course", "rated-course")

	createLesson(t, db, course.ID, 1, 30)
	createLesson(t, db, course.ID, 2, 45)

	for i, rating := range []int{3, 5} {
		student := createUser(t, db, []string{"alice", "bob"}[i], model.Student)
		require.NoError(t, db.Create(&model.Review{
			CourseID: course.ID,
			UserID:   student.ID,
			Rating:   rating,
		}).Error)
		require.NoError(t, db.Create(&model.Enrollment{
			UserID:   student.ID,
			CourseID: course.ID,
		}).Error)
	}

	stats, err := repo.Stats(course.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.AverageRating)
	assert.Equal(t, 4.0, *stats.AverageRating)
	assert.Equal(t, int64(2), stats.ReviewCount)
	assert.Equal(t, int64(2), stats.EnrollmentCount)
	assert.Equal(t, int64(2), stats.LessonCount)
	assert.Equal(t, int64(75), stats.TotalDuration)
}

func TestStatsRatingRoundedToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	course := createCourse(t, db, instructor.ID, "Rounding", "rounding")

	usernames := []string{"u1", "u2", "u3"}
	for i, rating := range []int{5, 4, 4} {
		student := createUser(t, db, usernames[i], model.Student)
		require.NoError(t, db.Create(&model.Review{
			CourseID: course.ID,
			UserID:   student.ID,
			Rating:   rating,
		}).Error)
	}

	stats, err := repo.Stats(course.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.AverageRating)
	// 13/3 = 4.333... 保留一位小数
	assert.Equal(t, 4.3, *stats.AverageRating)
}

func TestCourseCascadeDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	student := createUser(t, db, "student", model.Student)
	course := createCourse(t, db, instructor.ID, "Doomed", "doomed")
	lesson := createLesson(t, db, course.ID, 1, 10)

	require.NoError(t, db.Create(&model.Enrollment{UserID: student.ID, CourseID: course.ID}).Error)
	require.NoError(t, db.Create(&model.Review{UserID: student.ID, CourseID: course.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&model.LessonProgress{StudentID: student.ID, LessonID: lesson.ID}).Error)

	require.NoError(t, repo.Delete(course.ID))

	_, err := repo.FindByID(course.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, m := range []interface{}{
		&model.Lesson{}, &model.Enrollment{}, &model.Review{}, &model.LessonProgress{},
	} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}

func TestFindBySlugLoadsOrderedLessons(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	course := createCourse(t, db, instructor.ID, "Ordered", "ordered")

	createLesson(t, db, course.ID, 3, 10)
	createLesson(t, db, course.ID, 1, 10)
	createLesson(t, db, course.ID, 2, 10)

	found, err := repo.FindBySlug("ordered")
	require.NoError(t, err)
	require.Len(t, found.Lessons, 3)
	assert.Equal(t, 1, found.Lessons[0].Order)
	assert.Equal(t, 2, found.Lessons[1].Order)
	assert.Equal(t, 3, found.Lessons[2].Order)
}

func TestFindPublishedSkipsDrafts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	createCourse(t, db, instructor.ID, "Visible", "visible")

	draft := &model.Course{Title: "Draft", Slug: "draft", InstructorID: instructor.ID, IsPublished: false}
	require.NoError(t, db.Create(draft).Error)

	courses, err := repo.FindPublished(10)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Visible", courses[0].Title)
}
