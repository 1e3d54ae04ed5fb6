package service

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseDerivesSlug(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)

	course, err := env.course.CreateCourse(CourseInput{Title: "Intro"}, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "intro", course.Slug)
	assert.Equal(t, instructor.ID, course.InstructorID)
	assert.Equal(t, model.Beginner, course.Difficulty)
}

func TestCreateCourseSlugDeduplication(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)

	first, err := env.course.CreateCourse(CourseInput{Title: "Go Basics"}, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-basics", first.Slug)

	second, err := env.course.CreateCourse(CourseInput{Title: "Go Basics"}, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-basics-2", second.Slug)

	third, err := env.course.CreateCourse(CourseInput{Title: "Go Basics"}, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-basics-3", third.Slug)
}

func TestCreateCourseExplicitInstructor(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", model.Admin)
	instructor := env.createUser(t, "teacher", model.Instructor)

	course, err := env.course.CreateCourse(CourseInput{
		Title:        "Delegated",
		InstructorID: instructor.ID,
	}, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, instructor.ID, course.InstructorID)
}

func TestCourseDetailAggregation(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)
	alice := env.createUser(t, "alice", model.Student)
	bob := env.createUser(t, "bob", model.Student)

	course, err := env.course.CreateCourse(CourseInput{Title: "Intro", IsPublished: true}, instructor.ID)
	require.NoError(t, err)

	_, err = env.lesson.CreateLesson(LessonInput{CourseID: course.ID, Title: "One", Order: 1, DurationMinutes: 20})
	require.NoError(t, err)
	_, err = env.lesson.CreateLesson(LessonInput{CourseID: course.ID, Title: "Two", Order: 2, DurationMinutes: 40})
	require.NoError(t, err)

	_, _, err = env.enrollment.Enroll(alice.ID, course.ID)
	require.NoError(t, err)

	_, err = env.review.CreateReview(ReviewInput{CourseID: course.ID, Rating: 3}, alice.ID)
	require.NoError(t, err)
	_, err = env.review.CreateReview(ReviewInput{CourseID: course.ID, Rating: 5}, bob.ID)
	require.NoError(t, err)

	// 匿名访问
	detail, err := env.course.GetDetailBySlug("intro", 0)
	require.NoError(t, err)
	require.NotNil(t, detail.Stats.AverageRating)
	assert.Equal(t, 4.0, *detail.Stats.AverageRating)
	assert.Equal(t, int64(2), detail.Stats.ReviewCount)
	assert.Equal(t, int64(1), detail.Stats.EnrollmentCount)
	assert.Equal(t, int64(2), detail.Stats.LessonCount)
	assert.Equal(t, int64(60), detail.Stats.TotalDuration)
	assert.Len(t, detail.Reviews, 2)
	assert.False(t, detail.IsEnrolled)
	assert.False(t, detail.IsInstructor)

	// 已报名学员
	detail, err = env.course.GetDetailBySlug("intro", alice.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsEnrolled)
	assert.False(t, detail.IsInstructor)

	// 讲师本人
	detail, err = env.course.GetDetailBySlug("intro", instructor.ID)
	require.NoError(t, err)
	assert.False(t, detail.IsEnrolled)
	assert.True(t, detail.IsInstructor)
}

func TestCourseDetailNoReviewsNilRating(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)

	_, err := env.course.CreateCourse(CourseInput{Title: "Quiet"}, instructor.ID)
	require.NoError(t, err)

	detail, err := env.course.GetDetailBySlug("quiet", 0)
	require.NoError(t, err)
	assert.Nil(t, detail.Stats.AverageRating)
	assert.Equal(t, int64(0), detail.Stats.ReviewCount)
}

func TestUpdateCoursePartial(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)

	course, err := env.course.CreateCourse(CourseInput{Title: "Before", Price: 10}, instructor.ID)
	require.NoError(t, err)

	published := true
	updated, err := env.course.UpdateCourse(course.ID, CourseUpdate{IsPublished: &published})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
	assert.Equal(t, "Before", updated.Title)
	assert.Equal(t, float64(10), updated.Price)
}

func TestRecreateCourseAfterDeletion(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)

	first, err := env.course.CreateCourse(CourseInput{Title: "Go Basics"}, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-basics", first.Slug)

	require.NoError(t, env.course.DeleteCourse(first.ID))

	second, err := env.course.CreateCourse(CourseInput{Title: "Go Basics"}, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-basics", second.Slug)

	var count int64
	require.NoError(t, env.db.Model(&model.Course{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
