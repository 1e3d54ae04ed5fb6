package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewDefaultsToActor(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)
	student := env.createUser(t, "student", model.Student)

	course, err := env.course.CreateCourse(CourseInput{Title: "Intro"}, instructor.ID)
	require.NoError(t, err)

	review, err := env.review.CreateReview(ReviewInput{
		CourseID: course.ID,
		Rating:   4,
		Comment:  "solid",
	}, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, review.UserID)
	assert.Equal(t, "student", review.User.Username)
}

func TestSecondReviewFromSameUserRejected(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)
	student := env.createUser(t, "student", model.Student)

	course, err := env.course.CreateCourse(CourseInput{Title: "Intro"}, instructor.ID)
	require.NoError(t, err)

	_, err = env.review.CreateReview(ReviewInput{CourseID: course.ID, Rating: 4}, student.ID)
	require.NoError(t, err)

	_, err = env.review.CreateReview(ReviewInput{CourseID: course.ID, Rating: 5}, student.ID)
	assert.ErrorIs(t, err, util.ErrDuplicateReview)

	var count int64
	require.NoError(t, env.db.Model(&model.Review{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReviewOnMissingCourse(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "student", model.Student)

	_, err := env.review.CreateReview(ReviewInput{CourseID: 999, Rating: 4}, student.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUpdateReviewRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)
	student := env.createUser(t, "student", model.Student)

	course, err := env.course.CreateCourse(CourseInput{Title: "Intro"}, instructor.ID)
	require.NoError(t, err)

	review, err := env.review.CreateReview(ReviewInput{CourseID: course.ID, Rating: 4}, student.ID)
	require.NoError(t, err)

	bad := 6
	_, err = env.review.UpdateReview(review.ID, ReviewUpdate{Rating: &bad})
	assert.ErrorIs(t, err, util.ErrInvalidRating)

	good := 2
	updated, err := env.review.UpdateReview(review.ID, ReviewUpdate{Rating: &good})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
}

func TestReReviewAfterDeletion(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teacher", model.Instructor)
	student := env.createUser(t, "student", model.Student)

	course, err := env.course.CreateCourse(CourseInput{Title: "Intro"}, instructor.ID)
	require.NoError(t, err)

	first, err := env.review.CreateReview(ReviewInput{CourseID: course.ID, Rating: 2, Comment: "meh"}, student.ID)
	require.NoError(t, err)

	require.NoError(t, env.review.DeleteReview(first.ID))

	second, err := env.review.CreateReview(ReviewInput{CourseID: course.ID, Rating: 5, Comment: "much better now"}, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Rating)

	var count int64
	require.NoError(t, env.db.Model(&model.Review{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
