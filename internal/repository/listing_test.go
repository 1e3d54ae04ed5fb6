package repository

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourses(t *testing.T, repo *CourseRepository, instructorID uint) {
	t.Helper()
	courses := []model.Course{
		{Title: "Go Basics", Slug: "go-basics", ShortDescription: "Learn Go from scratch", Price: 10, Difficulty: model.Beginner, IsPublished: true, InstructorID: instructorID},
		{Title: "Advanced Go", Slug: "advanced-go", ShortDescription: "Concurrency and internals", Price: 30, Difficulty: model.Advanced, IsPublished: true, InstructorID: instructorID},
		{Title: "SQL Fundamentals", Slug: "sql-fundamentals", ShortDescription: "Databases for beginners", Price: 20, Difficulty: model.Beginner, IsPublished: false, InstructorID: instructorID},
	}
	for i := range courses {
		require.NoError(t, repo.Create(&courses[i]))
	}
}

func TestListFilterWhitelist(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	seedCourses(t, repo, instructor.ID)

	courses, total, err := repo.List(ListOptions{
		Filters: map[string]string{"difficulty": "beginner"},
		Page:    1,
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, courses, 2)

	// 未声明的过滤参数被忽略，不影响结果
	courses, total, err = repo.List(ListOptions{
		Filters: map[string]string{"password": "x", "difficulty": "advanced"},
		Page:    1,
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Advanced Go", courses[0].Title)
}

func TestListSearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	seedCourses(t, repo, instructor.ID)

	_, total, err := repo.List(ListOptions{Search: "beginners", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// 搜索命中 title 或描述任一列
	_, total, err = repo.List(ListOptions{Search: "Go", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	seedCourses(t, repo, instructor.ID)

	courses, _, err := repo.List(ListOptions{Ordering: "price", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, float64(10), courses[0].Price)
	assert.Equal(t, float64(30), courses[2].Price)

	courses, _, err = repo.List(ListOptions{Ordering: "-price", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, float64(30), courses[0].Price)

	// 未声明的排序键退回默认排序，不报错
	_, _, err = repo.List(ListOptions{Ordering: "password", Page: 1, Limit: 10})
	require.NoError(t, err)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	instructor := createUser(t, db, "teacher", model.Instructor)
	seedCourses(t, repo, instructor.ID)

	courses, total, err := repo.List(ListOptions{Ordering: "price", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, courses, 1)
	assert.Equal(t, float64(30), courses[0].Price)
}
