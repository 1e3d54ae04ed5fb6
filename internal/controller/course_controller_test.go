package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) createCourse(t *testing.T, instructorID uint, title string) *model.Course {
	t.Helper()
	course, err := s.course.CreateCourse(service.CourseInput{
		Title:       title,
		IsPublished: true,
	}, instructorID)
	require.NoError(t, err)
	return course
}

func TestAjaxCoursesRequiresHeader(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/api/ajax/courses", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAjaxCoursesWithHeader(t *testing.T) {
	s := newTestServer(t)
	instructor, _ := s.createUser(t, "teacher", model.Instructor)
	s.createCourse(t, instructor.ID, "Visible")

	req := httptest.NewRequest(http.MethodGet, "/api/ajax/courses", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	courses, ok := body["courses"].([]interface{})
	require.True(t, ok)
	assert.Len(t, courses, 1)
}

func TestCourseDetailNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/api/courses/slug/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseDetailViewerState(t *testing.T) {
	s := newTestServer(t)
	instructor, _ := s.createUser(t, "teacher", model.Instructor)
	student, token := s.createUser(t, "student", model.Student)
	course := s.createCourse(t, instructor.ID, "Intro")

	_, _, err := s.enrollment.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// 匿名访问看不到报名状态
	w := s.request(t, http.MethodGet, "/api/courses/slug/intro", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["isEnrolled"])

	// 已报名学员带令牌访问
	w = s.request(t, http.MethodGet, "/api/courses/slug/intro", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["isEnrolled"])
	assert.Equal(t, false, data["isInstructor"])
}

func TestCourseListFilterAndPagination(t *testing.T) {
	s := newTestServer(t)
	instructor, _ := s.createUser(t, "teacher", model.Instructor)
	s.createCourse(t, instructor.ID, "First")
	s.createCourse(t, instructor.ID, "Second")

	w := s.request(t, http.MethodGet, "/api/courses?limit=1&page=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Len(t, data["list"].([]interface{}), 1)
}

func TestAnyAuthenticatedUserCanCreateCourse(t *testing.T) {
	s := newTestServer(t)
	student, token := s.createUser(t, "student", model.Student)

	w := s.request(t, http.MethodPost, "/api/courses", token, map[string]interface{}{
		"title": "Student Workshop",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "student-workshop", data["slug"])
	// 未指定 instructorId 时归属为调用者本人
	assert.Equal(t, float64(student.ID), data["instructorId"])

	w = s.request(t, http.MethodPost, "/api/courses", "", map[string]interface{}{
		"title": "Anonymous Workshop",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
