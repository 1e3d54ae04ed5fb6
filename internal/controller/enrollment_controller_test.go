package controller

import (
	"lms_backend/internal/model"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentCreateRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodPost, "/api/enrollments", "", map[string]interface{}{"courseId": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEnrollmentCreateAndConflict(t *testing.T) {
	s := newTestServer(t)
	instructor, _ := s.createUser(t, "teacher", model.Instructor)
	_, token := s.createUser(t, "student", model.Student)
	course := s.createCourse(t, instructor.ID, "Intro")

	body := map[string]interface{}{"courseId": course.ID}

	w := s.request(t, http.MethodPost, "/api/enrollments", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.request(t, http.MethodPost, "/api/enrollments", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEnrollmentCreateMissingCourse(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "student", model.Student)

	w := s.request(t, http.MethodPost, "/api/enrollments", token, map[string]interface{}{"courseId": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyCoursesEndpoint(t *testing.T) {
	s := newTestServer(t)
	instructor, _ := s.createUser(t, "teacher", model.Instructor)
	student, token := s.createUser(t, "student", model.Student)
	course := s.createCourse(t, instructor.ID, "Intro")

	_, _, err := s.enrollment.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	w := s.request(t, http.MethodGet, "/api/my-courses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	item := data[0].(map[string]interface{})
	enrollment := item["enrollment"].(map[string]interface{})
	assert.Equal(t, float64(course.ID), enrollment["courseId"])
}

func TestReviewCreateConflict(t *testing.T) {
	s := newTestServer(t)
	instructor, _ := s.createUser(t, "teacher", model.Instructor)
	_, token := s.createUser(t, "student", model.Student)
	course := s.createCourse(t, instructor.ID, "Intro")

	body := map[string]interface{}{"courseId": course.ID, "rating": 4, "comment": "nice"}

	w := s.request(t, http.MethodPost, "/api/reviews", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.request(t, http.MethodPost, "/api/reviews", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterConflict(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", model.Student)

	w := s.request(t, http.MethodPost, "/api/register", "", map[string]interface{}{
		"username": "alice",
		"email":    "new@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "alice", model.Student)

	w := s.request(t, http.MethodPost, "/api/login", "", map[string]interface{}{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)

	w = s.request(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "alice", me["username"])
}
