package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPagesServer(t *testing.T) (*testServer, *gin.Engine) {
	t.Helper()
	s := newTestServer(t)

	pages := NewPagesController(s.auth, nil, s.course, s.enrollment, s.cfg)
	router := gin.New()
	group := router.Group("/")
	group.Use(middleware.TryAuthMiddleware(s.cfg))
	{
		group.POST("/courses/:slug/enroll", pages.Enroll)
		group.GET("/logout", pages.Logout)
	}
	return s, router
}

func flashMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			message, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return message
		}
	}
	return ""
}

func TestEnrollPageRedirectsAnonymousToLogin(t *testing.T) {
	_, router := newPagesServer(t)

	req := httptest.NewRequest(http.MethodPost, "/courses/intro/enroll", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestEnrollPageSetsFlash(t *testing.T) {
	s, router := newPagesServer(t)
	instructor, _ := s.createUser(t, "teacher", model.Instructor)
	_, token := s.createUser(t, "student", model.Student)
	s.createCourse(t, instructor.ID, "Intro")

	enroll := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/courses/intro/enroll", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := enroll()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/courses/intro", w.Header().Get("Location"))
	assert.Equal(t, "Enrolled!", flashMessage(t, w))

	// 再次报名不是错误，提示已报名
	w = enroll()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, flashMessage(t, w), "already enrolled")
}

func TestEnrollPageInstructorWarning(t *testing.T) {
	s, router := newPagesServer(t)
	instructor, token := s.createUser(t, "teacher", model.Instructor)
	s.createCourse(t, instructor.ID, "Intro")

	req := httptest.NewRequest(http.MethodPost, "/courses/intro/enroll", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 讲师报名自己的课程：重定向回详情页并提示，而不是报错
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/courses/intro", w.Header().Get("Location"))
	assert.Contains(t, flashMessage(t, w), "instructor")
}

func TestLogoutClearsCookie(t *testing.T) {
	s, router := newPagesServer(t)
	_, token := s.createUser(t, "student", model.Student)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AuthCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestFlashRoundTrip(t *testing.T) {
	router := gin.New()
	router.GET("/set", func(c *gin.Context) {
		setFlash(c, "You are already enrolled in this course.")
		c.Status(http.StatusOK)
	})
	router.GET("/read", func(c *gin.Context) {
		c.String(http.StatusOK, popFlash(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 标点和空格原样回来，不会被二次转义
	assert.Equal(t, "You are already enrolled in this course.", w.Body.String())
}

func TestHomePageRendersTitle(t *testing.T) {
	s := newTestServer(t)
	pages := NewPagesController(s.auth, nil, s.course, s.enrollment, s.cfg)

	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.html")
	router.GET("/", pages.Home)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Courses | LMS</title>")
}
