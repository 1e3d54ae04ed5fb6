package controller

import (
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "flash"

// PagesController 服务端渲染页面：首页、课程详情、报名、我的课程、注册/登录/档案
type PagesController struct {
	AuthService       *service.AuthService
	UserService       *service.UserService
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
	Cfg               *config.Config
}

func NewPagesController(
	authService *service.AuthService,
	userService *service.UserService,
	courseService *service.CourseService,
	enrollmentService *service.EnrollmentService,
	cfg *config.Config,
) *PagesController {
	return &PagesController{
		AuthService:       authService,
		UserService:       userService,
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
		Cfg:               cfg,
	}
}

// setFlash 一次性提示消息，重定向后由下一个页面弹出。
// gin 的 SetCookie/Cookie 自带 URL 转义，这里直接存明文
func setFlash(ctx *gin.Context, message string) {
	ctx.SetCookie(flashCookieName, message, 60, "/", "", false, true)
}

func popFlash(ctx *gin.Context) string {
	message, err := ctx.Cookie(flashCookieName)
	if err != nil || message == "" {
		return ""
	}
	ctx.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	return message
}

func (c *PagesController) viewer(ctx *gin.Context) *util.Claims {
	return util.GetUserFromContext(ctx)
}

// Home 首页：已发布课程
func (c *PagesController) Home(ctx *gin.Context) {
	courses, err := c.CourseService.PublishedCourses(50)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	ctx.HTML(http.StatusOK, "home.html", gin.H{
		"Title":   "Courses",
		"Courses": courses,
		"Viewer":  c.viewer(ctx),
		"Flash":   popFlash(ctx),
	})
}

// CourseDetail 课程详情页：聚合评分/时长/报名数与 viewer 状态
func (c *PagesController) CourseDetail(ctx *gin.Context) {
	var viewerID uint
	claims := c.viewer(ctx)
	if claims != nil {
		viewerID = claims.UserID
	}

	detail, err := c.CourseService.GetDetailBySlug(ctx.Param("slug"), viewerID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			ctx.String(http.StatusNotFound, "course not found")
		} else {
			ctx.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	ctx.HTML(http.StatusOK, "course_detail.html", gin.H{
		"Title":  detail.Course.Title,
		"Detail": detail,
		"Viewer": claims,
		"Flash":  popFlash(ctx),
	})
}

// Enroll 报名动作（仅 POST）。讲师报名自己的课程时带警告重定向回详情页。
func (c *PagesController) Enroll(ctx *gin.Context) {
	claims := c.viewer(ctx)
	if claims == nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	slug := ctx.Param("slug")
	_, created, err := c.EnrollmentService.EnrollBySlug(claims.UserID, slug)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			ctx.String(http.StatusNotFound, "course not found")
			return
		case errors.Is(err, util.ErrOwnCourseEnrollment):
			// 业务规则拒绝：正常结果而非故障，回到详情页提示
			monitoring.EnrollmentCounter.WithLabelValues("rejected").Inc()
			setFlash(ctx, "You are the instructor of this course and cannot enroll.")
			ctx.Redirect(http.StatusFound, "/courses/"+slug)
			return
		default:
			ctx.String(http.StatusInternalServerError, "internal error")
			return
		}
	}

	if created {
		monitoring.EnrollmentCounter.WithLabelValues("created").Inc()
		setFlash(ctx, "Enrolled!")
	} else {
		monitoring.EnrollmentCounter.WithLabelValues("duplicate").Inc()
		setFlash(ctx, "You are already enrolled in this course.")
	}
	ctx.Redirect(http.StatusFound, "/courses/"+slug)
}

// MyCourses 我的课程页
func (c *PagesController) MyCourses(ctx *gin.Context) {
	claims := c.viewer(ctx)
	if claims == nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	items, err := c.EnrollmentService.MyCourses(claims.UserID)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	ctx.HTML(http.StatusOK, "my_courses.html", gin.H{
		"Title":  "My Courses",
		"Items":  items,
		"Viewer": claims,
		"Flash":  popFlash(ctx),
	})
}

func (c *PagesController) RegisterForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", gin.H{
		"Title": "Register",
		"Flash": popFlash(ctx),
	})
}

// Register 注册表单提交
func (c *PagesController) Register(ctx *gin.Context) {
	username := ctx.PostForm("username")
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")

	if username == "" || email == "" || len(password) < 8 {
		setFlash(ctx, "Username, email and a password of at least 8 characters are required.")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.Student,
	}
	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrUsernameTaken) || errors.Is(err, util.ErrEmailRegistered) {
			setFlash(ctx, err.Error())
			ctx.Redirect(http.StatusFound, "/register")
			return
		}
		ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	setFlash(ctx, "Account created, please log in.")
	ctx.Redirect(http.StatusFound, "/login")
}

func (c *PagesController) LoginForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{
		"Title":         "Log in",
		"Flash":         popFlash(ctx),
		"OAuthEnabled":  c.Cfg.OAuth.Enabled,
		"OAuthProvider": c.Cfg.OAuth.ProviderName,
		"OAuthURL":      c.Cfg.OAuth.AuthorizeURL,
	})
}

// Login 登录表单提交，成功后写入 JWT Cookie
func (c *PagesController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	token, _, err := c.AuthService.Login(username, password)
	if err != nil {
		setFlash(ctx, "Invalid username or password.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	maxAge := int(c.Cfg.JWT.ExpireTime.Seconds())
	secure := c.Cfg.Server.Mode == "release"
	ctx.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", secure, true)
	ctx.Redirect(http.StatusFound, "/")
}

func (c *PagesController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/")
}

// Profile 档案页
func (c *PagesController) Profile(ctx *gin.Context) {
	claims := c.viewer(ctx)
	if claims == nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	profile, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	ctx.HTML(http.StatusOK, "profile.html", gin.H{
		"Title":   "Profile",
		"Profile": profile,
		"Viewer":  claims,
		"Flash":   popFlash(ctx),
	})
}

// UpdateProfile 档案表单提交
func (c *PagesController) UpdateProfile(ctx *gin.Context) {
	claims := c.viewer(ctx)
	if claims == nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	bio := ctx.PostForm("bio")
	firstName := ctx.PostForm("first_name")
	lastName := ctx.PostForm("last_name")

	_, err := c.UserService.UpdateProfile(claims.UserID, service.ProfileUpdate{
		Bio:       &bio,
		FirstName: &firstName,
		LastName:  &lastName,
	})
	if err != nil {
		ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	setFlash(ctx, "Profile updated.")
	ctx.Redirect(http.StatusFound, "/profile")
}
