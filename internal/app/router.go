package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 服务端渲染页面
	a.registerPageRoutes(router, c, repos)

	// 2. 公共 API(无需登录，登录用户可见个性化状态)
	a.registerPublicRoutes(router, c, repos)

	// 3. 需要授权的 API
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerAuthorizedRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

// 页面允许游客访问，登录态从 Cookie 读取
func (a *App) registerPageRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	pages := router.Group("/")
	pages.Use(middleware.TryAuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	{
		pages.GET("/", c.pages.Home)
		pages.GET("/courses/:slug", c.pages.CourseDetail)
		pages.POST("/courses/:slug/enroll", c.pages.Enroll)
		pages.GET("/my-courses", c.pages.MyCourses)
		pages.GET("/register", c.pages.RegisterForm)
		pages.POST("/register", c.pages.Register)
		pages.GET("/login", c.pages.LoginForm)
		pages.POST("/login", c.pages.Login)
		pages.GET("/logout", c.pages.Logout)
		pages.GET("/profile", c.pages.Profile)
		pages.POST("/profile", c.pages.UpdateProfile)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/courses", c.course.List)
		public.GET("/courses/:id", c.course.Get)
		public.GET("/courses/slug/:slug", c.course.Detail)
		public.GET("/ajax/courses", c.course.AjaxList)

		public.GET("/categories", c.category.List)
		public.GET("/categories/:id", c.category.Get)

		public.GET("/lessons", c.lesson.List)
		public.GET("/lessons/:id", c.lesson.Get)

		public.GET("/reviews", c.review.List)
		public.GET("/reviews/:id", c.review.Get)
	}
}

func (a *App) registerAuthorizedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.GET("/my-courses", c.enrollment.MyCourses)

	rg.GET("/profiles", c.user.ListProfiles)
	rg.GET("/profiles/me", c.user.MyProfile)
	rg.PATCH("/profiles/me", c.user.UpdateMyProfile)
	rg.GET("/profiles/:id", c.user.GetProfile)

	rg.GET("/enrollments", c.enrollment.List)
	rg.POST("/enrollments", c.enrollment.Create)
	rg.GET("/enrollments/:id", c.enrollment.Get)
	rg.PATCH("/enrollments/:id", c.enrollment.Update)
	rg.DELETE("/enrollments/:id", c.enrollment.Delete)

	rg.POST("/reviews", c.review.Create)
	rg.PATCH("/reviews/:id", c.review.Update)
	rg.DELETE("/reviews/:id", c.review.Delete)

	rg.GET("/lesson-progress", c.progress.List)
	rg.POST("/lesson-progress", c.progress.Create)
	rg.GET("/lesson-progress/:id", c.progress.Get)
	rg.PATCH("/lesson-progress/:id", c.progress.Update)
	rg.DELETE("/lesson-progress/:id", c.progress.Delete)

	// 课程与课时写接口对所有已登录用户开放，归属由调用者身份兜底
	rg.POST("/courses", c.course.Create)
	rg.PATCH("/courses/:id", c.course.Update)
	rg.DELETE("/courses/:id", c.course.Delete)
	rg.POST("/courses/:id/cover", c.course.UploadCover)

	rg.POST("/lessons", c.lesson.Create)
	rg.PATCH("/lessons/:id", c.lesson.Update)
	rg.DELETE("/lessons/:id", c.lesson.Delete)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.GET("/users/:id", c.user.Get)
	}
}
