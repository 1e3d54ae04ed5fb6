package controller

import (
	"errors"
	"fmt"
	"lms_backend/internal/config"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseController struct {
	CourseService  *service.CourseService
	StorageService *service.StorageService
	Cfg            *config.Config
}

func NewCourseController(courseService *service.CourseService, storageService *service.StorageService, cfg *config.Config) *CourseController {
	return &CourseController{
		CourseService:  courseService,
		StorageService: storageService,
		Cfg:            cfg,
	}
}

// List godoc
// @Summary 课程列表
// @Description 支持 instructor_id/category_id/difficulty/is_published 过滤、search 模糊搜索、ordering 排序与分页
// @Tags 课程
// @Produce  json
// @Param   search query string false "标题/简介/描述模糊搜索"
// @Param   ordering query string false "排序字段，前缀 - 为降序"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.Course}} "成功"
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	opts := listOptions(ctx, c.Cfg)
	courses, total, err := c.CourseService.ListCourses(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Detail godoc
// @Summary 按 slug 获取课程详情聚合
// @Description 平均评分、课时总时长、报名人数与当前用户的报名/讲师状态
// @Tags 课程
// @Produce  json
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=service.CourseDetail} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/slug/{slug} [get]
func (c *CourseController) Detail(ctx *gin.Context) {
	var viewerID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = claims.UserID
	}

	detail, err := c.CourseService.GetDetailBySlug(ctx.Param("slug"), viewerID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Create godoc
// @Summary 创建课程
// @Description 省略 instructorId 时归属为当前登录用户；slug 省略时由标题派生
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CourseInput true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "slug 冲突"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.CreateCourse(input, claims.UserID)
	if err != nil {
		if isDuplicateErr(err) {
			util.Conflict(ctx, "course slug already exists")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body service.CourseUpdate true "可更新字段"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [patch]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var upd service.CourseUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case isDuplicateErr(err):
			util.Conflict(ctx, "course slug already exists")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Description 级联删除课时、报名、评价与课时进度
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.DeleteCourse(id); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadCover godoc
// @Summary 上传课程封面
// @Tags 课程
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   file formData file true "封面图片"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/cover [post]
func (c *CourseController) UploadCover(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("covers/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	course.CoverURL = url
	if err := c.CourseService.CourseRepo.Update(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"coverUrl": url})
}

// AjaxList 兼容旧版前端的 XMLHttpRequest 接口，返回 {courses: [...]}
// @Summary 旧版 AJAX 课程列表
// @Description 仅接受 X-Requested-With: XMLHttpRequest 的 GET 请求，否则返回 400
// @Tags 课程
// @Produce  json
// @Success 200 {object} object "courses 数组"
// @Failure 400 {object} util.Response "非 AJAX 请求"
// @Router /api/ajax/courses [get]
func (c *CourseController) AjaxList(ctx *gin.Context) {
	if ctx.GetHeader("X-Requested-With") != "XMLHttpRequest" {
		util.BadRequest(ctx, "AJAX requests only")
		return
	}

	courses, err := c.CourseService.PublishedCourses(100)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(200, gin.H{"courses": courses})
}
