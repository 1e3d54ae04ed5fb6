package controller

import (
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
	Cfg           *config.Config
}

func NewLessonController(lessonService *service.LessonService, cfg *config.Config) *LessonController {
	return &LessonController{
		LessonService: lessonService,
		Cfg:           cfg,
	}
}

// List godoc
// @Summary 课时列表
// @Description 支持 course_id/is_published 过滤、search 搜索、ordering 排序，默认按课程内顺序
// @Tags 课时
// @Produce  json
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.Lesson}} "成功"
// @Router /api/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	opts := listOptions(ctx, c.Cfg)
	lessons, total, err := c.LessonService.ListLessons(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: lessons, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// Get godoc
// @Summary 课时详情
// @Tags 课时
// @Produce  json
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// Create godoc
// @Summary 创建课时
// @Description 同一课程内 order 不可重复
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.LessonInput true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson} "创建成功"
// @Failure 409 {object} util.Response "order 冲突"
// @Router /api/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var input service.LessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.CreateLesson(input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDuplicateOrder):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}

// Update godoc
// @Summary 更新课时
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Param   body body service.LessonUpdate true "可更新字段"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [patch]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var upd service.LessonUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.UpdateLesson(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDuplicateOrder):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// Delete godoc
// @Summary 删除课时
// @Description 同时删除该课时的进度记录
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	if err := c.LessonService.DeleteLesson(id); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
