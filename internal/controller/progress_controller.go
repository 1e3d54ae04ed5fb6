package controller

import (
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	Cfg             *config.Config
}

func NewProgressController(progressService *service.ProgressService, cfg *config.Config) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
		Cfg:             cfg,
	}
}

// List godoc
// @Summary 课时进度列表
// @Description 普通用户只能看到自己的进度
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.LessonProgress}} "成功"
// @Router /api/lesson-progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	opts := listOptions(ctx, c.Cfg)
	if claims.Role != model.Admin {
		opts.Filters["student_id"] = strconv.FormatUint(uint64(claims.UserID), 10)
	}

	rows, total, err := c.ProgressService.ListProgress(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// Get godoc
// @Summary 课时进度详情
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "进度ID"
// @Success 200 {object} util.Response{data=model.LessonProgress} "成功"
// @Failure 404 {object} util.Response "进度不存在"
// @Router /api/lesson-progress/{id} [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid progress id")
		return
	}

	progress, err := c.ProgressService.GetProgress(id)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if claims.Role != model.Admin && progress.StudentID != claims.UserID {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, progress)
}

// Create godoc
// @Summary 记录课时进度
// @Description 省略 studentId 时默认为当前登录用户；重复记录退化为幂等更新
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProgressInput true "进度信息"
// @Success 201 {object} util.Response{data=model.LessonProgress} "创建成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lesson-progress [post]
func (c *ProgressController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ProgressInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.CreateProgress(input, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, progress)
}

type ProgressUpdateRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

// Update godoc
// @Summary 更新课时进度
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "进度ID"
// @Param   body body ProgressUpdateRequest true "完成状态"
// @Success 200 {object} util.Response{data=model.LessonProgress} "成功"
// @Failure 404 {object} util.Response "进度不存在"
// @Router /api/lesson-progress/{id} [patch]
func (c *ProgressController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid progress id")
		return
	}

	var req ProgressUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.GetProgress(id)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if claims.Role != model.Admin && progress.StudentID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	updated, err := c.ProgressService.UpdateProgress(id, req.IsCompleted)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary 删除课时进度
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "进度ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "进度不存在"
// @Router /api/lesson-progress/{id} [delete]
func (c *ProgressController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid progress id")
		return
	}

	progress, err := c.ProgressService.GetProgress(id)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if claims.Role != model.Admin && progress.StudentID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	if err := c.ProgressService.DeleteProgress(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
