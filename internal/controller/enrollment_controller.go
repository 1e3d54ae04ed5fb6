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

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	Cfg               *config.Config
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService, cfg *config.Config) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService: enrollmentService,
		Cfg:               cfg,
	}
}

// List godoc
// @Summary 报名列表
// @Description 普通用户只能看到自己的报名，管理员可按 user_id 过滤查看全部
// @Tags 报名
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.Enrollment}} "成功"
// @Router /api/enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	opts := listOptions(ctx, c.Cfg)
	if claims.Role != model.Admin {
		opts.Filters["user_id"] = strconv.FormatUint(uint64(claims.UserID), 10)
	}

	enrollments, total, err := c.EnrollmentService.ListEnrollments(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: enrollments, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// Get godoc
// @Summary 报名详情
// @Tags 报名
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "报名ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 404 {object} util.Response "报名不存在"
// @Router /api/enrollments/{id} [get]
func (c *EnrollmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}

	enrollment, err := c.EnrollmentService.GetEnrollment(id)
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if claims.Role != model.Admin && enrollment.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, enrollment)
}

// Create godoc
// @Summary 创建报名
// @Description 省略 userId 时默认为当前登录用户；重复报名返回 409
// @Tags 报名
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.EnrollmentInput true "报名信息"
// @Success 201 {object} util.Response{data=model.Enrollment} "创建成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "已报名"
// @Router /api/enrollments [post]
func (c *EnrollmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.EnrollmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.CreateEnrollment(input, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDuplicateEnrollment):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

type EnrollmentUpdateRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

// Update godoc
// @Summary 更新报名完成状态
// @Tags 报名
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "报名ID"
// @Param   body body EnrollmentUpdateRequest true "完成状态"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 404 {object} util.Response "报名不存在"
// @Router /api/enrollments/{id} [patch]
func (c *EnrollmentController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}

	var req EnrollmentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.GetEnrollment(id)
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if claims.Role != model.Admin && enrollment.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	updated, err := c.EnrollmentService.CompleteEnrollment(id, req.IsCompleted)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary 取消报名
// @Tags 报名
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "报名ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "报名不存在"
// @Router /api/enrollments/{id} [delete]
func (c *EnrollmentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid enrollment id")
		return
	}

	enrollment, err := c.EnrollmentService.GetEnrollment(id)
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if claims.Role != model.Admin && enrollment.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	if err := c.EnrollmentService.DeleteEnrollment(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MyCourses godoc
// @Summary 我的课程
// @Description 当前用户的全部报名，最近报名在前，附课时数与总时长
// @Tags 报名
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.MyCourseItem} "成功"
// @Router /api/my-courses [get]
func (c *EnrollmentController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.EnrollmentService.MyCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
