package controller

import (
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	UserService *service.UserService
	Cfg         *config.Config
}

func NewUserController(userService *service.UserService, cfg *config.Config) *UserController {
	return &UserController{
		UserService: userService,
		Cfg:         cfg,
	}
}

// List godoc
// @Summary 用户列表
// @Description 支持 role 过滤与 username/姓名/邮箱搜索
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.User}} "成功"
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	opts := listOptions(ctx, c.Cfg)
	users, total, err := c.UserService.ListUsers(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// Get godoc
// @Summary 用户详情
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	user, err := c.UserService.GetUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// ListProfiles godoc
// @Summary 档案列表
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.Profile}} "成功"
// @Router /api/profiles [get]
func (c *UserController) ListProfiles(ctx *gin.Context) {
	opts := listOptions(ctx, c.Cfg)
	profiles, total, err := c.UserService.ListProfiles(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: profiles, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// MyProfile godoc
// @Summary 当前用户档案
// @Description 档案不存在时惰性创建
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Profile} "成功"
// @Router /api/profiles/me [get]
func (c *UserController) MyProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateMyProfile godoc
// @Summary 更新当前用户档案
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProfileUpdate true "可更新字段"
// @Success 200 {object} util.Response{data=model.Profile} "成功"
// @Router /api/profiles/me [patch]
func (c *UserController) UpdateMyProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var upd service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.UserService.UpdateProfile(claims.UserID, upd)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// GetProfile godoc
// @Summary 档案详情
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "档案ID"
// @Success 200 {object} util.Response{data=model.Profile} "成功"
// @Failure 404 {object} util.Response "档案不存在"
// @Router /api/profiles/{id} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid profile id")
		return
	}

	profile, err := c.UserService.ProfileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, profile)
}
