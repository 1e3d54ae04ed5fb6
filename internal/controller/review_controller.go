package controller

import (
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
	Cfg           *config.Config
}

func NewReviewController(reviewService *service.ReviewService, cfg *config.Config) *ReviewController {
	return &ReviewController{
		ReviewService: reviewService,
		Cfg:           cfg,
	}
}

// List godoc
// @Summary 评价列表
// @Description 支持 course_id/user_id/rating 过滤与 ordering 排序，默认按发布时间倒序
// @Tags 评价
// @Produce  json
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.Review}} "成功"
// @Router /api/reviews [get]
func (c *ReviewController) List(ctx *gin.Context) {
	opts := listOptions(ctx, c.Cfg)
	reviews, total, err := c.ReviewService.ListReviews(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: reviews, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// Get godoc
// @Summary 评价详情
// @Tags 评价
// @Produce  json
// @Param   id path int true "评价ID"
// @Success 200 {object} util.Response{data=model.Review} "成功"
// @Failure 404 {object} util.Response "评价不存在"
// @Router /api/reviews/{id} [get]
func (c *ReviewController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid review id")
		return
	}

	review, err := c.ReviewService.GetReview(id)
	if err != nil {
		if errors.Is(err, util.ErrReviewNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, review)
}

// Create godoc
// @Summary 发表评价
// @Description 一人一课一条评价，重复发表返回 409；省略 userId 时默认为当前登录用户
// @Tags 评价
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ReviewInput true "评价内容与评分(1-5)"
// @Success 201 {object} util.Response{data=model.Review} "创建成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "重复评价"
// @Router /api/reviews [post]
func (c *ReviewController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.ReviewService.CreateReview(input, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDuplicateReview):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, review)
}

// Update godoc
// @Summary 更新评价
// @Description 只能修改自己的评价，管理员除外
// @Tags 评价
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "评价ID"
// @Param   body body service.ReviewUpdate true "可更新字段"
// @Success 200 {object} util.Response{data=model.Review} "成功"
// @Failure 403 {object} util.Response "非本人评价"
// @Failure 404 {object} util.Response "评价不存在"
// @Router /api/reviews/{id} [patch]
func (c *ReviewController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid review id")
		return
	}

	review, err := c.ReviewService.GetReview(id)
	if err != nil {
		if errors.Is(err, util.ErrReviewNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if claims.Role != model.Admin && review.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	var upd service.ReviewUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.ReviewService.UpdateReview(id, upd)
	if err != nil {
		if errors.Is(err, util.ErrInvalidRating) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary 删除评价
// @Tags 评价
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "评价ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "非本人评价"
// @Failure 404 {object} util.Response "评价不存在"
// @Router /api/reviews/{id} [delete]
func (c *ReviewController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid review id")
		return
	}

	review, err := c.ReviewService.GetReview(id)
	if err != nil {
		if errors.Is(err, util.ErrReviewNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if claims.Role != model.Admin && review.UserID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	if err := c.ReviewService.DeleteReview(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
