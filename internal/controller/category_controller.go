package controller

import (
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryController 只读资源：分类在迁移时播种，不开放写接口
type CategoryController struct {
	CategoryService *service.CategoryService
	Cfg             *config.Config
}

func NewCategoryController(categoryService *service.CategoryService, cfg *config.Config) *CategoryController {
	return &CategoryController{
		CategoryService: categoryService,
		Cfg:             cfg,
	}
}

// List godoc
// @Summary 分类列表
// @Tags 分类
// @Produce  json
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.Category}} "成功"
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	opts := listOptions(ctx, c.Cfg)
	categories, total, err := c.CategoryService.ListCategories(opts)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: categories, Total: total, Page: opts.Page, Limit: opts.Limit})
}

// Get godoc
// @Summary 分类详情
// @Tags 分类
// @Produce  json
// @Param   id path int true "分类ID"
// @Success 200 {object} util.Response{data=model.Category} "成功"
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	category, err := c.CategoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, category)
}
