package controller

import (
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/repository"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// listOptions 从查询参数中提取过滤/搜索/排序/分页。
// 过滤参数原样收集，白名单在 repository.ListSpec 里收口。
func listOptions(ctx *gin.Context, cfg *config.Config) repository.ListOptions {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(cfg.Pagination.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = cfg.Pagination.DefaultLimit
	}
	if limit > cfg.Pagination.MaxLimit {
		limit = cfg.Pagination.MaxLimit
	}

	filters := make(map[string]string)
	for key, values := range ctx.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	return repository.ListOptions{
		Filters:  filters,
		Search:   ctx.Query("search"),
		Ordering: ctx.Query("ordering"),
		Page:     page,
		Limit:    limit,
	}
}

func isDuplicateErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
