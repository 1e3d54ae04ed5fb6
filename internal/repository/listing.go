package repository

import (
	"strings"

	"gorm.io/gorm"
)

// ListSpec 枚举某个资源允许的过滤/搜索/排序字段。
// 查询参数只会命中这里声明过的列，未声明的参数直接忽略。
type ListSpec struct {
	Filterable   map[string]string // 查询参数 -> 列名
	Searchable   []string          // search= 命中的列（OR LIKE）
	Sortable     map[string]string // ordering= 键 -> 列名
	DefaultOrder string
}

// ListOptions 一次列表查询的原始参数
type ListOptions struct {
	Filters  map[string]string
	Search   string
	Ordering string // "field" 升序，"-field" 降序
	Page     int
	Limit    int
}

func (o ListOptions) Offset() int {
	page := o.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * o.Limit
}

// Apply 把 ListOptions 按照 ListSpec 的白名单拼到查询上，不做分页
func (s ListSpec) Apply(q *gorm.DB, opts ListOptions) *gorm.DB {
	for param, column := range s.Filterable {
		if v, ok := opts.Filters[param]; ok && v != "" {
			q = q.Where(column+" = ?", v)
		}
	}

	if opts.Search != "" && len(s.Searchable) > 0 {
		like := "%" + opts.Search + "%"
		clauses := make([]string, 0, len(s.Searchable))
		args := make([]interface{}, 0, len(s.Searchable))
		for _, column := range s.Searchable {
			clauses = append(clauses, column+" LIKE ?")
			args = append(args, like)
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}

	ordering := opts.Ordering
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")
	if column, ok := s.Sortable[key]; ok && key != "" {
		if desc {
			q = q.Order(column + " DESC")
		} else {
			q = q.Order(column + " ASC")
		}
	} else if s.DefaultOrder != "" {
		q = q.Order(s.DefaultOrder)
	}

	return q
}

// listAndCount 通用的 count + 分页查询
func listAndCount(q *gorm.DB, opts ListOptions, dest interface{}) (int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}

	err := q.Offset(opts.Offset()).Limit(opts.Limit).Find(dest).Error
	return total, err
}
