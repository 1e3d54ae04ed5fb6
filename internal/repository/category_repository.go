package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

var categoryListSpec = ListSpec{
	Searchable: []string{"name"},
	Sortable: map[string]string{
		"name": "name",
	},
	DefaultOrder: "name ASC",
}

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, id).Error
	return &category, err
}

func (r *CategoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("slug = ?", slug).First(&category).Error
	return &category, err
}

func (r *CategoryRepository) List(opts ListOptions) ([]model.Category, int64, error) {
	var categories []model.Category
	q := categoryListSpec.Apply(r.DB.Model(&model.Category{}), opts)
	total, err := listAndCount(q, opts, &categories)
	return categories, total, err
}
