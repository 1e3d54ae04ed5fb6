package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var reviewListSpec = ListSpec{
	Filterable: map[string]string{
		"course_id": "course_id",
		"user_id":   "user_id",
		"rating":    "rating",
	},
	Searchable: []string{"comment"},
	Sortable: map[string]string{
		"published_at": "published_at",
		"rating":       "rating",
	},
	DefaultOrder: "published_at DESC",
}

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	if review.PublishedAt.IsZero() {
		review.PublishedAt = time.Now()
	}
	return r.DB.Create(review).Error
}

func (r *ReviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.DB.Preload("User").First(&review, id).Error
	return &review, err
}

func (r *ReviewRepository) Update(review *model.Review) error {
	return r.DB.Save(review).Error
}

// Delete 物理删除，释放 (user, course) 唯一索引以便删除后重新评价
func (r *ReviewRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Review{}, id).Error
}

func (r *ReviewRepository) List(opts ListOptions) ([]model.Review, int64, error) {
	var reviews []model.Review
	q := reviewListSpec.Apply(r.DB.Model(&model.Review{}).Preload("User"), opts)
	total, err := listAndCount(q, opts, &reviews)
	return reviews, total, err
}

func (r *ReviewRepository) FindByCourse(courseID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.Preload("User").
		Where("course_id = ?", courseID).
		Order("published_at DESC").
		Find(&reviews).Error
	return reviews, err
}
