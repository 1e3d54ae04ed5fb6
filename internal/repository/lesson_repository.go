package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

var lessonListSpec = ListSpec{
	Filterable: map[string]string{
		"course_id":    "course_id",
		"is_published": "is_published",
	},
	Searchable: []string{"title", "content"},
	Sortable: map[string]string{
		"order":      "sort_order",
		"created_at": "created_at",
	},
	DefaultOrder: "sort_order ASC",
}

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

// Delete 同时删除该课时的进度记录；物理删除，释放 (course, order) 唯一索引
func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("lesson_id = ?", id).Delete(&model.LessonProgress{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Lesson{}, id).Error
	})
}

func (r *LessonRepository) List(opts ListOptions) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	q := lessonListSpec.Apply(r.DB.Model(&model.Lesson{}), opts)
	total, err := listAndCount(q, opts, &lessons)
	return lessons, total, err
}

func (r *LessonRepository) FindByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Find(&lessons).Error
	return lessons, err
}
