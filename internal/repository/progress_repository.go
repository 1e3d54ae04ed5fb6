package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var progressListSpec = ListSpec{
	Filterable: map[string]string{
		"lesson_id":    "lesson_id",
		"student_id":   "student_id",
		"is_completed": "is_completed",
	},
	Sortable: map[string]string{
		"created_at":   "created_at",
		"completed_at": "completed_at",
	},
	DefaultOrder: "created_at DESC",
}

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.LessonProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) FindByID(id uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Preload("Lesson").First(&progress, id).Error
	return &progress, err
}

func (r *ProgressRepository) FindByStudentAndLesson(studentID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		First(&progress).Error
	return &progress, err
}

// MarkCompleted 幂等地把某课时标记为已完成
func (r *ProgressRepository) MarkCompleted(studentID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where(model.LessonProgress{StudentID: studentID, LessonID: lessonID}).
		FirstOrCreate(&progress).Error
	if err != nil {
		return nil, err
	}
	if !progress.IsCompleted {
		now := time.Now()
		progress.IsCompleted = true
		progress.CompletedAt = &now
		if err := r.DB.Save(&progress).Error; err != nil {
			return nil, err
		}
	}
	return &progress, nil
}

func (r *ProgressRepository) Update(progress *model.LessonProgress) error {
	return r.DB.Save(progress).Error
}

// Delete 物理删除，释放 (student, lesson) 唯一索引
func (r *ProgressRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.LessonProgress{}, id).Error
}

func (r *ProgressRepository) List(opts ListOptions) ([]model.LessonProgress, int64, error) {
	var rows []model.LessonProgress
	q := progressListSpec.Apply(r.DB.Model(&model.LessonProgress{}).Preload("Lesson"), opts)
	total, err := listAndCount(q, opts, &rows)
	return rows, total, err
}
