package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var enrollmentListSpec = ListSpec{
	Filterable: map[string]string{
		"course_id":    "course_id",
		"user_id":      "user_id",
		"is_completed": "is_completed",
	},
	Sortable: map[string]string{
		"enrolled_at": "enrolled_at",
	},
	DefaultOrder: "enrolled_at DESC",
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}
	return r.DB.Create(enrollment).Error
}

// GetOrCreate 报名的幂等入口：已存在时返回原记录，created=false。
// 并发的重复报名由 (user_id, course_id) 唯一索引兜底。
func (r *EnrollmentRepository) GetOrCreate(userID, courseID uint) (*model.Enrollment, bool, error) {
	var enrollment model.Enrollment
	res := r.DB.Where(model.Enrollment{UserID: userID, CourseID: courseID}).
		Attrs(model.Enrollment{EnrolledAt: time.Now()}).
		FirstOrCreate(&enrollment)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &enrollment, res.RowsAffected > 0, nil
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Preload("User").Preload("Course").First(&enrollment, id).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

// Delete 物理删除，释放 (user, course) 唯一索引以便取消后重新报名
func (r *EnrollmentRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Enrollment{}, id).Error
}

func (r *EnrollmentRepository) List(opts ListOptions) ([]model.Enrollment, int64, error) {
	var enrollments []model.Enrollment
	q := enrollmentListSpec.Apply(
		r.DB.Model(&model.Enrollment{}).Preload("User").Preload("Course"),
		opts,
	)
	total, err := listAndCount(q, opts, &enrollments)
	return enrollments, total, err
}

// FindByUser 我的课程页：最近报名在前
func (r *EnrollmentRepository) FindByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}
