package repository

import (
	"lms_backend/internal/model"
	"math"

	"gorm.io/gorm"
)

var courseListSpec = ListSpec{
	Filterable: map[string]string{
		"instructor_id": "instructor_id",
		"category_id":   "category_id",
		"difficulty":    "difficulty",
		"is_published":  "is_published",
	},
	Searchable: []string{"title", "short_description", "description"},
	Sortable: map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"price":      "price",
		"title":      "title",
	},
	DefaultOrder: "created_at DESC",
}

// CourseStats 课程详情页的聚合数字
type CourseStats struct {
	AverageRating   *float64 `json:"averageRating"` // 无评价时为 null，保留一位小数
	ReviewCount     int64    `json:"reviewCount"`
	EnrollmentCount int64    `json:"enrollmentCount"`
	LessonCount     int64    `json:"lessonCount"`
	TotalDuration   int64    `json:"totalDurationMinutes"`
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").Preload("Category").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").Preload("Category").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("slug = ?", slug).First(&course).Error
	return &course, err
}

func (r *CourseRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete 级联删除：课时、课时进度、报名、评价随课程一并删除。
// 全部物理删除，否则 slug 与各组合唯一索引仍被占用，同名课程无法重建
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("course_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Unscoped().Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonProgress{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Course{}, id).Error
	})
}

func (r *CourseRepository) List(opts ListOptions) ([]model.Course, int64, error) {
	var courses []model.Course
	q := courseListSpec.Apply(
		r.DB.Model(&model.Course{}).Preload("Instructor").Preload("Category"),
		opts,
	)
	total, err := listAndCount(q, opts, &courses)
	return courses, total, err
}

func (r *CourseRepository) FindPublished(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Instructor").Preload("Category").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

// Stats 课程详情聚合。平均分为所有评价的算术平均，保留一位小数；
// 零条评价时保持 nil，绝不除以零。
func (r *CourseRepository) Stats(courseID uint) (*CourseStats, error) {
	stats := &CourseStats{}

	type ratingRow struct {
		Avg   float64
		Count int64
	}
	var rr ratingRow
	err := r.DB.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Scan(&rr).Error
	if err != nil {
		return nil, err
	}
	stats.ReviewCount = rr.Count
	if rr.Count > 0 {
		rounded := math.Round(rr.Avg*10) / 10
		stats.AverageRating = &rounded
	}

	if err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&stats.EnrollmentCount).Error; err != nil {
		return nil, err
	}

	type lessonRow struct {
		Count    int64
		Duration int64
	}
	var lr lessonRow
	err = r.DB.Model(&model.Lesson{}).
		Select("COUNT(*) AS count, COALESCE(SUM(duration_minutes), 0) AS duration").
		Where("course_id = ?", courseID).
		Scan(&lr).Error
	if err != nil {
		return nil, err
	}
	stats.LessonCount = lr.Count
	stats.TotalDuration = lr.Duration

	return stats, nil
}
