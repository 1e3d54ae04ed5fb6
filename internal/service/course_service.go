package service

import (
	"errors"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ReviewRepo     *repository.ReviewRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	reviewRepo *repository.ReviewRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ReviewRepo:     reviewRepo,
	}
}

type CourseInput struct {
	Title            string  `json:"title" binding:"required,max=200"`
	Slug             string  `json:"slug" binding:"omitempty,max=220"`
	ShortDescription string  `json:"shortDescription" binding:"max=255"`
	Description      string  `json:"description"`
	Price            float64 `json:"price" binding:"gte=0"`
	Difficulty       string  `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	IsPublished      bool    `json:"isPublished"`
	CategoryID       *uint   `json:"categoryId"`
	InstructorID     uint    `json:"instructorId"` // 省略时默认为当前登录用户
}

type CourseUpdate struct {
	Title            *string  `json:"title" binding:"omitempty,max=200"`
	Slug             *string  `json:"slug" binding:"omitempty,max=220"`
	ShortDescription *string  `json:"shortDescription" binding:"omitempty,max=255"`
	Description      *string  `json:"description"`
	Price            *float64 `json:"price" binding:"omitempty,gte=0"`
	Difficulty       *string  `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	IsPublished      *bool    `json:"isPublished"`
	CategoryID       *uint    `json:"categoryId"`
}

// CourseDetail 详情页聚合结果
type CourseDetail struct {
	Course       *model.Course           `json:"course"`
	Stats        *repository.CourseStats `json:"stats"`
	Reviews      []model.Review          `json:"reviews"`
	IsEnrolled   bool                    `json:"isEnrolled"`
	IsInstructor bool                    `json:"isInstructor"`
}

// CreateCourse actorID 为当前登录用户，payload 未指定讲师时归属给它
func (s *CourseService) CreateCourse(input CourseInput, actorID uint) (*model.Course, error) {
	instructorID := input.InstructorID
	if instructorID == 0 {
		instructorID = actorID
	}

	slug := input.Slug
	if slug == "" {
		var err error
		slug, err = s.uniqueSlug(util.Slugify(input.Title))
		if err != nil {
			return nil, err
		}
	}

	difficulty := model.CourseDifficulty(input.Difficulty)
	if difficulty == "" {
		difficulty = model.Beginner
	}

	course := &model.Course{
		Title:            input.Title,
		Slug:             slug,
		ShortDescription: input.ShortDescription,
		Description:      input.Description,
		Price:            input.Price,
		Difficulty:       difficulty,
		IsPublished:      input.IsPublished,
		CategoryID:       input.CategoryID,
		InstructorID:     instructorID,
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindByID(course.ID)
}

// uniqueSlug 已占用时追加数字后缀；并发冲突最终由唯一索引兜底
func (s *CourseService) uniqueSlug(base string) (string, error) {
	if base == "" {
		base = "course"
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := s.CourseRepo.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *CourseService) UpdateCourse(id uint, upd CourseUpdate) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if upd.Title != nil {
		course.Title = *upd.Title
	}
	if upd.Slug != nil {
		course.Slug = *upd.Slug
	}
	if upd.ShortDescription != nil {
		course.ShortDescription = *upd.ShortDescription
	}
	if upd.Description != nil {
		course.Description = *upd.Description
	}
	if upd.Price != nil {
		course.Price = *upd.Price
	}
	if upd.Difficulty != nil {
		course.Difficulty = model.CourseDifficulty(*upd.Difficulty)
	}
	if upd.IsPublished != nil {
		course.IsPublished = *upd.IsPublished
	}
	if upd.CategoryID != nil {
		course.CategoryID = upd.CategoryID
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(id)
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) ListCourses(opts repository.ListOptions) ([]model.Course, int64, error) {
	return s.CourseRepo.List(opts)
}

func (s *CourseService) PublishedCourses(limit int) ([]model.Course, error) {
	return s.CourseRepo.FindPublished(limit)
}

// GetDetailBySlug 课程详情聚合。viewerID 为 0 表示匿名访问，
// 此时 isEnrolled / isInstructor 一律为 false。
func (s *CourseService) GetDetailBySlug(slug string, viewerID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	stats, err := s.CourseRepo.Stats(course.ID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.ReviewRepo.FindByCourse(course.ID)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		Course:  course,
		Stats:   stats,
		Reviews: reviews,
	}

	if viewerID != 0 {
		detail.IsInstructor = course.InstructorID == viewerID
		enrolled, err := s.EnrollmentRepo.Exists(viewerID, course.ID)
		if err != nil {
			return nil, err
		}
		detail.IsEnrolled = enrolled
	}

	return detail, nil
}
