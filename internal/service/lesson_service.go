package service

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		CourseRepo: courseRepo,
	}
}

type LessonInput struct {
	CourseID        uint   `json:"courseId" binding:"required"`
	Title           string `json:"title" binding:"required,max=200"`
	Content         string `json:"content"`
	VideoURL        string `json:"videoUrl" binding:"omitempty,max=255"`
	DurationMinutes int    `json:"durationMinutes" binding:"gte=0"`
	Order           int    `json:"order" binding:"omitempty,gte=1"`
	IsPublished     *bool  `json:"isPublished"`
}

type LessonUpdate struct {
	Title           *string `json:"title" binding:"omitempty,max=200"`
	Content         *string `json:"content"`
	VideoURL        *string `json:"videoUrl" binding:"omitempty,max=255"`
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,gte=0"`
	Order           *int    `json:"order" binding:"omitempty,gte=1"`
	IsPublished     *bool   `json:"isPublished"`
}

// CreateLesson 重复的 (course, order) 返回冲突错误
func (s *LessonService) CreateLesson(input LessonInput) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(input.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	order := input.Order
	if order == 0 {
		order = 1
	}
	published := true
	if input.IsPublished != nil {
		published = *input.IsPublished
	}

	lesson := &model.Lesson{
		CourseID:        input.CourseID,
		Title:           input.Title,
		Content:         input.Content,
		VideoURL:        input.VideoURL,
		DurationMinutes: input.DurationMinutes,
		Order:           order,
		IsPublished:     published,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateOrder
		}
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

func (s *LessonService) UpdateLesson(id uint, upd LessonUpdate) (*model.Lesson, error) {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		lesson.Title = *upd.Title
	}
	if upd.Content != nil {
		lesson.Content = *upd.Content
	}
	if upd.VideoURL != nil {
		lesson.VideoURL = *upd.VideoURL
	}
	if upd.DurationMinutes != nil {
		lesson.DurationMinutes = *upd.DurationMinutes
	}
	if upd.Order != nil {
		lesson.Order = *upd.Order
	}
	if upd.IsPublished != nil {
		lesson.IsPublished = *upd.IsPublished
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateOrder
		}
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) DeleteLesson(id uint) error {
	if _, err := s.GetLesson(id); err != nil {
		return err
	}
	return s.LessonRepo.Delete(id)
}

func (s *LessonService) ListLessons(opts repository.ListOptions) ([]model.Lesson, int64, error) {
	return s.LessonRepo.List(opts)
}
