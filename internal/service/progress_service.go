package service

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
	}
}

type ProgressInput struct {
	StudentID   uint `json:"studentId"` // 省略时默认为当前登录用户
	LessonID    uint `json:"lessonId" binding:"required"`
	IsCompleted bool `json:"isCompleted"`
}

func (s *ProgressService) CreateProgress(input ProgressInput, actorID uint) (*model.LessonProgress, error) {
	studentID := input.StudentID
	if studentID == 0 {
		studentID = actorID
	}

	if _, err := s.LessonRepo.FindByID(input.LessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	progress := &model.LessonProgress{
		StudentID:   studentID,
		LessonID:    input.LessonID,
		IsCompleted: input.IsCompleted,
	}
	if input.IsCompleted {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.ProgressRepo.Create(progress); err != nil {
		// 已有记录时退化为幂等更新
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.ProgressRepo.FindByStudentAndLesson(studentID, input.LessonID)
			if ferr != nil {
				return nil, ferr
			}
			existing.IsCompleted = input.IsCompleted
			existing.CompletedAt = progress.CompletedAt
			if err := s.ProgressRepo.Update(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) MarkCompleted(studentID, lessonID uint) (*model.LessonProgress, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return s.ProgressRepo.MarkCompleted(studentID, lessonID)
}

func (s *ProgressService) GetProgress(id uint) (*model.LessonProgress, error) {
	progress, err := s.ProgressRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	}
	return progress, err
}

func (s *ProgressService) UpdateProgress(id uint, isCompleted bool) (*model.LessonProgress, error) {
	progress, err := s.GetProgress(id)
	if err != nil {
		return nil, err
	}
	progress.IsCompleted = isCompleted
	if isCompleted && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}
	if !isCompleted {
		progress.CompletedAt = nil
	}
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) DeleteProgress(id uint) error {
	if _, err := s.GetProgress(id); err != nil {
		return err
	}
	return s.ProgressRepo.Delete(id)
}

func (s *ProgressService) ListProgress(opts repository.ListOptions) ([]model.LessonProgress, int64, error) {
	return s.ProgressRepo.List(opts)
}
