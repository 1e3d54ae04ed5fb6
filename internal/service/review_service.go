package service

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type ReviewService struct {
	ReviewRepo *repository.ReviewRepository
	CourseRepo *repository.CourseRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, courseRepo *repository.CourseRepository) *ReviewService {
	return &ReviewService{
		ReviewRepo: reviewRepo,
		CourseRepo: courseRepo,
	}
}

type ReviewInput struct {
	CourseID uint   `json:"courseId" binding:"required"`
	UserID   uint   `json:"userId"` // 省略时默认为当前登录用户
	Comment  string `json:"comment"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
}

type ReviewUpdate struct {
	Comment *string `json:"comment"`
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// CreateReview 一人一课一条评价，重复评价返回冲突错误
func (s *ReviewService) CreateReview(input ReviewInput, actorID uint) (*model.Review, error) {
	userID := input.UserID
	if userID == 0 {
		userID = actorID
	}

	if _, err := s.CourseRepo.FindByID(input.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	review := &model.Review{
		CourseID: input.CourseID,
		UserID:   userID,
		Comment:  input.Comment,
		Rating:   input.Rating,
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateReview
		}
		return nil, err
	}
	return s.ReviewRepo.FindByID(review.ID)
}

func (s *ReviewService) GetReview(id uint) (*model.Review, error) {
	review, err := s.ReviewRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrReviewNotFound
	}
	return review, err
}

func (s *ReviewService) UpdateReview(id uint, upd ReviewUpdate) (*model.Review, error) {
	review, err := s.GetReview(id)
	if err != nil {
		return nil, err
	}

	if upd.Comment != nil {
		review.Comment = *upd.Comment
	}
	if upd.Rating != nil {
		if *upd.Rating < 1 || *upd.Rating > 5 {
			return nil, util.ErrInvalidRating
		}
		review.Rating = *upd.Rating
	}

	if err := s.ReviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(id uint) error {
	if _, err := s.GetReview(id); err != nil {
		return err
	}
	return s.ReviewRepo.Delete(id)
}

func (s *ReviewService) ListReviews(opts repository.ListOptions) ([]model.Review, int64, error) {
	return s.ReviewRepo.List(opts)
}
