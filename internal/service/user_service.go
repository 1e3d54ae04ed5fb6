package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
}

func NewUserService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
	}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) ListUsers(opts repository.ListOptions) ([]model.User, int64, error) {
	return s.UserRepo.List(opts)
}

type ProfileUpdate struct {
	Bio          *string `json:"bio"`
	AvatarURL    *string `json:"avatarUrl"`
	IsInstructor *bool   `json:"isInstructor"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
}

// GetProfile 不存在时惰性创建空档案
func (s *UserService) GetProfile(userID uint) (*model.Profile, error) {
	return s.ProfileRepo.GetOrCreateByUserID(userID)
}

func (s *UserService) UpdateProfile(userID uint, upd ProfileUpdate) (*model.Profile, error) {
	profile, err := s.ProfileRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	if upd.Bio != nil {
		profile.Bio = *upd.Bio
	}
	if upd.AvatarURL != nil {
		profile.AvatarURL = *upd.AvatarURL
	}
	if upd.IsInstructor != nil {
		profile.IsInstructor = *upd.IsInstructor
	}
	if err := s.ProfileRepo.Update(profile); err != nil {
		return nil, err
	}

	// 姓名字段挂在 User 上
	if upd.FirstName != nil || upd.LastName != nil {
		user, err := s.UserRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		if upd.FirstName != nil {
			user.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			user.LastName = *upd.LastName
		}
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
		profile.User = *user
	}

	return profile, nil
}

func (s *UserService) ListProfiles(opts repository.ListOptions) ([]model.Profile, int64, error) {
	return s.ProfileRepo.List(opts)
}
