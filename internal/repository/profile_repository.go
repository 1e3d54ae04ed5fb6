package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

var profileListSpec = ListSpec{
	Filterable: map[string]string{
		"is_instructor": "is_instructor",
	},
	Sortable: map[string]string{
		"created_at": "created_at",
	},
	DefaultOrder: "id ASC",
}

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByID(id uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Preload("User").First(&profile, id).Error
	return &profile, err
}

// GetOrCreateByUserID 首次访问时惰性创建空档案
func (r *ProfileRepository) GetOrCreateByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Preload("User").
		Where(model.Profile{UserID: userID}).
		FirstOrCreate(&profile, model.Profile{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	if profile.User.ID == 0 {
		err = r.DB.Preload("User").First(&profile, profile.ID).Error
	}
	return &profile, err
}

func (r *ProfileRepository) Update(profile *model.Profile) error {
	return r.DB.Save(profile).Error
}

func (r *ProfileRepository) List(opts ListOptions) ([]model.Profile, int64, error) {
	var profiles []model.Profile
	q := profileListSpec.Apply(r.DB.Model(&model.Profile{}).Preload("User"), opts)
	total, err := listAndCount(q, opts, &profiles)
	return profiles, total, err
}
