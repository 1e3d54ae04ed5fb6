package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var userListSpec = ListSpec{
	Filterable: map[string]string{
		"role": "role",
	},
	Searchable: []string{"username", "first_name", "last_name", "email"},
	Sortable: map[string]string{
		"created_at": "created_at",
		"username":   "username",
	},
	DefaultOrder: "id ASC",
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

func (r *UserRepository) List(opts ListOptions) ([]model.User, int64, error) {
	var users []model.User
	q := userListSpec.Apply(r.DB.Model(&model.User{}), opts)
	total, err := listAndCount(q, opts, &users)
	return users, total, err
}
