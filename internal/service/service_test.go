package service

import (
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv 一套完整的服务依赖，跑在内存数据库上
type testEnv struct {
	db         *gorm.DB
	auth       *AuthService
	user       *UserService
	course     *CourseService
	lesson     *LessonService
	enrollment *EnrollmentService
	review     *ReviewService
	progress   *ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	return &testEnv{
		db:         db,
		auth:       NewAuthService(userRepo, cfg),
		user:       NewUserService(userRepo, profileRepo),
		course:     NewCourseService(courseRepo, enrollmentRepo, reviewRepo),
		lesson:     NewLessonService(lessonRepo, courseRepo),
		enrollment: NewEnrollmentService(enrollmentRepo, courseRepo, lessonRepo),
		review:     NewReviewService(reviewRepo, courseRepo),
		progress:   NewProgressService(progressRepo, lessonRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, username string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}
