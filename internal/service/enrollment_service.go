package service

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
	}
}

// Enroll 幂等报名：已报名时返回 created=false，不报错。
// 讲师报名自己的课程按业务规则拒绝，不产生任何记录。
func (s *EnrollmentService) Enroll(userID uint, courseID uint) (*model.Enrollment, bool, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrCourseNotFound
		}
		return nil, false, err
	}

	if course.InstructorID == userID {
		return nil, false, util.ErrOwnCourseEnrollment
	}

	enrollment, created, err := s.EnrollmentRepo.GetOrCreate(userID, course.ID)
	if err != nil {
		// 并发下输给唯一索引的一方：按"已报名"处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.EnrollmentRepo.FindByUserAndCourse(userID, course.ID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return enrollment, created, nil
}

func (s *EnrollmentService) EnrollBySlug(userID uint, slug string) (*model.Enrollment, bool, error) {
	course, err := s.CourseRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrCourseNotFound
		}
		return nil, false, err
	}
	return s.Enroll(userID, course.ID)
}

// MyCourseItem 我的课程列表的一行：报名记录加上课程的课时数与总时长
type MyCourseItem struct {
	Enrollment    model.Enrollment `json:"enrollment"`
	LessonCount   int              `json:"lessonCount"`
	TotalDuration int              `json:"totalDurationMinutes"`
}

// MyCourses 当前用户的全部报名，最近报名在前，逐课程重算课时统计
func (s *EnrollmentService) MyCourses(userID uint) ([]MyCourseItem, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]MyCourseItem, 0, len(enrollments))
	for _, e := range enrollments {
		lessons, err := s.LessonRepo.FindByCourse(e.CourseID)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, l := range lessons {
			total += l.DurationMinutes
		}
		items = append(items, MyCourseItem{
			Enrollment:    e,
			LessonCount:   len(lessons),
			TotalDuration: total,
		})
	}
	return items, nil
}

type EnrollmentInput struct {
	UserID   uint `json:"userId"` // 省略时默认为当前登录用户
	CourseID uint `json:"courseId" binding:"required"`
}

// CreateEnrollment REST 资源入口，重复报名返回冲突错误
func (s *EnrollmentService) CreateEnrollment(input EnrollmentInput, actorID uint) (*model.Enrollment, error) {
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

	enrollment := &model.Enrollment{UserID: userID, CourseID: input.CourseID}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateEnrollment
		}
		return nil, err
	}
	return s.EnrollmentRepo.FindByID(enrollment.ID)
}

func (s *EnrollmentService) GetEnrollment(id uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	return enrollment, err
}

func (s *EnrollmentService) ListEnrollments(opts repository.ListOptions) ([]model.Enrollment, int64, error) {
	return s.EnrollmentRepo.List(opts)
}

func (s *EnrollmentService) CompleteEnrollment(id uint, isCompleted bool) (*model.Enrollment, error) {
	enrollment, err := s.GetEnrollment(id)
	if err != nil {
		return nil, err
	}
	enrollment.IsCompleted = isCompleted
	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) DeleteEnrollment(id uint) error {
	if _, err := s.GetEnrollment(id); err != nil {
		return err
	}
	return s.EnrollmentRepo.Delete(id)
}
