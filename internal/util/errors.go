package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrUsernameTaken       = errors.New("该用户名已被注册")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrProgressNotFound    = errors.New("lesson progress not found")
	ErrDuplicateEnrollment = errors.New("already enrolled in this course")
	ErrOwnCourseEnrollment = errors.New("讲师不能报名自己的课程")
	ErrDuplicateReview     = errors.New("course already reviewed by this user")
	ErrDuplicateOrder      = errors.New("lesson order already used in this course")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)
