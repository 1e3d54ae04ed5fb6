package model

import "time"

// Enrollment (user_id, course_id) 唯一：一人一课至多一条报名记录
type Enrollment struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	CourseID    uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	Course      Course    `gorm:"foreignKey:CourseID" json:"course"`
	EnrolledAt  time.Time `json:"enrolledAt"`
	IsCompleted bool      `gorm:"default:false" json:"isCompleted"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
