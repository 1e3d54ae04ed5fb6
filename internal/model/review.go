package model

import "time"

// Review (user_id, course_id) 唯一：一人一课至多一条评价
type Review struct {
	BaseModel
	CourseID    uint      `gorm:"uniqueIndex:idx_review_user_course;not null" json:"courseId"`
	Course      Course    `gorm:"foreignKey:CourseID" json:"-"`
	UserID      uint      `gorm:"uniqueIndex:idx_review_user_course;not null" json:"userId"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	Comment     string    `gorm:"type:text" json:"comment"`
	Rating      int       `gorm:"not null" json:"rating"` // 1-5
	PublishedAt time.Time `json:"publishedAt"`
}

func (Review) TableName() string {
	return "reviews"
}
