package model

import "time"

// LessonProgress 学生在单节课上的完成状态，(student_id, lesson_id) 唯一以保证幂等
type LessonProgress struct {
	BaseModel
	StudentID   uint       `gorm:"uniqueIndex:idx_student_lesson;not null" json:"studentId"`
	Student     User       `gorm:"foreignKey:StudentID" json:"student"`
	LessonID    uint       `gorm:"uniqueIndex:idx_student_lesson;not null" json:"lessonId"`
	Lesson      Lesson     `gorm:"foreignKey:LessonID" json:"lesson"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
