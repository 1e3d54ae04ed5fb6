package model

type CourseDifficulty string

const (
	Beginner     CourseDifficulty = "beginner"
	Intermediate CourseDifficulty = "intermediate"
	Advanced     CourseDifficulty = "advanced"
)

// Category 课程分类，只读资源，迁移时播种
type Category struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}

// swagger:model Course
type Course struct {
	BaseModel
	Title            string           `gorm:"size:200;not null" json:"title"`
	Slug             string           `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	ShortDescription string           `gorm:"size:255" json:"shortDescription"`
	Description      string           `gorm:"type:text" json:"description"`
	Price            float64          `gorm:"default:0" json:"price"`
	Difficulty       CourseDifficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	IsPublished      bool             `gorm:"default:false" json:"isPublished"`
	CoverURL         string           `gorm:"size:255" json:"coverUrl"`
	CategoryID       *uint            `gorm:"index" json:"categoryId"`
	Category         *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	InstructorID     uint             `gorm:"index;not null" json:"instructorId"`
	Instructor       User             `gorm:"foreignKey:InstructorID" json:"instructor"`
	Lessons          []Lesson         `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Lesson (course_id, order) 唯一，order 决定课程内的顺序
type Lesson struct {
	BaseModel
	CourseID        uint   `gorm:"uniqueIndex:idx_course_order;not null" json:"courseId"`
	Course          Course `gorm:"foreignKey:CourseID" json:"-"`
	Title           string `gorm:"size:200;not null" json:"title"`
	Content         string `gorm:"type:text" json:"content"`
	VideoURL        string `gorm:"size:255" json:"videoUrl"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`
	Order           int    `gorm:"uniqueIndex:idx_course_order;column:sort_order;default:1" json:"order"`
	IsPublished     bool   `gorm:"default:true" json:"isPublished"`
}

func (Lesson) TableName() string {
	return "lessons"
}
