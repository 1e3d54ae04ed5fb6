// 手动填充演示数据脚本
//
// 在空数据库上创建一个演示讲师、一门已发布课程和几节课时，
// 方便本地起服务后直接浏览页面。已有课程时不做任何事。
//
// 用法: go run scripts/seed_demo.go
package main

import (
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count > 0 {
		log.Println("数据库已有课程，跳过演示数据")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	instructor := &model.User{
		Username: "demo_instructor",
		Email:    "instructor@example.com",
		Password: string(hashed),
		Role:     model.Instructor,
	}
	if err := db.Create(instructor).Error; err != nil {
		log.Fatalf("创建演示讲师失败: %v", err)
	}

	title := "Getting Started with Go"
	course := &model.Course{
		Title:            title,
		Slug:             util.Slugify(title),
		ShortDescription: "A hands-on introduction to the Go programming language.",
		Description:      "Install the toolchain, learn the syntax and write your first services.",
		Price:            0,
		Difficulty:       model.Beginner,
		IsPublished:      true,
		InstructorID:     instructor.ID,
	}
	if err := db.Create(course).Error; err != nil {
		log.Fatalf("创建演示课程失败: %v", err)
	}

	lessons := []model.Lesson{
		{CourseID: course.ID, Title: "Installing Go", Order: 1, DurationMinutes: 15},
		{CourseID: course.ID, Title: "Your First Program", Order: 2, DurationMinutes: 25},
		{CourseID: course.ID, Title: "Structs and Interfaces", Order: 3, DurationMinutes: 40},
	}
	for i := range lessons {
		if err := db.Create(&lessons[i]).Error; err != nil {
			log.Fatalf("创建演示课时失败: %v", err)
		}
	}

	log.Printf("演示数据就绪: 课程 %q (slug=%s)，讲师 demo_instructor/password123", course.Title, course.Slug)
}
