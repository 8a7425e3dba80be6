package database

import (
	"fmt"
	"fun2learn_backend/internal/config"
	"fun2learn_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 迁移全部表结构并写入默认标签，测试库复用同一套迁移
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Unit{},
		&model.Chapter{},
		&model.Lesson{},
		&model.Question{},
		&model.MCQOption{},
		&model.TextAnswer{},
		&model.LessonAttachment{},
		&model.Tag{},
		&model.CourseTag{},
		&model.Badge{},
		&model.Enrollment{},
		&model.CourseProgress{},
		&model.LessonCompletion{},
		&model.UserInventory{},
		&model.StreakEntry{},
	)
	if err != nil {
		return err
	}

	// 默认课程标签
	var tagCount int64
	db.Model(&model.Tag{}).Count(&tagCount)
	if tagCount == 0 {
		defaultTags := []string{
			"Mathematics", "Science", "Programming", "Language",
			"History", "Art", "Music", "Business",
		}
		for _, name := range defaultTags {
			db.Create(&model.Tag{Name: name})
		}
	}

	return nil
}
