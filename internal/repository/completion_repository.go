package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

func (r *CompletionRepository) Exists(userID, lessonID string) (bool, error) {
	return CompletionExists(r.DB, userID, lessonID)
}

// CompletionExists 包级版本，供调用方在自己的事务内复用
func CompletionExists(db *gorm.DB, userID, lessonID string) (bool, error) {
	var count int64
	err := db.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	return count > 0, err
}

// CompletedLessonIDs 返回用户在课程内已完成的课时 ID 集合
func (r *CompletionRepository) CompletedLessonIDs(userID, courseID string) (map[string]bool, error) {
	return CompletedLessonIDs(r.DB, userID, courseID)
}

// CompletedLessonIDs 包级版本，供调用方在自己的事务内复用
func CompletedLessonIDs(db *gorm.DB, userID, courseID string) (map[string]bool, error) {
	var ids []string
	err := db.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *CompletionRepository) CountByUserAndCourse(userID, courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count, err
}
