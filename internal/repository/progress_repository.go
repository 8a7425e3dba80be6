package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndCourse(userID, courseID string) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindForUpdate 在事务内用行锁读取游标。同一 (user, course) 的游标
// 变更（报名、完成推进、惰性修复）都必须先经过这里串行化。
func FindProgressForUpdate(tx *gorm.DB, userID, courseID string) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := lockForUpdate(tx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
