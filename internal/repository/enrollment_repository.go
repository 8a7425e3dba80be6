package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID string) (*model.Enrollment, error) {
	return FindEnrollment(r.DB, userID, courseID)
}

// FindEnrollment 包级版本，供调用方在自己的事务内复用
func FindEnrollment(db *gorm.DB, userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindByUser 按报名时间倒序返回用户的全部报名记录
func (r *EnrollmentRepository) FindByUser(userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.
		Preload("Course.Units.Chapters.Lessons").
		Preload("Course.Badge").
		Preload("Course.Tutor").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}
