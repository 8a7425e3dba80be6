package repository

import (
	"errors"

	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindByCourse(courseID string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("course_id = ?", courseID).First(&badge).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

// Upsert 每个课程至多一枚徽章，重复保存时覆盖原有配置
func (r *BadgeRepository) Upsert(badge *model.Badge) error {
	existing, err := r.FindByCourse(badge.CourseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(badge).Error
	}
	if err != nil {
		return err
	}

	existing.Name = badge.Name
	existing.BadgeType = badge.BadgeType
	existing.IconName = badge.IconName
	existing.ImageURL = badge.ImageURL
	if err := r.DB.Save(existing).Error; err != nil {
		return err
	}
	*badge = *existing
	return nil
}
