package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

func (r *TagRepository) ListAll() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Order("name").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindByIDs(ids []string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindByCourse(courseID string) ([]model.CourseTag, error) {
	var courseTags []model.CourseTag
	err := r.DB.Preload("Tag").Where("course_id = ?", courseID).Find(&courseTags).Error
	return courseTags, err
}

// ReplaceCourseTags 以提交的标签集合整体替换课程现有标签
func (r *TagRepository) ReplaceCourseTags(courseID string, tagIDs []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&model.CourseTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			ct := model.CourseTag{CourseID: courseID, TagID: tagID}
			if err := tx.Create(&ct).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
