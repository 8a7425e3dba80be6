package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type AttachmentRepository struct {
	DB *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{DB: db}
}

func (r *AttachmentRepository) Create(attachment *model.LessonAttachment) error {
	return r.DB.Create(attachment).Error
}

func (r *AttachmentRepository) FindByID(id string) (*model.LessonAttachment, error) {
	var attachment model.LessonAttachment
	err := r.DB.Where("id = ?", id).First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepository) FindByLesson(lessonID string) ([]model.LessonAttachment, error) {
	var attachments []model.LessonAttachment
	err := r.DB.Where("lesson_id = ?", lessonID).Order("created_at").Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepository) Delete(attachment *model.LessonAttachment) error {
	return r.DB.Delete(attachment).Error
}
