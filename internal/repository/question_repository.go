package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.
		Preload("MCQOptions").
		Preload("TextAnswer").
		Where("id = ?", id).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Save(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(question *model.Question) error {
	return r.DB.Select("MCQOptions", "TextAnswer").Delete(question).Error
}

// ReplaceMCQOptions 重建选择题的选项集合
func (r *QuestionRepository) ReplaceMCQOptions(questionID string, options []model.MCQOption) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.MCQOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].QuestionID = questionID
		}
		return tx.Create(&options).Error
	})
}

func (r *QuestionRepository) FindMCQOption(optionID, questionID string) (*model.MCQOption, error) {
	var option model.MCQOption
	err := r.DB.Where("id = ? AND question_id = ?", optionID, questionID).First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}
