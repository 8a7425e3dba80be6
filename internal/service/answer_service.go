package service

import (
	"errors"
	"strings"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"

	"gorm.io/gorm"
)

var ErrInvalidOption = errors.New("invalid option selected")
var ErrAnswerNotConfigured = errors.New("question has no answer configured")

// AnswerService 无状态判题。只校验对错并回显正确答案，
// 不记录提交，也不影响进度和连胜。
type AnswerService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewAnswerService(questionRepo *repository.QuestionRepository) *AnswerService {
	return &AnswerService{QuestionRepo: questionRepo}
}

// AnswerResult 判题结果
type AnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	Message       string `json:"message"`
	CorrectAnswer string `json:"correctAnswer"`
}

// CheckAnswer 判题。mcq 的 answer 是选项 ID，text 的 answer 是作答文本，
// 文本题按 casing_matters 决定是否忽略大小写，前后空白一律剔除。
func (s *AnswerService) CheckAnswer(questionID, answer string) (*AnswerResult, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	result := &AnswerResult{}

	switch question.QuestionType {
	case model.QuestionMCQ:
		selected, err := s.QuestionRepo.FindMCQOption(answer, questionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidOption
			}
			return nil, err
		}
		result.IsCorrect = selected.IsCorrect

		correct := make([]string, 0, 1)
		for _, opt := range question.MCQOptions {
			if opt.IsCorrect {
				correct = append(correct, opt.OptionText)
			}
		}
		result.CorrectAnswer = strings.Join(correct, ", ")

	case model.QuestionText:
		if question.TextAnswer == nil {
			return nil, ErrAnswerNotConfigured
		}
		expected := strings.TrimSpace(question.TextAnswer.CorrectAnswer)
		given := strings.TrimSpace(answer)
		if question.TextAnswer.CasingMatters {
			result.IsCorrect = given == expected
		} else {
			result.IsCorrect = strings.EqualFold(given, expected)
		}
		result.CorrectAnswer = question.TextAnswer.CorrectAnswer

	default:
		return nil, ErrAnswerNotConfigured
	}

	if result.IsCorrect {
		result.Message = "Correct!"
	} else {
		result.Message = "Incorrect"
	}
	return result, nil
}
