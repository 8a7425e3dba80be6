package service

import (
	"testing"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnswerService(db *gorm.DB) *AnswerService {
	return NewAnswerService(repository.NewQuestionRepository(db))
}

func createMCQQuestion(t *testing.T, db *gorm.DB, lessonID string) *model.Question {
	t.Helper()
	question := &model.Question{
		QuestionText: "What is the capital of France?",
		QuestionType: model.QuestionMCQ,
		LessonID:     lessonID,
		MCQOptions: []model.MCQOption{
			{OptionText: "Lyon", IsCorrect: false},
			{OptionText: "Paris", IsCorrect: true},
		},
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func createTextQuestion(t *testing.T, db *gorm.DB, lessonID, answer string, casingMatters bool) *model.Question {
	t.Helper()
	question := &model.Question{
		QuestionText: "Name the keyword that starts a goroutine",
		QuestionType: model.QuestionText,
		LessonID:     lessonID,
		TextAnswer: &model.TextAnswer{
			CorrectAnswer: answer,
			CasingMatters: casingMatters,
		},
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func answerTestLesson(t *testing.T, db *gorm.DB) string {
	t.Helper()
	tutor := createTestUser(t, db, model.Tutor)
	_, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})
	return lessonIDs[0]
}

func TestCheckAnswer_MCQ(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)
	question := createMCQQuestion(t, db, answerTestLesson(t, db))

	var correctID, wrongID string
	for _, opt := range question.MCQOptions {
		if opt.IsCorrect {
			correctID = opt.ID
		} else {
			wrongID = opt.ID
		}
	}

	result, err := svc.CheckAnswer(question.ID, correctID)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, "Correct!", result.Message)
	assert.Equal(t, "Paris", result.CorrectAnswer)

	result, err = svc.CheckAnswer(question.ID, wrongID)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, "Incorrect", result.Message)
	assert.Equal(t, "Paris", result.CorrectAnswer)
}

func TestCheckAnswer_MCQInvalidOption(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)
	question := createMCQQuestion(t, db, answerTestLesson(t, db))

	// 选项 ID 必须属于该题目，别的题目的选项一样算无效
	_, err := svc.CheckAnswer(question.ID, model.GenerateUUID())
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestCheckAnswer_TextIgnoresCasingByDefault(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)
	question := createTextQuestion(t, db, answerTestLesson(t, db), "go", false)

	result, err := svc.CheckAnswer(question.ID, "  GO  ")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)

	result, err = svc.CheckAnswer(question.ID, "rust")
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, "go", result.CorrectAnswer)
}

func TestCheckAnswer_TextCasingMatters(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)
	question := createTextQuestion(t, db, answerTestLesson(t, db), "Go", true)

	result, err := svc.CheckAnswer(question.ID, "go")
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)

	result, err = svc.CheckAnswer(question.ID, "Go")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestCheckAnswer_QuestionNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newAnswerService(db)

	_, err := svc.CheckAnswer(model.GenerateUUID(), "anything")
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
