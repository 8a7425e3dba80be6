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

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		nil,
		repository.NewCourseRepository(db),
		repository.NewContentRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewTagRepository(db),
		repository.NewBadgeRepository(db),
	)
}

func TestCreateCourse_StartsAsDraft(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	tutor := createTestUser(t, db, model.Tutor)

	course, err := svc.CreateCourse(tutor.ID, "Go 入门", "from zero to goroutines")
	require.NoError(t, err)
	assert.Equal(t, model.CourseDraft, course.Status)
	assert.Equal(t, tutor.ID, course.TutorID)
	assert.NotEmpty(t, course.ID)
}

func TestPublish_RequiresAtLeastOneLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	tutor := createTestUser(t, db, model.Tutor)

	course, err := svc.CreateCourse(tutor.ID, "Empty", "no content yet")
	require.NoError(t, err)

	err = svc.Publish(tutor.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseHasNoLessons)

	unit, err := svc.AddUnit(tutor.ID, course.ID, "Unit 1", "", 0)
	require.NoError(t, err)
	chapter, err := svc.AddChapter(tutor.ID, unit.ID, "Chapter 1", 0)
	require.NoError(t, err)
	_, err = svc.AddLesson(tutor.ID, chapter.ID, "Lesson 1", 0)
	require.NoError(t, err)

	require.NoError(t, svc.Publish(tutor.ID, course.ID))

	reloaded, err := svc.GetCourse(tutor.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CoursePublished, reloaded.Status)

	// 重复发布报错
	err = svc.Publish(tutor.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseAlreadyPublished)
}

func TestAuthoring_RejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	owner := createTestUser(t, db, model.Tutor)
	other := createTestUser(t, db, model.Tutor)
	course, lessonIDs := createTestCourse(t, db, owner.ID, model.CourseDraft, [][]int{{1}})

	_, err := svc.UpdateCourse(other.ID, course.ID, "hijacked", "")
	assert.ErrorIs(t, err, util.ErrNotCourseOwner)

	err = svc.Publish(other.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotCourseOwner)

	err = svc.DeleteLesson(other.ID, lessonIDs[0])
	assert.ErrorIs(t, err, util.ErrNotCourseOwner)

	_, err = svc.GetCourse(other.ID, model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAddMCQQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	tutor := createTestUser(t, db, model.Tutor)
	_, lessonIDs := createTestCourse(t, db, tutor.ID, model.CourseDraft, [][]int{{1}})

	question, err := svc.AddMCQQuestion(tutor.ID, lessonIDs[0], "Pick one", []MCQOptionInput{
		{OptionText: "A", IsCorrect: false},
		{OptionText: "B", IsCorrect: true},
	})
	require.NoError(t, err)
	assert.Equal(t, model.QuestionMCQ, question.QuestionType)
	require.Len(t, question.MCQOptions, 2)
}

func TestEditMCQQuestion_ReplacesOptions(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	tutor := createTestUser(t, db, model.Tutor)
	_, lessonIDs := createTestCourse(t, db, tutor.ID, model.CourseDraft, [][]int{{1}})

	question, err := svc.AddMCQQuestion(tutor.ID, lessonIDs[0], "Pick one", []MCQOptionInput{
		{OptionText: "A", IsCorrect: true},
		{OptionText: "B", IsCorrect: false},
	})
	require.NoError(t, err)

	edited, err := svc.EditMCQQuestion(tutor.ID, question.ID, "Pick one (revised)", []MCQOptionInput{
		{OptionText: "C", IsCorrect: false},
		{OptionText: "D", IsCorrect: false},
		{OptionText: "E", IsCorrect: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pick one (revised)", edited.QuestionText)
	require.Len(t, edited.MCQOptions, 3)

	// 旧选项整组替换，不残留
	var count int64
	require.NoError(t, db.Model(&model.MCQOption{}).
		Where("question_id = ?", question.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestAddTextQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	tutor := createTestUser(t, db, model.Tutor)
	_, lessonIDs := createTestCourse(t, db, tutor.ID, model.CourseDraft, [][]int{{1}})

	question, err := svc.AddTextQuestion(tutor.ID, lessonIDs[0], "Spell it", "gopher", true)
	require.NoError(t, err)
	assert.Equal(t, model.QuestionText, question.QuestionType)
	require.NotNil(t, question.TextAnswer)
	assert.Equal(t, "gopher", question.TextAnswer.CorrectAnswer)
	assert.True(t, question.TextAnswer.CasingMatters)
}

func TestDeleteLesson_RemovesFromTraversal(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(db)
	tutor := createTestUser(t, db, model.Tutor)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CourseDraft, [][]int{{2}})

	require.NoError(t, svc.DeleteLesson(tutor.ID, lessonIDs[0]))

	reloaded, err := svc.GetCourse(tutor.ID, course.ID)
	require.NoError(t, err)
	refs := AllLessonsOrdered(reloaded)
	require.Len(t, refs, 1)
	assert.Equal(t, lessonIDs[1], refs[0].Lesson.ID)
}
