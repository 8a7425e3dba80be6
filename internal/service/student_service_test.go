package service

import (
	"testing"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{2, 1}, {1}})

	enrollment, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, enrollment.Status)
	assert.False(t, enrollment.EnrolledAt.IsZero())

	// 报名时游标指向总顺序第一个课时
	progress := loadProgress(t, db, student.ID, course.ID)
	require.NotNil(t, progress.CurrentLessonID)
	assert.Equal(t, lessonIDs[0], *progress.CurrentLessonID)
}

func TestEnroll_Duplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, _ := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnroll_CourseNotPublished(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	draft, _ := createTestCourse(t, db, tutor.ID, model.CourseDraft, [][]int{{1}})

	_, err := svc.Enroll(student.ID, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotPublished)

	_, err = svc.Enroll(student.ID, model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestEnroll_EmptyCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, _ := createTestCourse(t, db, tutor.ID, model.CoursePublished, nil)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// 没有课时可指，游标三字段全空
	progress := loadProgress(t, db, student.ID, course.ID)
	assert.Nil(t, progress.CurrentUnitID)
	assert.Nil(t, progress.CurrentChapterID)
	assert.Nil(t, progress.CurrentLessonID)
}

func TestCompleteLesson_WalksCourseInOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1, 1}, {1}})
	require.Len(t, lessonIDs, 3)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	for i := 0; i < len(lessonIDs)-1; i++ {
		result, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[i])
		require.NoError(t, err)
		assert.Equal(t, "Lesson completed", result.Message)
		assert.False(t, result.CourseCompleted)
		require.NotNil(t, result.NextLessonID)
		assert.Equal(t, lessonIDs[i+1], *result.NextLessonID)

		progress := loadProgress(t, db, student.ID, course.ID)
		require.NotNil(t, progress.CurrentLessonID)
		assert.Equal(t, lessonIDs[i+1], *progress.CurrentLessonID)
	}

	result, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[len(lessonIDs)-1])
	require.NoError(t, err)
	assert.Equal(t, "Course completed!", result.Message)
	assert.True(t, result.CourseCompleted)
	assert.Nil(t, result.NextLessonID)

	progress := loadProgress(t, db, student.ID, course.ID)
	assert.Nil(t, progress.CurrentLessonID)

	var enrollment model.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error)
	assert.Equal(t, model.EnrollmentCompleted, enrollment.Status)
}

func TestCompleteLesson_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{3}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	first, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)
	require.NotNil(t, first.NextLessonID)
	assert.Equal(t, lessonIDs[1], *first.NextLessonID)

	// 重复提交：不再推进，游标保持原位，完成记录不翻倍
	again, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "Lesson already completed", again.Message)
	assert.False(t, again.CourseCompleted)
	require.NotNil(t, again.NextLessonID)
	assert.Equal(t, lessonIDs[1], *again.NextLessonID)

	var count int64
	require.NoError(t, db.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", student.ID, lessonIDs[0]).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCompleteLesson_OutOfOrderAdvancesFromSubmitted(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{2}, {2}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// 游标在第一个课时，直接提交第三个：推进位置取决于提交的课时
	result, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[2])
	require.NoError(t, err)
	require.NotNil(t, result.NextLessonID)
	assert.Equal(t, lessonIDs[3], *result.NextLessonID)

	progress := loadProgress(t, db, student.ID, course.ID)
	require.NotNil(t, progress.CurrentLessonID)
	assert.Equal(t, lessonIDs[3], *progress.CurrentLessonID)
}

func TestCompleteLesson_UnknownLessonTreatedAsCourseEnd(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, _ := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{2}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// 提交的课时不在当前内容树里（已被导师删除），按最后一课处理
	result, err := svc.CompleteLesson(student.ID, course.ID, model.GenerateUUID())
	require.NoError(t, err)
	assert.True(t, result.CourseCompleted)
	assert.Nil(t, result.NextLessonID)
}

func TestCompleteLesson_NotEnrolled(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})

	_, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCompleteLesson_TouchesStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{2}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	first, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)
	assert.True(t, first.StreakUpdated)
	assert.Equal(t, 1, first.DailyStreak)

	// 同一天的第二次完成不再累计
	second, err := svc.CompleteLesson(student.ID, course.ID, lessonIDs[1])
	require.NoError(t, err)
	assert.False(t, second.StreakUpdated)
	assert.Equal(t, 1, second.DailyStreak)
}

func TestGetCourseDetail_Statuses(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{2}, {1}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, err = svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)

	detail, err := svc.GetCourseDetail(student.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.TotalLessons)
	assert.Equal(t, 1, detail.CompletedLessons)
	assert.InDelta(t, 33.3, detail.ProgressPercent, 0.01)
	require.NotNil(t, detail.CurrentLessonID)
	assert.Equal(t, lessonIDs[1], *detail.CurrentLessonID)

	require.Len(t, detail.Units, 2)
	firstChapter := detail.Units[0].Chapters[0]
	assert.Equal(t, "in_progress", firstChapter.Status)
	assert.Equal(t, "completed", firstChapter.Lessons[0].Status)
	assert.Equal(t, "current", firstChapter.Lessons[1].Status)

	secondChapter := detail.Units[1].Chapters[0]
	assert.Equal(t, "locked", secondChapter.Status)
	assert.Equal(t, "locked", secondChapter.Lessons[0].Status)
}

func TestGetCourseDetail_NotEnrolled(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, _ := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})

	_, err := svc.GetCourseDetail(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestGetCourseDetail_RepairsCursorAfterLessonDeleted(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{3}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, err = svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)

	// 导师删除了游标指向的课时，下次读取时游标指向第一个未完成的课时
	require.NoError(t, db.Delete(&model.Lesson{}, "id = ?", lessonIDs[1]).Error)

	detail, err := svc.GetCourseDetail(student.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.CurrentLessonID)
	assert.Equal(t, lessonIDs[2], *detail.CurrentLessonID)

	// 修复结果落库
	progress := loadProgress(t, db, student.ID, course.ID)
	require.NotNil(t, progress.CurrentLessonID)
	assert.Equal(t, lessonIDs[2], *progress.CurrentLessonID)
}

func TestGetCourseDetail_RepairsNilCursorToNothingWhenAllCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, err = svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)

	detail, err := svc.GetCourseDetail(student.ID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.CurrentLessonID)
	assert.Equal(t, 1, detail.CompletedLessons)
}

func TestGetLesson_Access(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{3}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// 当前课时可访问
	detail, err := svc.GetLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)
	assert.Equal(t, lessonIDs[0], detail.ID)

	// 前方课时锁定
	_, err = svc.GetLesson(student.ID, course.ID, lessonIDs[2])
	assert.ErrorIs(t, err, util.ErrLessonLocked)

	// 已完成的课时可回看
	_, err = svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)
	_, err = svc.GetLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)
}

func TestGetLesson_SanitizesQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})

	question := &model.Question{
		QuestionText: "2 + 2 = ?",
		QuestionType: model.QuestionMCQ,
		LessonID:     lessonIDs[0],
		MCQOptions: []model.MCQOption{
			{OptionText: "3", IsCorrect: false},
			{OptionText: "4", IsCorrect: true},
		},
	}
	require.NoError(t, db.Create(question).Error)

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	detail, err := svc.GetLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)
	require.Len(t, detail.Questions, 1)
	assert.Len(t, detail.Questions[0].MCQOptions, 2)
}

func TestGetLesson_WrongCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	courseA, _ := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})
	_, lessonsB := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{1}})

	_, err := svc.Enroll(student.ID, courseA.ID)
	require.NoError(t, err)

	_, err = svc.GetLesson(student.ID, courseA.ID, lessonsB[0])
	assert.ErrorIs(t, err, util.ErrLessonNotInCourse)
}

func TestMyCourses(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	student := createTestUser(t, db, model.Student)
	course, lessonIDs := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{2}})

	_, err := svc.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, err = svc.CompleteLesson(student.ID, course.ID, lessonIDs[0])
	require.NoError(t, err)

	summaries, err := svc.MyCourses(student.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, course.ID, summary.ID)
	assert.Equal(t, 2, summary.TotalLessons)
	assert.Equal(t, 1, summary.CompletedLessons)
	assert.InDelta(t, 50.0, summary.ProgressPercent, 0.01)
	assert.False(t, summary.Completed)
	require.NotNil(t, summary.CurrentLessonName)
}

func TestBrowseCourses_OnlyPublished(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(db)
	tutor := createTestUser(t, db, model.Tutor)
	published, _ := createTestCourse(t, db, tutor.ID, model.CoursePublished, [][]int{{2}})
	createTestCourse(t, db, tutor.ID, model.CourseDraft, [][]int{{1}})

	summaries, err := svc.BrowseCourses()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, published.ID, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].LessonCount)
	assert.Equal(t, tutor.FullName, summaries[0].TutorName)
}
