package service

import (
	"fmt"
	"testing"
	"time"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库只允许一个连接，多连接会各自拿到独立的空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newStudentService(db *gorm.DB) *StudentService {
	return NewStudentService(
		db, nil,
		repository.NewCourseRepository(db),
		repository.NewContentRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewCompletionRepository(db),
	)
}

func newStreakService(db *gorm.DB) *StreakService {
	return NewStreakService(repository.NewStreakRepository(db), db)
}

func createTestUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		FullName:  fmt.Sprintf("Test %s %s", role, model.GenerateUUID()[:8]),
		Email:     model.GenerateUUID() + "@example.com",
		Password:  "hashed",
		Role:      role,
		LastLogin: time.Now(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestCourse 按 shape 建课程内容树并返回总顺序中的课时 ID。
// shape[i][j] 是第 i 个单元第 j 个章节的课时数。
func createTestCourse(t *testing.T, db *gorm.DB, tutorID string, status model.CourseStatus, shape [][]int) (*model.Course, []string) {
	t.Helper()

	course := &model.Course{
		Name:        "Course " + model.GenerateUUID()[:8],
		Description: "test course",
		Status:      status,
		TutorID:     tutorID,
	}
	require.NoError(t, db.Create(course).Error)

	var lessonIDs []string
	for ui, chapters := range shape {
		unit := &model.Unit{
			Name:      fmt.Sprintf("Unit %d", ui+1),
			UnitIndex: ui,
			CourseID:  course.ID,
		}
		require.NoError(t, db.Create(unit).Error)

		for ci, lessonCount := range chapters {
			chapter := &model.Chapter{
				Name:         fmt.Sprintf("Chapter %d.%d", ui+1, ci+1),
				ChapterIndex: ci,
				UnitID:       unit.ID,
			}
			require.NoError(t, db.Create(chapter).Error)

			for li := 0; li < lessonCount; li++ {
				lesson := &model.Lesson{
					Name:        fmt.Sprintf("Lesson %d.%d.%d", ui+1, ci+1, li+1),
					LessonIndex: li,
					ChapterID:   chapter.ID,
				}
				require.NoError(t, db.Create(lesson).Error)
				lessonIDs = append(lessonIDs, lesson.ID)
			}
		}
	}

	return course, lessonIDs
}

func loadProgress(t *testing.T, db *gorm.DB, userID, courseID string) *model.CourseProgress {
	t.Helper()
	var progress model.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error)
	return &progress
}

func seedInventory(t *testing.T, db *gorm.DB, userID string, daily, longest int, last *time.Time) {
	t.Helper()
	inventory := &model.UserInventory{
		UserID:             userID,
		DailyStreak:        daily,
		LongestStreak:      longest,
		LastStreakRecorded: last,
	}
	require.NoError(t, db.Create(inventory).Error)
}

func daysAgo(n int) *time.Time {
	d := model.DateUTC(time.Now().AddDate(0, 0, -n))
	return &d
}
