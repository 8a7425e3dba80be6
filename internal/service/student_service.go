package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"
	"fun2learn_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// 课程目录缓存。发布课程数量少、读多写少，整表缓存一份 JSON，
// 导师发布或删除课程时整体失效。
const (
	catalogCacheKey = "fun2learn:catalog:published"
	catalogCacheTTL = 5 * time.Minute
)

// StudentService 学生侧核心：浏览、报名、进度游标、课时完成推进。
// 涉及游标和完成记录的写入都在单个事务内执行，进度行加行锁，
// 同一 (user, course) 的并发请求串行化。
type StudentService struct {
	DB             *gorm.DB
	Redis          *redis.Client
	CourseRepo     *repository.CourseRepository
	ContentRepo    *repository.ContentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	CompletionRepo *repository.CompletionRepository
}

func NewStudentService(
	db *gorm.DB,
	rdb *redis.Client,
	courseRepo *repository.CourseRepository,
	contentRepo *repository.ContentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	completionRepo *repository.CompletionRepository,
) *StudentService {
	return &StudentService{
		DB:             db,
		Redis:          rdb,
		CourseRepo:     courseRepo,
		ContentRepo:    contentRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		CompletionRepo: completionRepo,
	}
}

// TagDetail 标签摘要
type TagDetail struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrowseCourseSummary 课程浏览页的单课程摘要
type BrowseCourseSummary struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	TutorName       string       `json:"tutorName"`
	UnitCount       int          `json:"unitCount"`
	ChapterCount    int          `json:"chapterCount"`
	LessonCount     int          `json:"lessonCount"`
	EnrollmentCount int          `json:"enrollmentCount"`
	Tags            []TagDetail  `json:"tags"`
	Badge           *model.Badge `json:"badge"`
}

// EnrolledCourseSummary 我的课程页的单课程摘要
type EnrolledCourseSummary struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	TutorName         string       `json:"tutorName"`
	TotalLessons      int          `json:"totalLessons"`
	CompletedLessons  int          `json:"completedLessons"`
	ProgressPercent   float64      `json:"progressPercent"`
	CurrentLessonName *string      `json:"currentLessonName"`
	Badge             *model.Badge `json:"badge"`
	EnrolledAt        time.Time    `json:"enrolledAt"`
	Completed         bool         `json:"completed"`
}

// StudentLessonSummary 进度视图中的课时行
type StudentLessonSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LessonIndex   int    `json:"lessonIndex"`
	QuestionCount int    `json:"questionCount"`
	Status        string `json:"status"` // completed / current / locked
}

// StudentChapterDetail 进度视图中的章节
type StudentChapterDetail struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	ChapterIndex int                    `json:"chapterIndex"`
	Lessons      []StudentLessonSummary `json:"lessons"`
	Status       string                 `json:"status"` // completed / in_progress / locked
}

// StudentUnitDetail 进度视图中的单元
type StudentUnitDetail struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	UnitIndex        int                    `json:"unitIndex"`
	Chapters         []StudentChapterDetail `json:"chapters"`
	CompletedLessons int                    `json:"completedLessons"`
	TotalLessons     int                    `json:"totalLessons"`
}

// StudentCourseDetail 学生视角的课程进度视图
type StudentCourseDetail struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	TutorName        string              `json:"tutorName"`
	TotalLessons     int                 `json:"totalLessons"`
	CompletedLessons int                 `json:"completedLessons"`
	ProgressPercent  float64             `json:"progressPercent"`
	CurrentLessonID  *string             `json:"currentLessonId"`
	Units            []StudentUnitDetail `json:"units"`
	Badge            *model.Badge        `json:"badge"`
}

// StudentMCQOption 选项，不含正确性标记
type StudentMCQOption struct {
	ID         string `json:"id"`
	OptionText string `json:"optionText"`
}

// StudentQuestion 答题视角的题目，不暴露答案
type StudentQuestion struct {
	ID           string             `json:"id"`
	QuestionText string             `json:"questionText"`
	QuestionType model.QuestionType `json:"questionType"`
	MCQOptions   []StudentMCQOption `json:"mcqOptions,omitempty"`
}

// StudentLessonDetail 答题页的课时内容
type StudentLessonDetail struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Questions   []StudentQuestion        `json:"questions"`
	Attachments []model.LessonAttachment `json:"attachments"`
}

// CompleteLessonResult 完成课时的结果
type CompleteLessonResult struct {
	Message         string  `json:"message"`
	NextLessonID    *string `json:"nextLessonId"`
	CourseCompleted bool    `json:"courseCompleted"`
	StreakUpdated   bool    `json:"streakUpdated"`
	DailyStreak     int     `json:"dailyStreak"`
}

// InvalidateCatalogCache 课程发布/删除后清掉目录缓存，失败只影响时效性
func InvalidateCatalogCache(rdb *redis.Client) {
	if rdb == nil {
		return
	}
	rdb.Del(context.Background(), catalogCacheKey)
}

// BrowseCourses 返回全部已发布课程的摘要，结果整体走 Redis 缓存
func (s *StudentService) BrowseCourses() ([]BrowseCourseSummary, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var summaries []BrowseCourseSummary
			if json.Unmarshal([]byte(cached), &summaries) == nil {
				return summaries, nil
			}
		}
	}

	courses, err := s.CourseRepo.FindPublished()
	if err != nil {
		return nil, err
	}

	summaries := make([]BrowseCourseSummary, 0, len(courses))
	for i := range courses {
		course := &courses[i]

		chapterCount := 0
		for j := range course.Units {
			chapterCount += len(course.Units[j].Chapters)
		}

		tags := make([]TagDetail, 0, len(course.CourseTags))
		for _, ct := range course.CourseTags {
			tags = append(tags, TagDetail{ID: ct.Tag.ID, Name: ct.Tag.Name})
		}

		summaries = append(summaries, BrowseCourseSummary{
			ID:              course.ID,
			Name:            course.Name,
			Description:     course.Description,
			TutorName:       course.Tutor.FullName,
			UnitCount:       len(course.Units),
			ChapterCount:    chapterCount,
			LessonCount:     CountLessons(course),
			EnrollmentCount: len(course.Enrollments),
			Tags:            tags,
			Badge:           course.Badge,
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			s.Redis.Set(ctx, catalogCacheKey, payload, catalogCacheTTL)
		}
	}

	return summaries, nil
}

// Enroll 报名已发布课程，同时创建指向第一个课时的进度游标。
// 课程没有课时时游标三字段全空，等首次进度查询时惰性补齐。
func (s *StudentService) Enroll(userID, courseID string) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByIDWithTree(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotPublished
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     model.EnrollmentActive,
		EnrolledAt: time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if _, findErr := repository.FindEnrollment(tx, userID, courseID); findErr == nil {
			return util.ErrAlreadyEnrolled
		} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if createErr := tx.Create(enrollment).Error; createErr != nil {
			// 并发报名撞 (user, course) 唯一索引
			if _, findErr := repository.FindEnrollment(tx, userID, courseID); findErr == nil {
				return util.ErrAlreadyEnrolled
			}
			return createErr
		}

		progress := &model.CourseProgress{
			UserID:   userID,
			CourseID: courseID,
		}
		if first := FirstLesson(course); first != nil {
			progress.CurrentUnitID = &first.Unit.ID
			progress.CurrentChapterID = &first.Chapter.ID
			progress.CurrentLessonID = &first.Lesson.ID
		}
		return tx.Create(progress).Error
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// MyCourses 返回用户报名的全部课程及进度摘要，按报名时间倒序
func (s *StudentService) MyCourses(userID string) ([]EnrolledCourseSummary, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]EnrolledCourseSummary, 0, len(enrollments))
	for i := range enrollments {
		enrollment := &enrollments[i]
		course := &enrollment.Course

		totalLessons := CountLessons(course)
		completedCount, err := s.CompletionRepo.CountByUserAndCourse(userID, course.ID)
		if err != nil {
			return nil, err
		}

		progressPercent := 0.0
		if totalLessons > 0 {
			progressPercent = math.Round(float64(completedCount)/float64(totalLessons)*1000) / 10
		}

		var currentLessonName *string
		progress, err := s.ProgressRepo.FindByUserAndCourse(userID, course.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if progress != nil && progress.CurrentLessonID != nil {
			lesson, lessonErr := s.ContentRepo.FindLesson(*progress.CurrentLessonID)
			if lessonErr == nil {
				currentLessonName = &lesson.Name
			} else if !errors.Is(lessonErr, gorm.ErrRecordNotFound) {
				return nil, lessonErr
			}
		}

		summaries = append(summaries, EnrolledCourseSummary{
			ID:                course.ID,
			Name:              course.Name,
			Description:       course.Description,
			TutorName:         course.Tutor.FullName,
			TotalLessons:      totalLessons,
			CompletedLessons:  int(completedCount),
			ProgressPercent:   progressPercent,
			CurrentLessonName: currentLessonName,
			Badge:             course.Badge,
			EnrolledAt:        enrollment.EnrolledAt,
			Completed:         enrollment.Status == model.EnrollmentCompleted,
		})
	}
	return summaries, nil
}

// GetCourseDetail 学生进度视图。游标为空或指向已被删除的课时时，
// 在同一事务内修复为总顺序中第一个未完成的课时并落库。
func (s *StudentService) GetCourseDetail(userID, courseID string) (*StudentCourseDetail, error) {
	var (
		course    *model.Course
		progress  *model.CourseProgress
		completed map[string]bool
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, findErr := repository.FindEnrollment(tx, userID, courseID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return util.ErrNotEnrolled
			}
			return findErr
		}

		var txErr error
		course, txErr = repository.FindCourseWithTree(tx, courseID)
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return util.ErrCourseNotFound
			}
			return txErr
		}

		progress, txErr = repository.FindProgressForUpdate(tx, userID, courseID)
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return util.ErrNoProgress
			}
			return txErr
		}

		completed, txErr = repository.CompletedLessonIDs(tx, userID, courseID)
		if txErr != nil {
			return txErr
		}

		return repairCursor(tx, progress, course, completed)
	})
	if err != nil {
		return nil, err
	}

	return buildCourseDetail(course, progress, completed), nil
}

// repairCursor 惰性修复：游标为空，或指向的课时已不在当前内容树里
// （导师删除了它），就指向总顺序中第一个未完成的课时。没有可指的
// 课时时游标置空。修复结果持久化，后续读取不再重复计算。
func repairCursor(tx *gorm.DB, progress *model.CourseProgress, course *model.Course, completed map[string]bool) error {
	refs := AllLessonsOrdered(course)

	if progress.CurrentLessonID != nil {
		for i := range refs {
			if refs[i].Lesson.ID == *progress.CurrentLessonID {
				return nil
			}
		}
	}

	var target *LessonRef
	for i := range refs {
		if !completed[refs[i].Lesson.ID] {
			target = &refs[i]
			break
		}
	}

	if target == nil {
		if progress.CurrentLessonID == nil &&
			progress.CurrentChapterID == nil &&
			progress.CurrentUnitID == nil {
			return nil
		}
		progress.CurrentUnitID = nil
		progress.CurrentChapterID = nil
		progress.CurrentLessonID = nil
	} else {
		progress.CurrentUnitID = &target.Unit.ID
		progress.CurrentChapterID = &target.Chapter.ID
		progress.CurrentLessonID = &target.Lesson.ID
	}
	return tx.Save(progress).Error
}

func buildCourseDetail(course *model.Course, progress *model.CourseProgress, completed map[string]bool) *StudentCourseDetail {
	var currentLessonID string
	if progress.CurrentLessonID != nil {
		currentLessonID = *progress.CurrentLessonID
	}

	totalLessons := 0
	totalCompleted := 0
	units := make([]StudentUnitDetail, 0, len(course.Units))

	for _, unit := range sortedUnits(course) {
		unitCompleted := 0
		unitTotal := 0
		chapters := make([]StudentChapterDetail, 0, len(unit.Chapters))

		for _, chapter := range sortedChapters(unit) {
			lessons := make([]StudentLessonSummary, 0, len(chapter.Lessons))
			chapterHasCurrent := false
			chapterAllCompleted := true

			for _, lesson := range sortedLessons(chapter) {
				unitTotal++
				totalLessons++

				var status string
				switch {
				case completed[lesson.ID]:
					status = "completed"
					unitCompleted++
					totalCompleted++
				case lesson.ID == currentLessonID:
					status = "current"
					chapterHasCurrent = true
					chapterAllCompleted = false
				default:
					status = "locked"
					chapterAllCompleted = false
				}

				lessons = append(lessons, StudentLessonSummary{
					ID:            lesson.ID,
					Name:          lesson.Name,
					LessonIndex:   lesson.LessonIndex,
					QuestionCount: len(lesson.Questions),
					Status:        status,
				})
			}

			chapterStatus := "locked"
			switch {
			case len(lessons) == 0:
				// 空章节保持 locked
			case chapterAllCompleted:
				chapterStatus = "completed"
			case chapterHasCurrent || anyCompleted(lessons):
				chapterStatus = "in_progress"
			}

			chapters = append(chapters, StudentChapterDetail{
				ID:           chapter.ID,
				Name:         chapter.Name,
				ChapterIndex: chapter.ChapterIndex,
				Lessons:      lessons,
				Status:       chapterStatus,
			})
		}

		units = append(units, StudentUnitDetail{
			ID:               unit.ID,
			Name:             unit.Name,
			Description:      unit.Description,
			UnitIndex:        unit.UnitIndex,
			Chapters:         chapters,
			CompletedLessons: unitCompleted,
			TotalLessons:     unitTotal,
		})
	}

	progressPercent := 0.0
	if totalLessons > 0 {
		progressPercent = math.Round(float64(totalCompleted)/float64(totalLessons)*1000) / 10
	}

	return &StudentCourseDetail{
		ID:               course.ID,
		Name:             course.Name,
		Description:      course.Description,
		TutorName:        course.Tutor.FullName,
		TotalLessons:     totalLessons,
		CompletedLessons: totalCompleted,
		ProgressPercent:  progressPercent,
		CurrentLessonID:  progress.CurrentLessonID,
		Units:            units,
		Badge:            course.Badge,
	}
}

func anyCompleted(lessons []StudentLessonSummary) bool {
	for _, l := range lessons {
		if l.Status == "completed" {
			return true
		}
	}
	return false
}

// GetLesson 答题页内容。只有已完成或当前课时可访问，其余一律 locked。
// 题目不携带正确答案，mcq 只给选项文本。
func (s *StudentService) GetLesson(userID, courseID, lessonID string) (*StudentLessonDetail, error) {
	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	lesson, err := s.ContentRepo.FindLessonWithQuestions(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	ownerCourseID, err := s.ContentRepo.CourseIDOfLesson(lessonID)
	if err != nil {
		return nil, err
	}
	if ownerCourseID != courseID {
		return nil, util.ErrLessonNotInCourse
	}

	isCompleted, err := s.CompletionRepo.Exists(userID, lessonID)
	if err != nil {
		return nil, err
	}

	isCurrent := false
	progress, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if progress != nil && progress.CurrentLessonID != nil && *progress.CurrentLessonID == lessonID {
		isCurrent = true
	}

	if !isCompleted && !isCurrent {
		return nil, util.ErrLessonLocked
	}

	questions := make([]StudentQuestion, 0, len(lesson.Questions))
	for _, q := range lesson.Questions {
		sq := StudentQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
		}
		if q.QuestionType == model.QuestionMCQ {
			sq.MCQOptions = make([]StudentMCQOption, 0, len(q.MCQOptions))
			for _, opt := range q.MCQOptions {
				sq.MCQOptions = append(sq.MCQOptions, StudentMCQOption{
					ID:         opt.ID,
					OptionText: opt.OptionText,
				})
			}
		}
		questions = append(questions, sq)
	}

	return &StudentLessonDetail{
		ID:          lesson.ID,
		Name:        lesson.Name,
		Questions:   questions,
		Attachments: lesson.Attachments,
	}, nil
}

// CompleteLesson 记录课时完成并推进游标，整个流程一个事务。
//
// 客户端可以提交任意课时 ID，推进位置由该课时在总顺序中的位置决定；
// 课时已不在当前顺序中时按最后一课处理（课程完成）。重复提交同一课时
// 是无害的：不再次推进游标，返回当前游标状态，但照常触发连胜。
func (s *StudentService) CompleteLesson(userID, courseID, lessonID string) (*CompleteLessonResult, error) {
	result := &CompleteLessonResult{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		enrollment, txErr := repository.FindEnrollment(tx, userID, courseID)
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return util.ErrNotEnrolled
			}
			return txErr
		}

		progress, txErr := repository.FindProgressForUpdate(tx, userID, courseID)
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return util.ErrNoProgress
			}
			return txErr
		}

		alreadyCompleted, txErr := repository.CompletionExists(tx, userID, lessonID)
		if txErr != nil {
			return txErr
		}

		if alreadyCompleted {
			// 幂等：不重复推进，游标保持原位
			result.Message = "Lesson already completed"
			result.NextLessonID = progress.CurrentLessonID
			result.CourseCompleted = enrollment.Status == model.EnrollmentCompleted
		} else {
			completion := &model.LessonCompletion{
				UserID:   userID,
				LessonID: lessonID,
				CourseID: courseID,
			}
			if txErr = tx.Create(completion).Error; txErr != nil {
				return txErr
			}
			monitoring.LessonCompletionCounter.Inc()

			course, treeErr := repository.FindCourseWithTree(tx, courseID)
			if treeErr != nil {
				if errors.Is(treeErr, gorm.ErrRecordNotFound) {
					return util.ErrCourseNotFound
				}
				return treeErr
			}

			refs := AllLessonsOrdered(course)
			currentIdx := -1
			for i := range refs {
				if refs[i].Lesson.ID == lessonID {
					currentIdx = i
					break
				}
			}

			if currentIdx >= 0 && currentIdx+1 < len(refs) {
				next := refs[currentIdx+1]
				progress.CurrentUnitID = &next.Unit.ID
				progress.CurrentChapterID = &next.Chapter.ID
				progress.CurrentLessonID = &next.Lesson.ID
				result.Message = "Lesson completed"
				result.NextLessonID = &next.Lesson.ID
			} else {
				// 最后一课，或课时已被移出当前顺序：课程完成
				progress.CurrentUnitID = nil
				progress.CurrentChapterID = nil
				progress.CurrentLessonID = nil
				enrollment.Status = model.EnrollmentCompleted
				result.Message = "Course completed!"
				result.CourseCompleted = true

				if txErr = tx.Save(enrollment).Error; txErr != nil {
					return txErr
				}
			}

			if txErr = tx.Save(progress).Error; txErr != nil {
				return txErr
			}
		}

		streak, txErr := TouchStreak(tx, userID)
		if txErr != nil {
			return txErr
		}
		result.StreakUpdated = streak.Updated
		result.DailyStreak = streak.DailyStreak
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
