package service

import (
	"errors"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CourseService 导师侧课程创作：课程/单元/章节/课时/题目的增删改，
// 以及发布。所有写操作先做归属校验，课程只能由创建它的导师修改。
type CourseService struct {
	Redis        *redis.Client
	CourseRepo   *repository.CourseRepository
	ContentRepo  *repository.ContentRepository
	QuestionRepo *repository.QuestionRepository
	TagRepo      *repository.TagRepository
	BadgeRepo    *repository.BadgeRepository
}

func NewCourseService(
	rdb *redis.Client,
	courseRepo *repository.CourseRepository,
	contentRepo *repository.ContentRepository,
	questionRepo *repository.QuestionRepository,
	tagRepo *repository.TagRepository,
	badgeRepo *repository.BadgeRepository,
) *CourseService {
	return &CourseService{
		Redis:        rdb,
		CourseRepo:   courseRepo,
		ContentRepo:  contentRepo,
		QuestionRepo: questionRepo,
		TagRepo:      tagRepo,
		BadgeRepo:    badgeRepo,
	}
}

// ownedCourse 加载课程并校验归属
func (s *CourseService) ownedCourse(tutorID, courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.TutorID != tutorID {
		return nil, util.ErrNotCourseOwner
	}
	return course, nil
}

// ownerOfLesson 沿内容树反查课时归属的课程并校验归属
func (s *CourseService) ownerOfLesson(tutorID, lessonID string) (*model.Course, error) {
	courseID, err := s.ContentRepo.CourseIDOfLesson(lessonID)
	if err != nil {
		return nil, err
	}
	if courseID == "" {
		return nil, util.ErrLessonNotFound
	}
	return s.ownedCourse(tutorID, courseID)
}

func (s *CourseService) CreateCourse(tutorID, name, description string) (*model.Course, error) {
	course := &model.Course{
		Name:        name,
		Description: description,
		Status:      model.CourseDraft,
		TutorID:     tutorID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListCourses(tutorID string) ([]model.Course, error) {
	return s.CourseRepo.FindByTutor(tutorID)
}

// GetCourse 导师视角的课程详情，带完整内容树
func (s *CourseService) GetCourse(tutorID, courseID string) (*model.Course, error) {
	if _, err := s.ownedCourse(tutorID, courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindByIDWithTree(courseID)
}

func (s *CourseService) UpdateCourse(tutorID, courseID, name, description string) (*model.Course, error) {
	course, err := s.ownedCourse(tutorID, courseID)
	if err != nil {
		return nil, err
	}
	course.Name = name
	course.Description = description
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	if course.Status == model.CoursePublished {
		InvalidateCatalogCache(s.Redis)
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(tutorID, courseID string) error {
	course, err := s.ownedCourse(tutorID, courseID)
	if err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(course); err != nil {
		return err
	}
	InvalidateCatalogCache(s.Redis)
	return nil
}

// Publish 发布课程。内容树至少要有一个课时，发布后学生才可见、可报名。
// 重复发布报错，发布成功后课程目录缓存失效。
func (s *CourseService) Publish(tutorID, courseID string) error {
	if _, err := s.ownedCourse(tutorID, courseID); err != nil {
		return err
	}

	course, err := s.CourseRepo.FindByIDWithTree(courseID)
	if err != nil {
		return err
	}
	if course.Status == model.CoursePublished {
		return util.ErrCourseAlreadyPublished
	}
	if CountLessons(course) == 0 {
		return util.ErrCourseHasNoLessons
	}

	course.Status = model.CoursePublished
	if err := s.CourseRepo.Update(course); err != nil {
		return err
	}
	InvalidateCatalogCache(s.Redis)
	return nil
}

func (s *CourseService) AddUnit(tutorID, courseID, name, description string, unitIndex int) (*model.Unit, error) {
	if _, err := s.ownedCourse(tutorID, courseID); err != nil {
		return nil, err
	}
	unit := &model.Unit{
		Name:        name,
		Description: description,
		UnitIndex:   unitIndex,
		CourseID:    courseID,
	}
	if err := s.ContentRepo.CreateUnit(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *CourseService) EditUnit(tutorID, unitID, name, description string, unitIndex int) (*model.Unit, error) {
	unit, err := s.ContentRepo.FindUnit(unitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(tutorID, unit.CourseID); err != nil {
		return nil, err
	}
	unit.Name = name
	unit.Description = description
	unit.UnitIndex = unitIndex
	if err := s.ContentRepo.SaveUnit(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *CourseService) DeleteUnit(tutorID, unitID string) error {
	unit, err := s.ContentRepo.FindUnit(unitID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(tutorID, unit.CourseID); err != nil {
		return err
	}
	return s.ContentRepo.DeleteUnit(unit)
}

func (s *CourseService) AddChapter(tutorID, unitID, name string, chapterIndex int) (*model.Chapter, error) {
	unit, err := s.ContentRepo.FindUnit(unitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(tutorID, unit.CourseID); err != nil {
		return nil, err
	}
	chapter := &model.Chapter{
		Name:         name,
		ChapterIndex: chapterIndex,
		UnitID:       unitID,
	}
	if err := s.ContentRepo.CreateChapter(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CourseService) EditChapter(tutorID, chapterID, name string, chapterIndex int) (*model.Chapter, error) {
	chapter, err := s.ContentRepo.FindChapter(chapterID)
	if err != nil {
		return nil, err
	}
	unit, err := s.ContentRepo.FindUnit(chapter.UnitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(tutorID, unit.CourseID); err != nil {
		return nil, err
	}
	chapter.Name = name
	chapter.ChapterIndex = chapterIndex
	if err := s.ContentRepo.SaveChapter(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CourseService) DeleteChapter(tutorID, chapterID string) error {
	chapter, err := s.ContentRepo.FindChapter(chapterID)
	if err != nil {
		return err
	}
	unit, err := s.ContentRepo.FindUnit(chapter.UnitID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(tutorID, unit.CourseID); err != nil {
		return err
	}
	return s.ContentRepo.DeleteChapter(chapter)
}

func (s *CourseService) AddLesson(tutorID, chapterID, name string, lessonIndex int) (*model.Lesson, error) {
	chapter, err := s.ContentRepo.FindChapter(chapterID)
	if err != nil {
		return nil, err
	}
	unit, err := s.ContentRepo.FindUnit(chapter.UnitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(tutorID, unit.CourseID); err != nil {
		return nil, err
	}
	lesson := &model.Lesson{
		Name:        name,
		LessonIndex: lessonIndex,
		ChapterID:   chapterID,
	}
	if err := s.ContentRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) EditLesson(tutorID, lessonID, name string, lessonIndex int) (*model.Lesson, error) {
	if _, err := s.ownerOfLesson(tutorID, lessonID); err != nil {
		return nil, err
	}
	lesson, err := s.ContentRepo.FindLesson(lessonID)
	if err != nil {
		return nil, err
	}
	lesson.Name = name
	lesson.LessonIndex = lessonIndex
	if err := s.ContentRepo.SaveLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson 删除课时。已指向该课时的学生游标不在这里修复，
// 留给下一次进度查询惰性处理。
func (s *CourseService) DeleteLesson(tutorID, lessonID string) error {
	if _, err := s.ownerOfLesson(tutorID, lessonID); err != nil {
		return err
	}
	lesson, err := s.ContentRepo.FindLesson(lessonID)
	if err != nil {
		return err
	}
	return s.ContentRepo.DeleteLesson(lesson)
}

// MCQOptionInput 选择题选项输入
type MCQOptionInput struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

func (s *CourseService) AddMCQQuestion(tutorID, lessonID, questionText string, options []MCQOptionInput) (*model.Question, error) {
	if _, err := s.ownerOfLesson(tutorID, lessonID); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuestionText: questionText,
		QuestionType: model.QuestionMCQ,
		LessonID:     lessonID,
	}
	for _, opt := range options {
		question.MCQOptions = append(question.MCQOptions, model.MCQOption{
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
		})
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CourseService) AddTextQuestion(tutorID, lessonID, questionText, correctAnswer string, casingMatters bool) (*model.Question, error) {
	if _, err := s.ownerOfLesson(tutorID, lessonID); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuestionText: questionText,
		QuestionType: model.QuestionText,
		LessonID:     lessonID,
		TextAnswer: &model.TextAnswer{
			CorrectAnswer: correctAnswer,
			CasingMatters: casingMatters,
		},
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CourseService) EditMCQQuestion(tutorID, questionID, questionText string, options []MCQOptionInput) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.ownerOfLesson(tutorID, question.LessonID); err != nil {
		return nil, err
	}

	question.QuestionText = questionText
	// 旧选项整组替换，避免 Save 顺带回写已加载的关联
	question.MCQOptions = nil
	if err := s.QuestionRepo.Save(question); err != nil {
		return nil, err
	}

	newOptions := make([]model.MCQOption, 0, len(options))
	for _, opt := range options {
		newOptions = append(newOptions, model.MCQOption{
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
		})
	}
	if err := s.QuestionRepo.ReplaceMCQOptions(questionID, newOptions); err != nil {
		return nil, err
	}
	return s.QuestionRepo.FindByID(questionID)
}

func (s *CourseService) EditTextQuestion(tutorID, questionID, questionText, correctAnswer string, casingMatters bool) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.ownerOfLesson(tutorID, question.LessonID); err != nil {
		return nil, err
	}

	question.QuestionText = questionText
	if question.TextAnswer == nil {
		question.TextAnswer = &model.TextAnswer{QuestionID: questionID}
	}
	question.TextAnswer.CorrectAnswer = correctAnswer
	question.TextAnswer.CasingMatters = casingMatters
	if err := s.QuestionRepo.Save(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CourseService) DeleteQuestion(tutorID, questionID string) error {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	if _, err := s.ownerOfLesson(tutorID, question.LessonID); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(question)
}

// LessonQuestions 导师视角的课时题目，含答案与正确选项
func (s *CourseService) LessonQuestions(tutorID, lessonID string) (*model.Lesson, error) {
	if _, err := s.ownerOfLesson(tutorID, lessonID); err != nil {
		return nil, err
	}
	lesson, err := s.ContentRepo.FindLessonWithQuestions(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}
