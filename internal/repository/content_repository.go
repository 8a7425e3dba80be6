package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

// ContentRepository 管理课程内容树的单元/章节/课时记录
type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) CreateUnit(unit *model.Unit) error {
	return r.DB.Create(unit).Error
}

func (r *ContentRepository) FindUnit(id string) (*model.Unit, error) {
	var unit model.Unit
	err := r.DB.Where("id = ?", id).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *ContentRepository) SaveUnit(unit *model.Unit) error {
	return r.DB.Save(unit).Error
}

func (r *ContentRepository) DeleteUnit(unit *model.Unit) error {
	return r.DB.Select("Chapters.Lessons").Delete(unit).Error
}

func (r *ContentRepository) CreateChapter(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ContentRepository) FindChapter(id string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.Where("id = ?", id).First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *ContentRepository) SaveChapter(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

func (r *ContentRepository) DeleteChapter(chapter *model.Chapter) error {
	return r.DB.Select("Lessons").Delete(chapter).Error
}

func (r *ContentRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *ContentRepository) FindLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("id = ?", id).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindLessonWithQuestions 加载课时与练习题（含选项和文本答案）
func (r *ContentRepository) FindLessonWithQuestions(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Preload("Questions.MCQOptions").
		Preload("Questions.TextAnswer").
		Preload("Attachments").
		Where("id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *ContentRepository) SaveLesson(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *ContentRepository) DeleteLesson(lesson *model.Lesson) error {
	return r.DB.Delete(lesson).Error
}

// CourseIDOfLesson 沿 chapter→unit 反查课时所属课程
func (r *ContentRepository) CourseIDOfLesson(lessonID string) (string, error) {
	var courseID string
	err := r.DB.Model(&model.Lesson{}).
		Select("units.course_id").
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Joins("JOIN units ON units.id = chapters.unit_id").
		Where("lessons.id = ?", lessonID).
		Scan(&courseID).Error
	return courseID, err
}
