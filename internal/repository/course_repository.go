package repository

import (
	"fun2learn_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDWithTree 加载课程及其完整内容树。
// 兄弟顺序不依赖这里的返回顺序，遍历方统一按 index 排序。
func (r *CourseRepository) FindByIDWithTree(id string) (*model.Course, error) {
	return FindCourseWithTree(r.DB, id)
}

// FindCourseWithTree 包级版本，供调用方在自己的事务内复用
func FindCourseWithTree(db *gorm.DB, id string) (*model.Course, error) {
	var course model.Course
	err := db.
		Preload("Units.Chapters.Lessons.Questions").
		Preload("Badge").
		Preload("CourseTags.Tag").
		Preload("Tutor").
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByTutor(tutorID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Units.Chapters.Lessons").
		Preload("Badge").
		Preload("CourseTags.Tag").
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Units.Chapters.Lessons").
		Preload("Badge").
		Preload("CourseTags.Tag").
		Preload("Tutor").
		Preload("Enrollments").
		Where("status = ?", model.CoursePublished).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(course *model.Course) error {
	return r.DB.Delete(course).Error
}
