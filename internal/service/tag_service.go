package service

import (
	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"
)

// TagService 标签查询与课程标签维护
type TagService struct {
	TagRepo    *repository.TagRepository
	CourseRepo *repository.CourseRepository
}

func NewTagService(tagRepo *repository.TagRepository, courseRepo *repository.CourseRepository) *TagService {
	return &TagService{
		TagRepo:    tagRepo,
		CourseRepo: courseRepo,
	}
}

func (s *TagService) ListTags() ([]model.Tag, error) {
	return s.TagRepo.ListAll()
}

func (s *TagService) CourseTags(courseID string) ([]model.CourseTag, error) {
	return s.TagRepo.FindByCourse(courseID)
}

// SaveCourseTags 整体替换课程标签。提交的标签必须都存在，
// 课程必须属于当前导师。
func (s *TagService) SaveCourseTags(tutorID, courseID string, tagIDs []string) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return util.ErrCourseNotFound
	}
	if course.TutorID != tutorID {
		return util.ErrNotCourseOwner
	}

	if len(tagIDs) > 0 {
		tags, err := s.TagRepo.FindByIDs(tagIDs)
		if err != nil {
			return err
		}
		if len(tags) != len(tagIDs) {
			return util.ErrTagNotFound
		}
	}

	return s.TagRepo.ReplaceCourseTags(courseID, tagIDs)
}
