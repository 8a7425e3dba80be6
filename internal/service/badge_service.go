package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"

	"gorm.io/gorm"
)

// BadgeService 课程完成徽章。icon 徽章只存图标名，image 徽章
// 先把图片传到对象存储再记 URL。
type BadgeService struct {
	BadgeRepo  *repository.BadgeRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewBadgeService(badgeRepo *repository.BadgeRepository, courseRepo *repository.CourseRepository, storage *StorageService) *BadgeService {
	return &BadgeService{
		BadgeRepo:  badgeRepo,
		CourseRepo: courseRepo,
		Storage:    storage,
	}
}

func (s *BadgeService) checkOwner(tutorID, courseID string) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if course.TutorID != tutorID {
		return util.ErrNotCourseOwner
	}
	return nil
}

func (s *BadgeService) GetCourseBadge(courseID string) (*model.Badge, error) {
	badge, err := s.BadgeRepo.FindByCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return badge, nil
}

func (s *BadgeService) CreateIconBadge(tutorID, courseID, name, iconName string) (*model.Badge, error) {
	if err := s.checkOwner(tutorID, courseID); err != nil {
		return nil, err
	}

	badge := &model.Badge{
		Name:      name,
		BadgeType: model.BadgeIcon,
		IconName:  iconName,
		CourseID:  courseID,
	}
	if err := s.BadgeRepo.Upsert(badge); err != nil {
		return nil, err
	}
	return badge, nil
}

func (s *BadgeService) CreateImageBadge(ctx context.Context, tutorID, courseID, name, fileName string, reader io.Reader, size int64, contentType string) (*model.Badge, error) {
	if err := s.checkOwner(tutorID, courseID); err != nil {
		return nil, err
	}
	if !util.IsImage(contentType) {
		return nil, util.ErrInvalidFileType
	}

	objectKey := fmt.Sprintf("badges/%s/%s%s", courseID, model.GenerateUUID(), filepath.Ext(fileName))
	url, err := s.Storage.Upload(ctx, objectKey, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	badge := &model.Badge{
		Name:      name,
		BadgeType: model.BadgeImage,
		ImageURL:  url,
		CourseID:  courseID,
	}
	if err := s.BadgeRepo.Upsert(badge); err != nil {
		return nil, err
	}
	return badge, nil
}
