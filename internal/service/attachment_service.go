package service

import (
	"bytes"
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

// 附件允许的 MIME 类型前缀，按文件内容嗅探，不信任客户端声明
var allowedAttachmentTypes = []string{
	"image/", "video/", "audio/", "text/",
	"application/pdf", "application/zip", "application/octet-stream",
}

// AttachmentService 课时附件：上传到对象存储并在库里记一行元数据
type AttachmentService struct {
	AttachmentRepo *repository.AttachmentRepository
	ContentRepo    *repository.ContentRepository
	CourseRepo     *repository.CourseRepository
	Storage        *StorageService
}

func NewAttachmentService(
	attachmentRepo *repository.AttachmentRepository,
	contentRepo *repository.ContentRepository,
	courseRepo *repository.CourseRepository,
	storage *StorageService,
) *AttachmentService {
	return &AttachmentService{
		AttachmentRepo: attachmentRepo,
		ContentRepo:    contentRepo,
		CourseRepo:     courseRepo,
		Storage:        storage,
	}
}

func (s *AttachmentService) checkLessonOwner(tutorID, lessonID string) error {
	courseID, err := s.ContentRepo.CourseIDOfLesson(lessonID)
	if err != nil {
		return err
	}
	if courseID == "" {
		return util.ErrLessonNotFound
	}
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

func (s *AttachmentService) Upload(ctx context.Context, tutorID, lessonID, fileName string, reader io.Reader, size int64, contentType string) (*model.LessonAttachment, error) {
	if err := s.checkLessonOwner(tutorID, lessonID); err != nil {
		return nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	head = head[:n]

	detected, err := util.ValidateMimeType(bytes.NewReader(head), allowedAttachmentTypes)
	if err != nil {
		return nil, util.ErrInvalidFileType
	}
	contentType = detected
	// 嗅探消耗掉的前 512 字节拼回去
	reader = io.MultiReader(bytes.NewReader(head), reader)

	objectKey := fmt.Sprintf("lessons/%s/%s%s", lessonID, model.GenerateUUID(), filepath.Ext(fileName))
	url, err := s.Storage.Upload(ctx, objectKey, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	attachment := &model.LessonAttachment{
		FileName:  fileName,
		ObjectKey: objectKey,
		URL:       url,
		LessonID:  lessonID,
	}
	if err := s.AttachmentRepo.Create(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *AttachmentService) ListByLesson(tutorID, lessonID string) ([]model.LessonAttachment, error) {
	if err := s.checkLessonOwner(tutorID, lessonID); err != nil {
		return nil, err
	}
	return s.AttachmentRepo.FindByLesson(lessonID)
}

// Delete 先删存储对象再删记录，存储删除失败不阻塞记录删除
func (s *AttachmentService) Delete(ctx context.Context, tutorID, attachmentID string) error {
	attachment, err := s.AttachmentRepo.FindByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAttachmentNotFound
		}
		return err
	}
	if err := s.checkLessonOwner(tutorID, attachment.LessonID); err != nil {
		return err
	}

	_ = s.Storage.Delete(ctx, attachment.ObjectKey)
	return s.AttachmentRepo.Delete(attachment)
}
