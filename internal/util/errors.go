package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrInvalidFileType    = errors.New("invalid file type")

	ErrNotCourseOwner         = errors.New("not the owner of this course")
	ErrCourseNotPublished     = errors.New("course is not published")
	ErrCourseAlreadyPublished = errors.New("course is already published")
	ErrCourseHasNoLessons     = errors.New("course must contain at least one lesson before publishing")
	ErrAlreadyEnrolled        = errors.New("already enrolled in this course")
	ErrNotEnrolled            = errors.New("not enrolled in this course")
	ErrLessonLocked           = errors.New("lesson is locked")
	ErrLessonNotInCourse      = errors.New("lesson does not belong to this course")
	ErrNoProgress             = errors.New("no progress record found")
)
