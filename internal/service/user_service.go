package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"fun2learn_backend/internal/model"
	"fun2learn_backend/internal/repository"
	"fun2learn_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) UpdateProfile(userID, fullName, gender string, birthdate *time.Time) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if gender != "" {
		user.Gender = gender
	}
	if birthdate != nil {
		user.Birthdate = birthdate
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(ctx context.Context, userID, fileName string, reader io.Reader, size int64, contentType string) (*model.User, error) {
	if !util.IsImage(contentType) {
		return nil, util.ErrInvalidFileType
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("avatars/%s%s", userID, filepath.Ext(fileName))
	url, err := s.Storage.Upload(ctx, objectKey, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
