package service

import (
	"context"
	"io"
	"log"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/storage"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error)
}

type userService struct {
	userRepo     repository.UserRepository
	storage      storage.Storage
	profileCache cache.ProfileCache
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, profileCache cache.ProfileCache) UserService {
	return &userService{
		userRepo:     userRepo,
		storage:      storage,
		profileCache: profileCache,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UploadAvatar кладет файл в MinIO и заменяет gravatar-URL пользователя.
// Списки профилей отдают аватар через join, поэтому кеш сбрасывается.
func (s *userService) UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	objectName, avatarURL, err := s.storage.UploadAvatar(ctx, userID, fileName, file, size)
	if err != nil {
		return "", err
	}

	err = s.userRepo.UpdateAvatar(ctx, userID, avatarURL)
	if err != nil {
		// запись в БД не удалась, подчищаем загруженный объект
		if delErr := s.storage.DeleteAvatar(ctx, objectName); delErr != nil {
			log.Printf("Внимание: не удалось удалить аватар из MinIO: %v", delErr)
		}
		return "", err
	}

	if s.profileCache != nil {
		if err := s.profileCache.Invalidate(ctx); err != nil {
			log.Printf("Внимание: не удалось сбросить кеш профилей: %v", err)
		}
	}

	return avatarURL, nil
}
