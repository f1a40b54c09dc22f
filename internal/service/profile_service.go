package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/repository"
)

type ProfileService interface {
	UpsertProfile(ctx context.Context, req repository.UpsertProfileRequest) (*models.Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetAllProfiles(ctx context.Context) ([]models.Profile, error)
	AddExperience(ctx context.Context, req repository.AddExperienceRequest) (*models.Profile, error)
	DeleteExperience(ctx context.Context, userID, experienceID string) (*models.Profile, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type profileService struct {
	profileRepo  repository.ProfileRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	profileCache cache.ProfileCache
}

func NewProfileService(profileRepo repository.ProfileRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, profileCache cache.ProfileCache) ProfileService {
	return &profileService{
		profileRepo:  profileRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		profileCache: profileCache,
	}
}

// UpsertProfile обновляет только переданные поля, остальные сохраняют
// прежние значения. Повторный вызов с теми же полями дает тот же документ.
func (s *profileService) UpsertProfile(ctx context.Context, req repository.UpsertProfileRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		profile = &models.Profile{UserID: req.UserID}
	}

	if req.Company != "" {
		profile.Company = req.Company
	}
	if req.Website != "" {
		profile.Website = req.Website
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Status != "" {
		profile.Status = req.Status
	}
	if req.GithubUsername != "" {
		profile.GithubUsername = req.GithubUsername
	}
	if req.Skills != "" {
		profile.Skills = ParseSkills(req.Skills)
	}

	if req.Youtube != "" {
		profile.Social.Youtube = req.Youtube
	}
	if req.Twitter != "" {
		profile.Social.Twitter = req.Twitter
	}
	if req.Facebook != "" {
		profile.Social.Facebook = req.Facebook
	}
	if req.Linkedin != "" {
		profile.Social.Linkedin = req.Linkedin
	}
	if req.Instagram != "" {
		profile.Social.Instagram = req.Instagram
	}

	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return s.profileRepo.GetByUserID(ctx, req.UserID)
}

func (s *profileService) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *profileService) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	if s.profileCache != nil {
		cached, err := s.profileCache.GetProfiles(ctx)
		if err != nil {
			log.Printf("Внимание: ошибка чтения кеша профилей: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.profileCache != nil {
		if err := s.profileCache.SetProfiles(ctx, profiles); err != nil {
			log.Printf("Внимание: ошибка записи кеша профилей: %v", err)
		}
	}

	return profiles, nil
}

// AddExperience добавляет запись в начало списка, самые свежие всегда первые
func (s *profileService) AddExperience(ctx context.Context, req repository.AddExperienceRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	experience := models.Experience{
		ExperienceID: uuid.New().String(),
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile.Experience = append(models.ExperienceList{experience}, profile.Experience...)

	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return profile, nil
}

func (s *profileService) DeleteExperience(ctx context.Context, userID, experienceID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := make(models.ExperienceList, 0, len(profile.Experience))
	for _, exp := range profile.Experience {
		if exp.ExperienceID != experienceID {
			filtered = append(filtered, exp)
		}
	}

	// отсутствующий experienceId не ошибка, удаление идемпотентно
	profile.Experience = filtered

	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return profile, nil
}

// DeleteAccount каскадно удаляет посты, профиль и пользователя.
// Межтабличной транзакции нет, порядок выбран так, чтобы частичный
// сбой не оставлял постов и профилей без владельца.
func (s *profileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.postRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("ошибка при удалении постов пользователя: %w", err)
	}

	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("ошибка при удалении профиля: %w", err)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.invalidateCache(ctx)

	return nil
}

func (s *profileService) invalidateCache(ctx context.Context) {
	if s.profileCache == nil {
		return
	}
	if err := s.profileCache.Invalidate(ctx); err != nil {
		log.Printf("Внимание: не удалось сбросить кеш профилей: %v", err)
	}
}

// ParseSkills разбирает строку навыков через запятую в упорядоченный
// список, пробелы обрезаются, пустые элементы отбрасываются
func ParseSkills(skills string) models.StringList {
	parts := strings.Split(skills, ",")
	result := make(models.StringList, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
