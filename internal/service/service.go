package service

import (
	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/repository"
	"devconnect/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Profile ProfileService
	Post    PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, profileCache cache.ProfileCache) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User, storage, profileCache),
		Profile: NewProfileService(rep.Profile, rep.Post, rep.User, profileCache),
		Post:    NewPostService(rep.Post, rep.User),
	}
}
