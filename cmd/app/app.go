package app

import (
	"log"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/repository"
	"devconnect/internal/service"
	"devconnect/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// connection Redis, кеш не критичен для работы сервиса
	var profileCache cache.ProfileCache
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Внимание: Redis недоступен, кеш профилей отключен: %v", err)
	} else {
		profileCache = cache.NewProfileCache(redisClient, cfg.Redis.CacheTTL)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, profileCache)

	return db, services
}
