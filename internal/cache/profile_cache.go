package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"devconnect/internal/config"
	"devconnect/internal/models"
)

const profileListKey = "profiles:all"

type ProfileCache interface {
	GetProfiles(ctx context.Context) ([]models.Profile, error)
	SetProfiles(ctx context.Context, profiles []models.Profile) error
	Invalidate(ctx context.Context) error
}

type profileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	return client, nil
}

func NewProfileCache(client *redis.Client, ttl time.Duration) ProfileCache {
	return &profileCache{client: client, ttl: ttl}
}

// GetProfiles возвращает (nil, nil) при промахе кеша
func (c *profileCache) GetProfiles(ctx context.Context) ([]models.Profile, error) {
	data, err := c.client.Get(ctx, profileListKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения из кеша: %w", err)
	}

	var profiles []models.Profile
	if err := json.Unmarshal([]byte(data), &profiles); err != nil {
		return nil, fmt.Errorf("ошибка десериализации кеша профилей: %w", err)
	}

	return profiles, nil
}

func (c *profileCache) SetProfiles(ctx context.Context, profiles []models.Profile) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("ошибка сериализации профилей: %w", err)
	}

	return c.client.Set(ctx, profileListKey, data, c.ttl).Err()
}

func (c *profileCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, profileListKey).Err()
}
