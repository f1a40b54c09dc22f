package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devconnect/internal/models"
)

type profileRepository struct {
	db *sqlx.DB
}

type UpsertProfileRequest struct {
	UserID         string `json:"-"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type AddExperienceRequest struct {
	UserID      string `json:"-"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert записывает профиль целиком, ключ уникальности user_id.
// Разреженное обновление (только переданные поля) собирает сервис
// до вызова, здесь документ сохраняется как есть.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	if profile.ProfileID == "" {
		profile.ProfileID = uuid.New().String()
	}
	profile.UpdatedAt = time.Now()

	query := `
		INSERT INTO profiles
		(profile_id, user_id, company, website, location, status, bio,
		 github_username, skills, social, experience, updated_at)
		VALUES
		(:profile_id, :user_id, :company, :website, :location, :status, :bio,
		 :github_username, :skills, :social, :experience, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении профиля: %w", err)
	}

	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile

	query := `
		SELECT p.*, u.name AS user_name, u.avatar AS user_avatar
		FROM profiles p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.user_id = $1
	`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile

	query := `
		SELECT p.*, u.name AS user_name, u.avatar AS user_avatar
		FROM profiles p
		JOIN users u ON u.user_id = p.user_id
		ORDER BY p.updated_at DESC
	`

	err := r.db.SelectContext(ctx, &profiles, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении профилей: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM profiles WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении профиля: %w", err)
	}

	return nil
}
