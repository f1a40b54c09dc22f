package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/internal/models"
)

func newMockProfileRepo(t *testing.T) (ProfileRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewProfileRepository(sqlxDB)

	return repo, mock, func() { db.Close() }
}

func profileColumns() []string {
	return []string{
		"profile_id", "user_id", "company", "website", "location", "status",
		"bio", "github_username", "skills", "social", "experience",
		"user_name", "user_avatar",
	}
}

func TestProfileRepository_Upsert(t *testing.T) {
	repo, mock, closeDB := newMockProfileRepo(t)
	defer closeDB()

	ctx := context.Background()

	profile := &models.Profile{
		UserID: "user-123",
		Status: "Developer",
		Skills: models.StringList{"Go", "SQL"},
	}

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(ctx, profile)

	assert.NoError(t, err)
	assert.NotEmpty(t, profile.ProfileID)
	assert.False(t, profile.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByUserID(t *testing.T) {
	repo, mock, closeDB := newMockProfileRepo(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("Профиль с JSONB-полями", func(t *testing.T) {
		rows := sqlmock.NewRows(profileColumns()).
			AddRow(
				"profile-1", "user-123", "Acme", "https://acme.dev", "Moscow",
				"Developer", "bio text", "octocat",
				[]byte(`["Go","SQL","Docker"]`),
				[]byte(`{"twitter":"https://twitter.com/acme"}`),
				[]byte(`[{"experienceId":"e2","title":"Senior","company":"Acme","from":"2024","current":true},{"experienceId":"e1","title":"Junior","company":"Acme","from":"2021"}]`),
				"Alice", "avatar-url",
			)

		mock.ExpectQuery("FROM profiles p").
			WithArgs("user-123").
			WillReturnRows(rows)

		profile, err := repo.GetByUserID(ctx, "user-123")

		require.NoError(t, err)
		assert.Equal(t, models.StringList{"Go", "SQL", "Docker"}, profile.Skills)
		assert.Equal(t, "https://twitter.com/acme", profile.Social.Twitter)
		assert.Equal(t, "Alice", profile.UserName)

		// свежая запись опыта первая
		require.Len(t, profile.Experience, 2)
		assert.Equal(t, "Senior", profile.Experience[0].Title)
		assert.True(t, profile.Experience[0].Current)
	})

	t.Run("Профиль не найден", func(t *testing.T) {
		mock.ExpectQuery("FROM profiles p").
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		profile, err := repo.GetByUserID(ctx, "nobody")

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProfileRepository_GetAll(t *testing.T) {
	repo, mock, closeDB := newMockProfileRepo(t)
	defer closeDB()

	ctx := context.Background()

	rows := sqlmock.NewRows(profileColumns()).
		AddRow("p1", "u1", "", "", "", "Developer", "", "",
			[]byte(`["Go"]`), []byte(`{}`), []byte(`[]`), "Alice", "a1").
		AddRow("p2", "u2", "", "", "", "Manager", "", "",
			[]byte(`["Jira"]`), []byte(`{}`), []byte(`[]`), "Bob", "a2")

	mock.ExpectQuery("FROM profiles p").
		WillReturnRows(rows)

	profiles, err := repo.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Alice", profiles[0].UserName)
	assert.Equal(t, "Bob", profiles[1].UserName)
}

func TestProfileRepository_DeleteByUserID(t *testing.T) {
	repo, mock, closeDB := newMockProfileRepo(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM profiles WHERE user_id").
		WithArgs("user-123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteByUserID(context.Background(), "user-123")

	assert.NoError(t, err)
}
