package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"devconnect/internal/models"
)

func newMockUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	return repo, mock, func() { db.Close() }
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		user := &models.User{
			Name:   "Test User",
			Email:  "test@example.com",
			Avatar: "https://www.gravatar.com/avatar/abc",
		}

		mock.ExpectExec("INSERT INTO users").
			WithArgs(
				sqlmock.AnyArg(), // user_id генерируется в репозитории
				"Test User",
				"test@example.com",
				sqlmock.AnyArg(), // password_hash
				"https://www.gravatar.com/avatar/abc",
				sqlmock.AnyArg(), // created_at
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирование email дает ErrDuplicateEmail", func(t *testing.T) {
		user := &models.User{
			Name:  "Test User",
			Email: "test@example.com",
		}

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("Пользователь найден", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"user_id", "name", "email", "password_hash", "avatar"}).
			AddRow("user-123", "Test User", "test@example.com", "hash", "avatar-url")

		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("test@example.com").
			WillReturnRows(rows)

		user, err := repo.GetUserByEmail(ctx, "test@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "user-123", user.UserID)
		assert.Equal(t, "Test User", user.Name)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail(ctx, "missing@example.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// Неизвестный email и неверный пароль возвращают одну и ту же ошибку
func TestUserRepository_VerifyPassword_NoLeak(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("Неизвестный email", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("unknown@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, "unknown@example.com", "whatever")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"user_id", "name", "email", "password_hash", "avatar"}).
			AddRow("user-123", "Test User", "known@example.com", string(hash), "")

		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("known@example.com").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "known@example.com", "wrong-password")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Верный пароль", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"user_id", "name", "email", "password_hash", "avatar"}).
			AddRow("user-123", "Test User", "known@example.com", string(hash), "")

		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("known@example.com").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "known@example.com", "correct-password")

		assert.NoError(t, err)
		assert.Equal(t, "user-123", user.UserID)
	})
}

func TestUserRepository_UpdateAvatar(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("Аватар обновлен", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET avatar").
			WithArgs("http://localhost:9000/avatars/a.png", "user-123").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateAvatar(ctx, "user-123", "http://localhost:9000/avatars/a.png")

		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET avatar").
			WithArgs("url", "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateAvatar(ctx, "missing", "url")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	repo, mock, closeDB := newMockUserRepo(t)
	defer closeDB()

	ctx := context.Background()

	t.Run("Пользователь удален", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users WHERE user_id").
			WithArgs("user-123").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteUser(ctx, "user-123")

		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users WHERE user_id").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteUser(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
