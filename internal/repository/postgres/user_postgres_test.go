package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"dataroom/internal/model"
)

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	user := &model.User{
		ID:           "user-id",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "is_active", "created_at"}).
		AddRow(user.ID, user.Email, user.PasswordHash, user.IsActive, user.CreatedAt)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.IsActive, user.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, user)

	assert.NoError(t, err)
	assert.Equal(t, user.Email, result.Email)
	assert.True(t, result.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "is_active", "created_at"}).
			AddRow("user-id", "alice@example.com", "$2a$10$hash", true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		user, err := repo.FindByEmail(ctx, "alice@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "user-id", user.ID)
	})

	t.Run("absent yields nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.FindByID(ctx, "missing")

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
