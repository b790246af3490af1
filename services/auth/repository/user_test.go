package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradiptha/lokapasar/internal/pkg/models"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
)

func setupUserRepoTest(t *testing.T) (*AuthRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "pgx")
	repo := NewAuthRepo(testOTPConfig(), sqlxDB, nil)
	return repo, mock
}

func userRows(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password", "role", "created_at", "updated_at", "is_active",
	}).AddRow(
		user.ID, user.Name, user.Email, user.Password, user.Role,
		user.CreatedAt, user.UpdatedAt, user.IsActive,
	)
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock := setupUserRepoTest(t)

	want := &models.User{
		ID:        uuid.New(),
		Name:      "Alice",
		Email:     testEmail,
		Password:  "hashed",
		Role:      "customer",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		IsActive:  true,
	}

	mock.ExpectQuery("SELECT id, name, email, password, role, created_at, updated_at, is_active").
		WithArgs(testEmail).
		WillReturnRows(userRows(want))

	got, err := repo.GetUserByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFoundReturnsNilNil(t *testing.T) {
	repo, mock := setupUserRepoTest(t)

	mock.ExpectQuery("SELECT id, name, email, password, role, created_at, updated_at, is_active").
		WithArgs(testEmail).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetUserByEmail(context.Background(), testEmail)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock := setupUserRepoTest(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT id, name, email, password, role, created_at, updated_at, is_active").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByID(context.Background(), id)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestCreateUser(t *testing.T) {
	repo, mock := setupUserRepoTest(t)

	user := &models.User{
		Name:     "Alice",
		Email:    testEmail,
		Password: "hashed",
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), user.Name, user.Email, user.Password,
			"customer", sqlmock.AnyArg(), sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "customer", user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DBError(t *testing.T) {
	repo, mock := setupUserRepoTest(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	err := repo.CreateUser(context.Background(), &models.User{
		Name:     "Alice",
		Email:    testEmail,
		Password: "hashed",
	})
	assert.Error(t, err)
}

func TestUpdatePassword(t *testing.T) {
	repo, mock := setupUserRepoTest(t)

	mock.ExpectExec("UPDATE users").
		WithArgs("new-hash", sqlmock.AnyArg(), testEmail).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), testEmail, "new-hash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword_UnknownEmail(t *testing.T) {
	repo, mock := setupUserRepoTest(t)

	mock.ExpectExec("UPDATE users").
		WithArgs("new-hash", sqlmock.AnyArg(), "missing@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "missing@x.com", "new-hash")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
