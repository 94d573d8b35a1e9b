package repository

import (
	"context"
	"errors"
	"testing"

	authdomain "acebook-backend/internal/auth/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newGormMock(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password", "avatar"}).
		AddRow("u-1", "alice", "alice@example.com", "hash", "public/images/avatars/2.svg")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "public/images/avatars/2.svg", user.Avatar)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newGormMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_DBError(t *testing.T) {
	db, mock := newGormMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnError(errors.New("db down"))

	_, err := repo.FindByUsername(context.Background(), "bob")
	require.Error(t, err)
	assert.NotErrorIs(t, err, authdomain.ErrUserNotFound)
}

func TestUserRepository_UpdateAvatar(t *testing.T) {
	db, mock := newGormMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET .*"avatar"=\$1.* WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateAvatar(context.Background(), "u-1", "public/images/avatars/3.svg"))

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateAvatar(context.Background(), "ghost", "public/images/avatars/3.svg")
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username index",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_users_username"},
			want: authdomain.ErrUsernameTaken,
		},
		{
			name: "email index",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_users_email"},
			want: authdomain.ErrEmailTaken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateUniqueViolation(tt.err), tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, translateUniqueViolation(other))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "12345678", hash)
	assert.True(t, CheckPasswordHash("12345678", hash))
	assert.False(t, CheckPasswordHash("87654321", hash))
}
