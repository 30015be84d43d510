package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStore(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS client_storage").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    string
		wantOK  bool
		wantErr bool
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM client_storage").
					WithArgs("access_token").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc"))
			},
			want:   "abc",
			wantOK: true,
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM client_storage").
					WithArgs("access_token").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM client_storage").
					WithArgs("access_token").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockPostgresStore(t)
			tt.setup(mock)

			got, ok, err := store.Get(context.Background(), "access_token")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_Set(t *testing.T) {
	t.Run("upsert", func(t *testing.T) {
		store, mock := newMockPostgresStore(t)
		mock.ExpectExec("INSERT INTO client_storage").
			WithArgs("userId", "123").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Set(context.Background(), "userId", "123"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		store, mock := newMockPostgresStore(t)
		mock.ExpectExec("INSERT INTO client_storage").
			WithArgs("userId", "123").
			WillReturnError(errors.New("read-only transaction"))

		assert.Error(t, store.Set(context.Background(), "userId", "123"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty key never reaches the db", func(t *testing.T) {
		store, mock := newMockPostgresStore(t)

		assert.ErrorIs(t, store.Set(context.Background(), "", "123"), ErrInvalidKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Remove(t *testing.T) {
	store, mock := newMockPostgresStore(t)
	mock.ExpectExec("DELETE FROM client_storage").
		WithArgs("access_token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Remove(context.Background(), "access_token"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
