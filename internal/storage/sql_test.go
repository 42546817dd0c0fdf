package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewSQLStore(db), mock
}

func TestSQLStoreGet(t *testing.T) {
	s, mock := setupSQLStore(t)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries` WHERE entry_key = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"entry_key", "value", "updated_at"}).
			AddRow(AppointmentsKey, `[{"id":1}]`, time.Now()))

	v, err := s.Get(context.Background(), AppointmentsKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetMissing(t *testing.T) {
	s, mock := setupSQLStore(t)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"entry_key", "value", "updated_at"}))

	_, err := s.Get(context.Background(), ThemeKey)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetError(t *testing.T) {
	s, mock := setupSQLStore(t)

	mock.ExpectQuery("SELECT \\* FROM `kv_entries`").
		WillReturnError(errors.New("connection reset"))

	_, err := s.Get(context.Background(), ThemeKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSQLStoreSetUpserts(t *testing.T) {
	s, mock := setupSQLStore(t)

	mock.ExpectExec("INSERT INTO `kv_entries` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), ThemeKey, "dark"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSetError(t *testing.T) {
	s, mock := setupSQLStore(t)

	mock.ExpectExec("INSERT INTO `kv_entries`").
		WillReturnError(errors.New("disk full"))

	err := s.Set(context.Background(), ThemeKey, "dark")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
