package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"appraiser-auth.backend/internal/config"
)

func unreachableConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "127.0.0.1",
		Port:            1,
		User:            "x",
		Password:        "x",
		DBName:          "x",
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MinIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}
}

func TestNewConnection_DoesNotPing(t *testing.T) {
	db, err := NewConnection(unreachableConfig())
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.Equal(t, 4, sqlDB.Stats().MaxOpenConnections)

	err = Ping(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to ping database")
}

func TestNewConnection_OpenAndPingHooks(t *testing.T) {
	origOpen := gormOpen
	origPing := dbPing
	t.Cleanup(func() {
		gormOpen = origOpen
		dbPing = origPing
	})

	gormOpen = func(gorm.Dialector) (*gorm.DB, error) {
		return nil, errors.New("open failed")
	}
	db, err := NewConnection(unreachableConfig())
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to open database")

	gormOpen = origOpen
	dbPing = func(context.Context, *sql.DB) error { return nil }
	db, err = NewConnection(unreachableConfig())
	require.NoError(t, err)
	require.NoError(t, Ping(context.Background(), db))
}
