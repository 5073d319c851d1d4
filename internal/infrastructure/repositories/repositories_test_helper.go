package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAppraiserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE appraisers (
		id TEXT PRIMARY KEY,
		appraiser_id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		face_encoding TEXT,
		image_data TEXT,
		bank_id INTEGER,
		branch_id INTEGER,
		status TEXT NOT NULL DEFAULT 'registered',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAuthorizationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE appraiser_bank_branch_map (
		id TEXT PRIMARY KEY,
		appraiser_id TEXT NOT NULL,
		bank_id INTEGER NOT NULL,
		branch_id INTEGER NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (appraiser_id, bank_id, branch_id)
	);`)
}

func createTenantTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE banks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bank_code TEXT UNIQUE NOT NULL,
		bank_name TEXT NOT NULL,
		bank_short_name TEXT,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE branches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bank_id INTEGER NOT NULL,
		branch_code TEXT NOT NULL,
		branch_name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (bank_id, branch_code)
	);`)
}
