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

func createScheduledPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE scheduled_payments (
		id TEXT PRIMARY KEY,
		owner_address TEXT NOT NULL,
		employee_id TEXT,
		recipient_name TEXT NOT NULL,
		recipient_address TEXT NOT NULL,
		amount TEXT NOT NULL,
		token TEXT NOT NULL,
		schedule_type TEXT NOT NULL,
		scheduled_date DATETIME NOT NULL,
		recurrence TEXT,
		next_payment_date DATETIME,
		end_date DATETIME,
		status TEXT NOT NULL,
		last_processed DATETIME,
		processed_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSpendingLimitTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE spending_limits (
		owner_address TEXT PRIMARY KEY,
		amount TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createEmployeeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE employees (
		id TEXT PRIMARY KEY,
		owner_address TEXT NOT NULL,
		name TEXT NOT NULL,
		wallet_address TEXT NOT NULL,
		position TEXT,
		salary_amount TEXT,
		salary_token TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPayoutLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payout_logs (
		id TEXT PRIMARY KEY,
		schedule_id TEXT NOT NULL,
		owner_address TEXT NOT NULL,
		recipient_address TEXT NOT NULL,
		amount TEXT NOT NULL,
		token TEXT NOT NULL,
		status TEXT NOT NULL,
		tx_hash TEXT,
		error_message TEXT,
		created_at DATETIME
	);`)
}
