package service_test

import (
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newTxDB returns a sqlx handle whose transactions are scripted with mock.
// Stores under test are mocks, so only BEGIN/COMMIT/ROLLBACK reach it.
func newTxDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return sqlx.NewDb(db, "sqlmock"), mock
}

// expectCommits scripts n transactions that commit.
func expectCommits(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

// expectRollback scripts one transaction that rolls back.
func expectRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

type operationKey struct {
	operation string
	outcome   string
}

// recordingMetrics implements metrics.TaskRecorder.
type recordingMetrics struct {
	mu          sync.Mutex
	operations  map[operationKey]int
	bulkDeleted int64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{operations: make(map[operationKey]int)}
}

func (r *recordingMetrics) RecordTaskOperation(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations[operationKey{operation, outcome}]++
}

func (r *recordingMetrics) RecordBulkDeleted(count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkDeleted += count
}

func (r *recordingMetrics) count(operation, outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.operations[operationKey{operation, outcome}]
}

func ptr[T any](v T) *T {
	return &v
}
