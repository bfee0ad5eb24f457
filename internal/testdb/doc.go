//go:build integration

// Package testdb provides utilities for tests that run against a real
// PostgreSQL database.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can run in parallel without cleaning up after
// themselves:
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The connection string is read from TASKER_TEST_DB_URL, falling back to
// DATABASE_URL. Tests are skipped when neither is set.
package testdb
