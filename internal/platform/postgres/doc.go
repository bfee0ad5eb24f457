// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
//
// Queries run through sqlx against the pgx stdlib driver. Task listings are
// assembled with squirrel so optional filters compose without string
// concatenation. The schema lives in embedded goose migrations.
package postgres
