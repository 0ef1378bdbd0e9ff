package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/domain"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=networth sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// parseDecimal parses a DECIMAL column scanned into a string.
func parseDecimal(value, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return d, nil
}

// parseNullDecimal parses a nullable DECIMAL column.
func parseNullDecimal(value sql.NullString, column string) (*decimal.Decimal, error) {
	if !value.Valid {
		return nil, nil
	}
	d, err := parseDecimal(value.String, column)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// decimalOrNil renders an optional decimal for a nullable DECIMAL column.
func decimalOrNil(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// requireRowAffected converts a zero-row UPDATE or DELETE into a
// domain not-found error.
func requireRowAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}

// mapRowError maps sql.ErrNoRows onto the domain not-found sentinel.
func mapRowError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
