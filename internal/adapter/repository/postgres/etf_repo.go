package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/domain"
)

// etfHoldingRepository implements domain.ETFHoldingRepository
type etfHoldingRepository struct {
	db *DB
}

// NewETFHoldingRepository creates a new ETF holding repository
func NewETFHoldingRepository(db *DB) domain.ETFHoldingRepository {
	return &etfHoldingRepository{db: db}
}

const etfHoldingColumns = `id, user_id, symbol, name, exchange, units, average_price, current_price, notes, created_at, updated_at`

func scanETFHolding(row interface {
	Scan(dest ...interface{}) error
}) (*domain.ETFHolding, error) {
	var holding domain.ETFHolding
	var unitsStr, avgStr, currentStr string

	err := row.Scan(
		&holding.ID,
		&holding.UserID,
		&holding.Symbol,
		&holding.Name,
		&holding.Exchange,
		&unitsStr,
		&avgStr,
		&currentStr,
		&holding.Notes,
		&holding.CreatedAt,
		&holding.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if holding.Units, err = parseDecimal(unitsStr, "units"); err != nil {
		return nil, err
	}
	if holding.AveragePrice, err = parseDecimal(avgStr, "average_price"); err != nil {
		return nil, err
	}
	if holding.CurrentPrice, err = parseDecimal(currentStr, "current_price"); err != nil {
		return nil, err
	}

	return &holding, nil
}

// List retrieves all ETF holdings of a user
func (r *etfHoldingRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.ETFHolding, error) {
	query := `
		SELECT ` + etfHoldingColumns + `
		FROM etf_holdings
		WHERE user_id = $1
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list etf holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.ETFHolding
	for rows.Next() {
		holding, err := scanETFHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan etf holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	return holdings, rows.Err()
}

// GetByID retrieves an ETF holding by its ID
func (r *etfHoldingRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.ETFHolding, error) {
	query := `
		SELECT ` + etfHoldingColumns + `
		FROM etf_holdings
		WHERE user_id = $1 AND id = $2
	`

	holding, err := scanETFHolding(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "etf holding")
	}
	return holding, nil
}

// Create creates a new ETF holding
func (r *etfHoldingRepository) Create(ctx context.Context, holding *domain.ETFHolding) error {
	query := `
		INSERT INTO etf_holdings (id, user_id, symbol, name, exchange, units, average_price, current_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.UserID,
		holding.Symbol,
		holding.Name,
		holding.Exchange,
		holding.Units.String(),
		holding.AveragePrice.String(),
		holding.CurrentPrice.String(),
		holding.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create etf holding: %w", err)
	}
	return nil
}

// Update updates an existing ETF holding
func (r *etfHoldingRepository) Update(ctx context.Context, holding *domain.ETFHolding) error {
	query := `
		UPDATE etf_holdings
		SET symbol = $3, name = $4, exchange = $5, units = $6, average_price = $7,
		    current_price = $8, notes = $9, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.UserID,
		holding.ID,
		holding.Symbol,
		holding.Name,
		holding.Exchange,
		holding.Units.String(),
		holding.AveragePrice.String(),
		holding.CurrentPrice.String(),
		holding.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update etf holding: %w", err)
	}
	return requireRowAffected(result, "etf holding")
}

// UpdatePrice stores a freshly fetched market price
func (r *etfHoldingRepository) UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error {
	query := `
		UPDATE etf_holdings
		SET current_price = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, id, price)
	if err != nil {
		return fmt.Errorf("failed to update etf price: %w", err)
	}
	return requireRowAffected(result, "etf holding")
}

// Delete removes an ETF holding and its transactions
func (r *etfHoldingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM etf_holdings WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete etf holding: %w", err)
	}
	return requireRowAffected(result, "etf holding")
}

// etfTransactionRepository implements domain.ETFTransactionRepository
type etfTransactionRepository struct {
	db *DB
}

// NewETFTransactionRepository creates a new ETF transaction repository
func NewETFTransactionRepository(db *DB) domain.ETFTransactionRepository {
	return &etfTransactionRepository{db: db}
}

const etfTransactionColumns = `t.id, t.holding_id, t.transaction_type, t.date, t.units,
	t.price_per_unit, t.total_amount, t.brokerage, t.notes, t.created_at`

func scanETFTransaction(row interface {
	Scan(dest ...interface{}) error
}) (*domain.ETFTransaction, error) {
	var tx domain.ETFTransaction
	var units, pricePerUnit, brokerage sql.NullString
	var totalStr string

	err := row.Scan(
		&tx.ID,
		&tx.HoldingID,
		&tx.Type,
		&tx.Date,
		&units,
		&pricePerUnit,
		&totalStr,
		&brokerage,
		&tx.Notes,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tx.Units, err = parseNullDecimal(units, "units"); err != nil {
		return nil, err
	}
	if tx.PricePerUnit, err = parseNullDecimal(pricePerUnit, "price_per_unit"); err != nil {
		return nil, err
	}
	if tx.TotalAmount, err = parseDecimal(totalStr, "total_amount"); err != nil {
		return nil, err
	}
	if brokerage.Valid {
		if tx.Brokerage, err = parseDecimal(brokerage.String, "brokerage"); err != nil {
			return nil, err
		}
	}

	return &tx, nil
}

// List retrieves the user's ETF transactions newest first, optionally
// filtered to one holding
func (r *etfTransactionRepository) List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*domain.ETFTransaction, error) {
	query := `
		SELECT ` + etfTransactionColumns + `
		FROM etf_transactions t
		JOIN etf_holdings h ON h.id = t.holding_id
		WHERE h.user_id = $1
	`
	args := []interface{}{userID}
	if holdingID != nil {
		query += ` AND t.holding_id = $2`
		args = append(args, *holdingID)
	}
	query += ` ORDER BY t.date DESC, t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list etf transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.ETFTransaction
	for rows.Next() {
		tx, err := scanETFTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan etf transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetByID retrieves an ETF transaction by its ID
func (r *etfTransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.ETFTransaction, error) {
	query := `
		SELECT ` + etfTransactionColumns + `
		FROM etf_transactions t
		JOIN etf_holdings h ON h.id = t.holding_id
		WHERE h.user_id = $1 AND t.id = $2
	`

	tx, err := scanETFTransaction(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "etf transaction")
	}
	return tx, nil
}

// Create creates a new ETF transaction. The insert only succeeds when
// the holding belongs to the user.
func (r *etfTransactionRepository) Create(ctx context.Context, userID uuid.UUID, tx *domain.ETFTransaction) error {
	query := `
		INSERT INTO etf_transactions (id, holding_id, transaction_type, date, units, price_per_unit, total_amount, brokerage, notes)
		SELECT $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE EXISTS (SELECT 1 FROM etf_holdings WHERE id = $3 AND user_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		tx.ID,
		tx.HoldingID,
		string(tx.Type),
		tx.Date,
		decimalOrNil(tx.Units),
		decimalOrNil(tx.PricePerUnit),
		tx.TotalAmount.String(),
		tx.Brokerage.String(),
		tx.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create etf transaction: %w", err)
	}
	return requireRowAffected(result, "etf holding")
}

// Update modifies an ETF transaction. Both the current and the target
// holding must belong to the user.
func (r *etfTransactionRepository) Update(ctx context.Context, userID uuid.UUID, tx *domain.ETFTransaction) error {
	query := `
		UPDATE etf_transactions t
		SET holding_id = $3, transaction_type = $4, date = $5, units = $6,
			price_per_unit = $7, total_amount = $8, brokerage = $9, notes = $10
		FROM etf_holdings h
		WHERE t.id = $2 AND h.id = t.holding_id AND h.user_id = $1
			AND EXISTS (SELECT 1 FROM etf_holdings WHERE id = $3 AND user_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		tx.ID,
		tx.HoldingID,
		string(tx.Type),
		tx.Date,
		decimalOrNil(tx.Units),
		decimalOrNil(tx.PricePerUnit),
		tx.TotalAmount.String(),
		tx.Brokerage.String(),
		tx.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update etf transaction: %w", err)
	}
	return requireRowAffected(result, "etf transaction")
}

// Delete removes an ETF transaction
func (r *etfTransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM etf_transactions t
		USING etf_holdings h
		WHERE t.id = $2 AND h.id = t.holding_id AND h.user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete etf transaction: %w", err)
	}
	return requireRowAffected(result, "etf transaction")
}
