package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/domain"
)

// stockHoldingRepository implements domain.StockHoldingRepository
type stockHoldingRepository struct {
	db *DB
}

// NewStockHoldingRepository creates a new stock holding repository
func NewStockHoldingRepository(db *DB) domain.StockHoldingRepository {
	return &stockHoldingRepository{db: db}
}

const stockHoldingColumns = `id, user_id, symbol, name, exchange, units, average_price, current_price, notes, created_at, updated_at`

func scanStockHolding(row interface {
	Scan(dest ...interface{}) error
}) (*domain.StockHolding, error) {
	var holding domain.StockHolding
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

// List retrieves all stock holdings of a user
func (r *stockHoldingRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.StockHolding, error) {
	query := `
		SELECT ` + stockHoldingColumns + `
		FROM stock_holdings
		WHERE user_id = $1
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.StockHolding
	for rows.Next() {
		holding, err := scanStockHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	return holdings, rows.Err()
}

// GetByID retrieves a stock holding by its ID
func (r *stockHoldingRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.StockHolding, error) {
	query := `
		SELECT ` + stockHoldingColumns + `
		FROM stock_holdings
		WHERE user_id = $1 AND id = $2
	`

	holding, err := scanStockHolding(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "stock holding")
	}
	return holding, nil
}

// Create creates a new stock holding
func (r *stockHoldingRepository) Create(ctx context.Context, holding *domain.StockHolding) error {
	query := `
		INSERT INTO stock_holdings (id, user_id, symbol, name, exchange, units, average_price, current_price, notes)
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
		return fmt.Errorf("failed to create stock holding: %w", err)
	}
	return nil
}

// Update updates an existing stock holding
func (r *stockHoldingRepository) Update(ctx context.Context, holding *domain.StockHolding) error {
	query := `
		UPDATE stock_holdings
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
		return fmt.Errorf("failed to update stock holding: %w", err)
	}
	return requireRowAffected(result, "stock holding")
}

// UpdatePrice stores a freshly fetched market price
func (r *stockHoldingRepository) UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error {
	query := `
		UPDATE stock_holdings
		SET current_price = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, id, price)
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}
	return requireRowAffected(result, "stock holding")
}

// Delete removes a stock holding and its transactions
func (r *stockHoldingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM stock_holdings WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock holding: %w", err)
	}
	return requireRowAffected(result, "stock holding")
}

// stockTransactionRepository implements domain.StockTransactionRepository
type stockTransactionRepository struct {
	db *DB
}

// NewStockTransactionRepository creates a new stock transaction repository
func NewStockTransactionRepository(db *DB) domain.StockTransactionRepository {
	return &stockTransactionRepository{db: db}
}

const stockTransactionColumns = `t.id, t.holding_id, t.transaction_type, t.date, t.units,
	t.price_per_unit, t.total_amount, t.brokerage, t.notes, t.created_at`

func scanStockTransaction(row interface {
	Scan(dest ...interface{}) error
}) (*domain.StockTransaction, error) {
	var tx domain.StockTransaction
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

// List retrieves the user's stock transactions newest first, optionally
// filtered to one holding
func (r *stockTransactionRepository) List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*domain.StockTransaction, error) {
	query := `
		SELECT ` + stockTransactionColumns + `
		FROM stock_transactions t
		JOIN stock_holdings h ON h.id = t.holding_id
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
		return nil, fmt.Errorf("failed to list stock transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.StockTransaction
	for rows.Next() {
		tx, err := scanStockTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetByID retrieves a stock transaction by its ID
func (r *stockTransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.StockTransaction, error) {
	query := `
		SELECT ` + stockTransactionColumns + `
		FROM stock_transactions t
		JOIN stock_holdings h ON h.id = t.holding_id
		WHERE h.user_id = $1 AND t.id = $2
	`

	tx, err := scanStockTransaction(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "stock transaction")
	}
	return tx, nil
}

// Create creates a new stock transaction. The insert only succeeds when
// the holding belongs to the user.
func (r *stockTransactionRepository) Create(ctx context.Context, userID uuid.UUID, tx *domain.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, holding_id, transaction_type, date, units, price_per_unit, total_amount, brokerage, notes)
		SELECT $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE EXISTS (SELECT 1 FROM stock_holdings WHERE id = $3 AND user_id = $1)
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
		return fmt.Errorf("failed to create stock transaction: %w", err)
	}
	return requireRowAffected(result, "stock holding")
}

// Update modifies a stock transaction. Both the current and the target
// holding must belong to the user.
func (r *stockTransactionRepository) Update(ctx context.Context, userID uuid.UUID, tx *domain.StockTransaction) error {
	query := `
		UPDATE stock_transactions t
		SET holding_id = $3, transaction_type = $4, date = $5, units = $6,
			price_per_unit = $7, total_amount = $8, brokerage = $9, notes = $10
		FROM stock_holdings h
		WHERE t.id = $2 AND h.id = t.holding_id AND h.user_id = $1
			AND EXISTS (SELECT 1 FROM stock_holdings WHERE id = $3 AND user_id = $1)
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
		return fmt.Errorf("failed to update stock transaction: %w", err)
	}
	return requireRowAffected(result, "stock transaction")
}

// Delete removes a stock transaction
func (r *stockTransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM stock_transactions t
		USING stock_holdings h
		WHERE t.id = $2 AND h.id = t.holding_id AND h.user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock transaction: %w", err)
	}
	return requireRowAffected(result, "stock transaction")
}
