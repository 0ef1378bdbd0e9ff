package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/domain"
)

// cryptoHoldingRepository implements domain.CryptoHoldingRepository
type cryptoHoldingRepository struct {
	db *DB
}

// NewCryptoHoldingRepository creates a new crypto holding repository
func NewCryptoHoldingRepository(db *DB) domain.CryptoHoldingRepository {
	return &cryptoHoldingRepository{db: db}
}

const cryptoHoldingColumns = `id, user_id, symbol, name, coingecko_id, quantity, average_price,
	current_price, wallet_address, exchange, notes, created_at, updated_at`

func scanCryptoHolding(row interface {
	Scan(dest ...interface{}) error
}) (*domain.CryptoHolding, error) {
	var holding domain.CryptoHolding
	var quantityStr, avgStr, currentStr string

	err := row.Scan(
		&holding.ID,
		&holding.UserID,
		&holding.Symbol,
		&holding.Name,
		&holding.CoinGeckoID,
		&quantityStr,
		&avgStr,
		&currentStr,
		&holding.WalletAddress,
		&holding.Exchange,
		&holding.Notes,
		&holding.CreatedAt,
		&holding.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if holding.Quantity, err = parseDecimal(quantityStr, "quantity"); err != nil {
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

// List retrieves all crypto holdings of a user
func (r *cryptoHoldingRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoHolding, error) {
	query := `
		SELECT ` + cryptoHoldingColumns + `
		FROM crypto_holdings
		WHERE user_id = $1
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crypto holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.CryptoHolding
	for rows.Next() {
		holding, err := scanCryptoHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crypto holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	return holdings, rows.Err()
}

// GetByID retrieves a crypto holding by its ID
func (r *cryptoHoldingRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoHolding, error) {
	query := `
		SELECT ` + cryptoHoldingColumns + `
		FROM crypto_holdings
		WHERE user_id = $1 AND id = $2
	`

	holding, err := scanCryptoHolding(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "crypto holding")
	}
	return holding, nil
}

// Create creates a new crypto holding
func (r *cryptoHoldingRepository) Create(ctx context.Context, holding *domain.CryptoHolding) error {
	query := `
		INSERT INTO crypto_holdings (id, user_id, symbol, name, coingecko_id, quantity, average_price,
		                             current_price, wallet_address, exchange, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.UserID,
		holding.Symbol,
		holding.Name,
		holding.CoinGeckoID,
		holding.Quantity.String(),
		holding.AveragePrice.String(),
		holding.CurrentPrice.String(),
		holding.WalletAddress,
		holding.Exchange,
		holding.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create crypto holding: %w", err)
	}
	return nil
}

// Update updates an existing crypto holding
func (r *cryptoHoldingRepository) Update(ctx context.Context, holding *domain.CryptoHolding) error {
	query := `
		UPDATE crypto_holdings
		SET symbol = $3, name = $4, coingecko_id = $5, quantity = $6, average_price = $7,
		    current_price = $8, wallet_address = $9, exchange = $10, notes = $11, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.UserID,
		holding.ID,
		holding.Symbol,
		holding.Name,
		holding.CoinGeckoID,
		holding.Quantity.String(),
		holding.AveragePrice.String(),
		holding.CurrentPrice.String(),
		holding.WalletAddress,
		holding.Exchange,
		holding.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update crypto holding: %w", err)
	}
	return requireRowAffected(result, "crypto holding")
}

// UpdatePrice stores a freshly fetched market price
func (r *cryptoHoldingRepository) UpdatePrice(ctx context.Context, userID, id uuid.UUID, price string) error {
	query := `
		UPDATE crypto_holdings
		SET current_price = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, id, price)
	if err != nil {
		return fmt.Errorf("failed to update crypto price: %w", err)
	}
	return requireRowAffected(result, "crypto holding")
}

// Delete removes a crypto holding and its transactions
func (r *cryptoHoldingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM crypto_holdings WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete crypto holding: %w", err)
	}
	return requireRowAffected(result, "crypto holding")
}

// cryptoTransactionRepository implements domain.CryptoTransactionRepository
type cryptoTransactionRepository struct {
	db *DB
}

// NewCryptoTransactionRepository creates a new crypto transaction repository
func NewCryptoTransactionRepository(db *DB) domain.CryptoTransactionRepository {
	return &cryptoTransactionRepository{db: db}
}

const cryptoTransactionColumns = `t.id, t.holding_id, t.transaction_type, t.date, t.quantity,
	t.price_per_unit, t.total_amount, t.fee, t.exchange, t.notes, t.created_at`

func scanCryptoTransaction(row interface {
	Scan(dest ...interface{}) error
}) (*domain.CryptoTransaction, error) {
	var tx domain.CryptoTransaction
	var quantityStr string
	var pricePerUnit, totalAmount, fee sql.NullString

	err := row.Scan(
		&tx.ID,
		&tx.HoldingID,
		&tx.Type,
		&tx.Date,
		&quantityStr,
		&pricePerUnit,
		&totalAmount,
		&fee,
		&tx.Exchange,
		&tx.Notes,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tx.Quantity, err = parseDecimal(quantityStr, "quantity"); err != nil {
		return nil, err
	}
	if tx.PricePerUnit, err = parseNullDecimal(pricePerUnit, "price_per_unit"); err != nil {
		return nil, err
	}
	if tx.TotalAmount, err = parseNullDecimal(totalAmount, "total_amount"); err != nil {
		return nil, err
	}
	if fee.Valid {
		if tx.Fee, err = parseDecimal(fee.String, "fee"); err != nil {
			return nil, err
		}
	}

	return &tx, nil
}

// List retrieves the user's crypto transactions newest first, optionally
// filtered to one holding
func (r *cryptoTransactionRepository) List(ctx context.Context, userID uuid.UUID, holdingID *uuid.UUID) ([]*domain.CryptoTransaction, error) {
	query := `
		SELECT ` + cryptoTransactionColumns + `
		FROM crypto_transactions t
		JOIN crypto_holdings h ON h.id = t.holding_id
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
		return nil, fmt.Errorf("failed to list crypto transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.CryptoTransaction
	for rows.Next() {
		tx, err := scanCryptoTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crypto transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetByID retrieves a crypto transaction by its ID
func (r *cryptoTransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoTransaction, error) {
	query := `
		SELECT ` + cryptoTransactionColumns + `
		FROM crypto_transactions t
		JOIN crypto_holdings h ON h.id = t.holding_id
		WHERE h.user_id = $1 AND t.id = $2
	`

	tx, err := scanCryptoTransaction(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "crypto transaction")
	}
	return tx, nil
}

// Create creates a new crypto transaction. The insert only succeeds
// when the holding belongs to the user.
func (r *cryptoTransactionRepository) Create(ctx context.Context, userID uuid.UUID, tx *domain.CryptoTransaction) error {
	query := `
		INSERT INTO crypto_transactions (id, holding_id, transaction_type, date, quantity, price_per_unit, total_amount, fee, exchange, notes)
		SELECT $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE EXISTS (SELECT 1 FROM crypto_holdings WHERE id = $3 AND user_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		tx.ID,
		tx.HoldingID,
		string(tx.Type),
		tx.Date,
		tx.Quantity.String(),
		decimalOrNil(tx.PricePerUnit),
		decimalOrNil(tx.TotalAmount),
		tx.Fee.String(),
		tx.Exchange,
		tx.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create crypto transaction: %w", err)
	}
	return requireRowAffected(result, "crypto holding")
}

// Update modifies a crypto transaction. Both the current and the
// target holding must belong to the user.
func (r *cryptoTransactionRepository) Update(ctx context.Context, userID uuid.UUID, tx *domain.CryptoTransaction) error {
	query := `
		UPDATE crypto_transactions t
		SET holding_id = $3, transaction_type = $4, date = $5, quantity = $6,
			price_per_unit = $7, total_amount = $8, fee = $9, exchange = $10, notes = $11
		FROM crypto_holdings h
		WHERE t.id = $2 AND h.id = t.holding_id AND h.user_id = $1
			AND EXISTS (SELECT 1 FROM crypto_holdings WHERE id = $3 AND user_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		tx.ID,
		tx.HoldingID,
		string(tx.Type),
		tx.Date,
		tx.Quantity.String(),
		decimalOrNil(tx.PricePerUnit),
		decimalOrNil(tx.TotalAmount),
		tx.Fee.String(),
		tx.Exchange,
		tx.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update crypto transaction: %w", err)
	}
	return requireRowAffected(result, "crypto transaction")
}

// Delete removes a crypto transaction
func (r *cryptoTransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM crypto_transactions t
		USING crypto_holdings h
		WHERE t.id = $2 AND h.id = t.holding_id AND h.user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete crypto transaction: %w", err)
	}
	return requireRowAffected(result, "crypto transaction")
}
