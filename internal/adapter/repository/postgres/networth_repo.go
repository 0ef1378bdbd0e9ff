package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/networth-tracker/backend/internal/domain"
)

// netWorthSnapshotRepository implements domain.NetWorthSnapshotRepository
type netWorthSnapshotRepository struct {
	db *DB
}

// NewNetWorthSnapshotRepository creates a new net-worth snapshot repository
func NewNetWorthSnapshotRepository(db *DB) domain.NetWorthSnapshotRepository {
	return &netWorthSnapshotRepository{db: db}
}

const netWorthSnapshotColumns = `id, user_id, date, total_assets, bank_accounts_total, superannuation_total,
	etf_holdings_total, stock_holdings_total, crypto_holdings_total, notes, created_at`

func scanNetWorthSnapshot(row interface {
	Scan(dest ...interface{}) error
}) (*domain.NetWorthSnapshot, error) {
	var snapshot domain.NetWorthSnapshot
	var totalStr, bankStr, superStr, etfStr, stockStr, cryptoStr string

	err := row.Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.Date,
		&totalStr,
		&bankStr,
		&superStr,
		&etfStr,
		&stockStr,
		&cryptoStr,
		&snapshot.Notes,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if snapshot.TotalAssets, err = parseDecimal(totalStr, "total_assets"); err != nil {
		return nil, err
	}
	if snapshot.BankAccounts, err = parseDecimal(bankStr, "bank_accounts_total"); err != nil {
		return nil, err
	}
	if snapshot.Superannuation, err = parseDecimal(superStr, "superannuation_total"); err != nil {
		return nil, err
	}
	if snapshot.ETFHoldings, err = parseDecimal(etfStr, "etf_holdings_total"); err != nil {
		return nil, err
	}
	if snapshot.StockHoldings, err = parseDecimal(stockStr, "stock_holdings_total"); err != nil {
		return nil, err
	}
	if snapshot.CryptoHoldings, err = parseDecimal(cryptoStr, "crypto_holdings_total"); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// List retrieves a user's snapshots newest first, each with its asset
// composition attached.
func (r *netWorthSnapshotRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.NetWorthSnapshot, error) {
	query := `
		SELECT ` + netWorthSnapshotColumns + `
		FROM networth_snapshots
		WHERE user_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list networth snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.NetWorthSnapshot
	for rows.Next() {
		snapshot, err := scanNetWorthSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan networth snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachAssets(ctx, snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// GetByID retrieves a snapshot by its ID
func (r *netWorthSnapshotRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.NetWorthSnapshot, error) {
	query := `
		SELECT ` + netWorthSnapshotColumns + `
		FROM networth_snapshots
		WHERE user_id = $1 AND id = $2
	`

	snapshot, err := scanNetWorthSnapshot(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "networth snapshot")
	}
	if err := r.attachAssets(ctx, []*domain.NetWorthSnapshot{snapshot}); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetByDate retrieves the snapshot captured on the given date
func (r *netWorthSnapshotRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.NetWorthSnapshot, error) {
	query := `
		SELECT ` + netWorthSnapshotColumns + `
		FROM networth_snapshots
		WHERE user_id = $1 AND date = $2
	`

	snapshot, err := scanNetWorthSnapshot(r.db.QueryRowContext(ctx, query, userID, date))
	if err != nil {
		return nil, mapRowError(err, "networth snapshot")
	}
	if err := r.attachAssets(ctx, []*domain.NetWorthSnapshot{snapshot}); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Create inserts a snapshot and its asset composition atomically
func (r *netWorthSnapshotRepository) Create(ctx context.Context, snapshot *domain.NetWorthSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO networth_snapshots (id, user_id, date, total_assets, bank_accounts_total,
			superannuation_total, etf_holdings_total, stock_holdings_total, crypto_holdings_total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.UserID,
		snapshot.Date,
		snapshot.TotalAssets.String(),
		snapshot.BankAccounts.String(),
		snapshot.Superannuation.String(),
		snapshot.ETFHoldings.String(),
		snapshot.StockHoldings.String(),
		snapshot.CryptoHoldings.String(),
		snapshot.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("snapshot for this date: %w", domain.ErrDuplicateSnapshot)
		}
		return fmt.Errorf("failed to create networth snapshot: %w", err)
	}

	if err := insertSnapshotAssets(ctx, tx, snapshot); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace overwrites an existing snapshot's figures and composition,
// keeping its identity. Used for same-date re-captures.
func (r *netWorthSnapshotRepository) Replace(ctx context.Context, snapshot *domain.NetWorthSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE networth_snapshots
		SET total_assets = $3, bank_accounts_total = $4, superannuation_total = $5,
		    etf_holdings_total = $6, stock_holdings_total = $7, crypto_holdings_total = $8, notes = $9
		WHERE user_id = $1 AND id = $2
	`

	result, err := tx.ExecContext(ctx, query,
		snapshot.UserID,
		snapshot.ID,
		snapshot.TotalAssets.String(),
		snapshot.BankAccounts.String(),
		snapshot.Superannuation.String(),
		snapshot.ETFHoldings.String(),
		snapshot.StockHoldings.String(),
		snapshot.CryptoHoldings.String(),
		snapshot.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to replace networth snapshot: %w", err)
	}
	if err := requireRowAffected(result, "networth snapshot"); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM networth_snapshot_assets WHERE snapshot_id = $1`, snapshot.ID); err != nil {
		return fmt.Errorf("failed to clear snapshot assets: %w", err)
	}
	if err := insertSnapshotAssets(ctx, tx, snapshot); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a snapshot and its composition
func (r *netWorthSnapshotRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM networth_snapshots WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete networth snapshot: %w", err)
	}
	return requireRowAffected(result, "networth snapshot")
}

func insertSnapshotAssets(ctx context.Context, tx *sql.Tx, snapshot *domain.NetWorthSnapshot) error {
	query := `
		INSERT INTO networth_snapshot_assets (id, snapshot_id, asset_type, asset_name, asset_identifier,
			quantity, price_per_unit, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i := range snapshot.Assets {
		asset := &snapshot.Assets[i]
		if asset.ID == uuid.Nil {
			asset.ID = uuid.New()
		}
		asset.SnapshotID = snapshot.ID

		_, err := tx.ExecContext(ctx, query,
			asset.ID,
			asset.SnapshotID,
			string(asset.AssetType),
			asset.AssetName,
			asset.AssetIdentifier,
			decimalOrNil(asset.Quantity),
			decimalOrNil(asset.PricePerUnit),
			asset.Value.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot asset: %w", err)
		}
	}
	return nil
}

// attachAssets loads the composition rows for a batch of snapshots in
// one query.
func (r *netWorthSnapshotRepository) attachAssets(ctx context.Context, snapshots []*domain.NetWorthSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.NetWorthSnapshot, len(snapshots))
	ids := make([]string, 0, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
		ids = append(ids, s.ID.String())
	}

	query := `
		SELECT id, snapshot_id, asset_type, asset_name, asset_identifier, quantity, price_per_unit, value, created_at
		FROM networth_snapshot_assets
		WHERE snapshot_id = ANY($1)
		ORDER BY asset_type, asset_name
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to list snapshot assets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var asset domain.AssetSnapshot
		var quantity, pricePerUnit sql.NullString
		var valueStr string

		err := rows.Scan(
			&asset.ID,
			&asset.SnapshotID,
			&asset.AssetType,
			&asset.AssetName,
			&asset.AssetIdentifier,
			&quantity,
			&pricePerUnit,
			&valueStr,
			&asset.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan snapshot asset: %w", err)
		}

		if asset.Quantity, err = parseNullDecimal(quantity, "quantity"); err != nil {
			return err
		}
		if asset.PricePerUnit, err = parseNullDecimal(pricePerUnit, "price_per_unit"); err != nil {
			return err
		}
		if asset.Value, err = parseDecimal(valueStr, "value"); err != nil {
			return err
		}

		if snapshot, ok := byID[asset.SnapshotID]; ok {
			snapshot.Assets = append(snapshot.Assets, asset)
		}
	}
	return rows.Err()
}
