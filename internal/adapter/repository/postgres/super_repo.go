package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/domain"
)

// superAccountRepository implements domain.SuperAccountRepository
type superAccountRepository struct {
	db *DB
}

// NewSuperAccountRepository creates a new superannuation account repository
func NewSuperAccountRepository(db *DB) domain.SuperAccountRepository {
	return &superAccountRepository{db: db}
}

const superAccountColumns = `id, user_id, fund_name, account_name, member_number, balance,
	employer_contribution, personal_contribution, investment_option, notes, created_at, updated_at`

func scanSuperAccount(row interface {
	Scan(dest ...interface{}) error
}) (*domain.SuperannuationAccount, error) {
	var account domain.SuperannuationAccount
	var balanceStr, employerStr, personalStr string

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.FundName,
		&account.AccountName,
		&account.MemberNumber,
		&balanceStr,
		&employerStr,
		&personalStr,
		&account.InvestmentOption,
		&account.Notes,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if account.Balance, err = parseDecimal(balanceStr, "balance"); err != nil {
		return nil, err
	}
	if account.EmployerContribution, err = parseDecimal(employerStr, "employer_contribution"); err != nil {
		return nil, err
	}
	if account.PersonalContribution, err = parseDecimal(personalStr, "personal_contribution"); err != nil {
		return nil, err
	}

	return &account, nil
}

// List retrieves all superannuation accounts of a user
func (r *superAccountRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.SuperannuationAccount, error) {
	query := `
		SELECT ` + superAccountColumns + `
		FROM super_accounts
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list super accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.SuperannuationAccount
	for rows.Next() {
		account, err := scanSuperAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan super account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// GetByID retrieves a superannuation account by its ID
func (r *superAccountRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SuperannuationAccount, error) {
	query := `
		SELECT ` + superAccountColumns + `
		FROM super_accounts
		WHERE user_id = $1 AND id = $2
	`

	account, err := scanSuperAccount(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "super account")
	}
	return account, nil
}

// Create creates a new superannuation account
func (r *superAccountRepository) Create(ctx context.Context, account *domain.SuperannuationAccount) error {
	query := `
		INSERT INTO super_accounts (id, user_id, fund_name, account_name, member_number, balance,
		                            employer_contribution, personal_contribution, investment_option, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.FundName,
		account.AccountName,
		account.MemberNumber,
		account.Balance.String(),
		account.EmployerContribution.String(),
		account.PersonalContribution.String(),
		account.InvestmentOption,
		account.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create super account: %w", err)
	}
	return nil
}

// Update updates an existing superannuation account
func (r *superAccountRepository) Update(ctx context.Context, account *domain.SuperannuationAccount) error {
	query := `
		UPDATE super_accounts
		SET fund_name = $3, account_name = $4, member_number = $5, balance = $6,
		    employer_contribution = $7, personal_contribution = $8, investment_option = $9,
		    notes = $10, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		account.UserID,
		account.ID,
		account.FundName,
		account.AccountName,
		account.MemberNumber,
		account.Balance.String(),
		account.EmployerContribution.String(),
		account.PersonalContribution.String(),
		account.InvestmentOption,
		account.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update super account: %w", err)
	}
	return requireRowAffected(result, "super account")
}

// Delete removes a superannuation account and its snapshots
func (r *superAccountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM super_accounts WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete super account: %w", err)
	}
	return requireRowAffected(result, "super account")
}

// superSnapshotRepository implements domain.SuperSnapshotRepository
type superSnapshotRepository struct {
	db *DB
}

// NewSuperSnapshotRepository creates a new superannuation snapshot repository
func NewSuperSnapshotRepository(db *DB) domain.SuperSnapshotRepository {
	return &superSnapshotRepository{db: db}
}

const superSnapshotColumns = `s.id, s.account_id, s.date, s.balance, s.employer_contribution,
	s.personal_contribution, s.notes, s.created_at`

func scanSuperSnapshot(row interface {
	Scan(dest ...interface{}) error
}) (*domain.SuperSnapshot, error) {
	var snapshot domain.SuperSnapshot
	var balanceStr, employerStr, personalStr string

	err := row.Scan(
		&snapshot.ID,
		&snapshot.AccountID,
		&snapshot.Date,
		&balanceStr,
		&employerStr,
		&personalStr,
		&snapshot.Notes,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if snapshot.Balance, err = parseDecimal(balanceStr, "balance"); err != nil {
		return nil, err
	}
	if snapshot.EmployerContribution, err = parseDecimal(employerStr, "employer_contribution"); err != nil {
		return nil, err
	}
	if snapshot.PersonalContribution, err = parseDecimal(personalStr, "personal_contribution"); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *superSnapshotRepository) queryList(ctx context.Context, query string, args ...interface{}) ([]*domain.SuperSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list super snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.SuperSnapshot
	for rows.Next() {
		snapshot, err := scanSuperSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan super snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// List retrieves the user's snapshots newest first, optionally filtered
// to one account
func (r *superSnapshotRepository) List(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]*domain.SuperSnapshot, error) {
	query := `
		SELECT ` + superSnapshotColumns + `
		FROM super_snapshots s
		JOIN super_accounts a ON a.id = s.account_id
		WHERE a.user_id = $1
	`
	args := []interface{}{userID}
	if accountID != nil {
		query += ` AND s.account_id = $2`
		args = append(args, *accountID)
	}
	query += ` ORDER BY s.date DESC, s.created_at DESC`

	return r.queryList(ctx, query, args...)
}

// ListForAccount retrieves one account's snapshots oldest first
func (r *superSnapshotRepository) ListForAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*domain.SuperSnapshot, error) {
	query := `
		SELECT ` + superSnapshotColumns + `
		FROM super_snapshots s
		JOIN super_accounts a ON a.id = s.account_id
		WHERE a.user_id = $1 AND s.account_id = $2
		ORDER BY s.date ASC
	`
	return r.queryList(ctx, query, userID, accountID)
}

// GetByID retrieves a snapshot by its ID
func (r *superSnapshotRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SuperSnapshot, error) {
	query := `
		SELECT ` + superSnapshotColumns + `
		FROM super_snapshots s
		JOIN super_accounts a ON a.id = s.account_id
		WHERE a.user_id = $1 AND s.id = $2
	`

	snapshot, err := scanSuperSnapshot(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "super snapshot")
	}
	return snapshot, nil
}

// Create creates a new snapshot. A snapshot already existing for the
// same account and date yields ErrDuplicateSnapshot.
func (r *superSnapshotRepository) Create(ctx context.Context, userID uuid.UUID, snapshot *domain.SuperSnapshot) error {
	query := `
		INSERT INTO super_snapshots (id, account_id, date, balance, employer_contribution, personal_contribution, notes)
		SELECT $2, $3, $4, $5, $6, $7, $8
		WHERE EXISTS (SELECT 1 FROM super_accounts WHERE id = $3 AND user_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		snapshot.ID,
		snapshot.AccountID,
		snapshot.Date,
		snapshot.Balance.String(),
		snapshot.EmployerContribution.String(),
		snapshot.PersonalContribution.String(),
		snapshot.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("snapshot for this date: %w", domain.ErrDuplicateSnapshot)
		}
		return fmt.Errorf("failed to create super snapshot: %w", err)
	}
	return requireRowAffected(result, "super account")
}

// Update updates an existing snapshot
func (r *superSnapshotRepository) Update(ctx context.Context, userID uuid.UUID, snapshot *domain.SuperSnapshot) error {
	query := `
		UPDATE super_snapshots s
		SET date = $3, balance = $4, employer_contribution = $5, personal_contribution = $6, notes = $7
		FROM super_accounts a
		WHERE s.id = $2 AND a.id = s.account_id AND a.user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		snapshot.ID,
		snapshot.Date,
		snapshot.Balance.String(),
		snapshot.EmployerContribution.String(),
		snapshot.PersonalContribution.String(),
		snapshot.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("snapshot for this date: %w", domain.ErrDuplicateSnapshot)
		}
		return fmt.Errorf("failed to update super snapshot: %w", err)
	}
	return requireRowAffected(result, "super snapshot")
}

// Delete removes a snapshot
func (r *superSnapshotRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM super_snapshots s
		USING super_accounts a
		WHERE s.id = $2 AND a.id = s.account_id AND a.user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete super snapshot: %w", err)
	}
	return requireRowAffected(result, "super snapshot")
}
