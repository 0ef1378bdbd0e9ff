package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/domain"
)

// bankAccountRepository implements domain.BankAccountRepository
type bankAccountRepository struct {
	db *DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *DB) domain.BankAccountRepository {
	return &bankAccountRepository{db: db}
}

const bankAccountColumns = `id, user_id, account_name, bank_name, account_type, balance, interest_rate, notes, created_at, updated_at`

func scanBankAccount(row interface {
	Scan(dest ...interface{}) error
}) (*domain.BankAccount, error) {
	var account domain.BankAccount
	var balanceStr string
	var interestRate sql.NullString

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.BankName,
		&account.AccountType,
		&balanceStr,
		&interestRate,
		&account.Notes,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	balance, err := parseDecimal(balanceStr, "balance")
	if err != nil {
		return nil, err
	}
	account.Balance = balance

	rate, err := parseNullDecimal(interestRate, "interest_rate")
	if err != nil {
		return nil, err
	}
	account.InterestRate = rate

	return &account, nil
}

// List retrieves all bank accounts of a user
func (r *bankAccountRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.BankAccount
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// GetByID retrieves a bank account by its ID
func (r *bankAccountRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE user_id = $1 AND id = $2
	`

	account, err := scanBankAccount(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, mapRowError(err, "bank account")
	}
	return account, nil
}

// Create creates a new bank account
func (r *bankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, user_id, account_name, bank_name, account_type, balance, interest_rate, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.Name,
		account.BankName,
		string(account.AccountType),
		account.Balance.String(),
		decimalOrNil(account.InterestRate),
		account.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create bank account: %w", err)
	}
	return nil
}

// Update updates an existing bank account
func (r *bankAccountRepository) Update(ctx context.Context, account *domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET account_name = $3, bank_name = $4, account_type = $5, balance = $6,
		    interest_rate = $7, notes = $8, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		account.UserID,
		account.ID,
		account.Name,
		account.BankName,
		string(account.AccountType),
		account.Balance.String(),
		decimalOrNil(account.InterestRate),
		account.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank account: %w", err)
	}
	return requireRowAffected(result, "bank account")
}

// Delete removes a bank account
func (r *bankAccountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM bank_accounts WHERE user_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete bank account: %w", err)
	}
	return requireRowAffected(result, "bank account")
}
