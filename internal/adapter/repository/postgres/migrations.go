package postgres

import (
	"context"
	"fmt"
)

// Migrate creates the schema if it does not exist. Statements are
// idempotent so the server can run it on every start.
func Migrate(ctx context.Context, db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			currency TEXT NOT NULL DEFAULT 'AUD',
			timezone TEXT NOT NULL DEFAULT 'Australia/Sydney',
			date_of_birth DATE,
			address_line1 TEXT NOT NULL DEFAULT '',
			address_line2 TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			postcode TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			refresh_token_hash TEXT NOT NULL UNIQUE,
			user_agent TEXT NOT NULL DEFAULT '',
			ip_address TEXT NOT NULL DEFAULT '',
			expires_at TIMESTAMPTZ NOT NULL,
			revoked_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE TABLE IF NOT EXISTS bank_accounts (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			bank_name TEXT NOT NULL,
			account_name TEXT NOT NULL,
			account_type TEXT NOT NULL,
			balance DECIMAL(20, 2) NOT NULL DEFAULT 0,
			interest_rate DECIMAL(8, 4),
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bank_accounts_user_id ON bank_accounts(user_id)`,
		`CREATE TABLE IF NOT EXISTS super_accounts (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			fund_name TEXT NOT NULL,
			account_name TEXT NOT NULL DEFAULT '',
			member_number TEXT NOT NULL DEFAULT '',
			balance DECIMAL(20, 2) NOT NULL DEFAULT 0,
			employer_contribution DECIMAL(20, 2) NOT NULL DEFAULT 0,
			personal_contribution DECIMAL(20, 2) NOT NULL DEFAULT 0,
			investment_option TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_super_accounts_user_id ON super_accounts(user_id)`,
		`CREATE TABLE IF NOT EXISTS super_snapshots (
			id UUID PRIMARY KEY,
			account_id UUID NOT NULL REFERENCES super_accounts(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			balance DECIMAL(20, 2) NOT NULL,
			employer_contribution DECIMAL(20, 2) NOT NULL DEFAULT 0,
			personal_contribution DECIMAL(20, 2) NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (account_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS etf_holdings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			exchange TEXT NOT NULL DEFAULT '',
			units DECIMAL(20, 6) NOT NULL DEFAULT 0,
			average_price DECIMAL(20, 6) NOT NULL DEFAULT 0,
			current_price DECIMAL(20, 6) NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_etf_holdings_user_id ON etf_holdings(user_id)`,
		`CREATE TABLE IF NOT EXISTS stock_holdings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			exchange TEXT NOT NULL DEFAULT '',
			units DECIMAL(20, 6) NOT NULL DEFAULT 0,
			average_price DECIMAL(20, 6) NOT NULL DEFAULT 0,
			current_price DECIMAL(20, 6) NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_holdings_user_id ON stock_holdings(user_id)`,
		`CREATE TABLE IF NOT EXISTS crypto_holdings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			coingecko_id TEXT NOT NULL DEFAULT '',
			quantity DECIMAL(28, 10) NOT NULL DEFAULT 0,
			average_price DECIMAL(20, 6) NOT NULL DEFAULT 0,
			current_price DECIMAL(20, 6) NOT NULL DEFAULT 0,
			wallet_address TEXT NOT NULL DEFAULT '',
			exchange TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crypto_holdings_user_id ON crypto_holdings(user_id)`,
		`CREATE TABLE IF NOT EXISTS etf_transactions (
			id UUID PRIMARY KEY,
			holding_id UUID NOT NULL REFERENCES etf_holdings(id) ON DELETE CASCADE,
			transaction_type TEXT NOT NULL,
			date DATE NOT NULL,
			units DECIMAL(20, 6),
			price_per_unit DECIMAL(20, 6),
			total_amount DECIMAL(20, 2) NOT NULL,
			brokerage DECIMAL(20, 2),
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_etf_transactions_holding_id ON etf_transactions(holding_id)`,
		`CREATE TABLE IF NOT EXISTS stock_transactions (
			id UUID PRIMARY KEY,
			holding_id UUID NOT NULL REFERENCES stock_holdings(id) ON DELETE CASCADE,
			transaction_type TEXT NOT NULL,
			date DATE NOT NULL,
			units DECIMAL(20, 6),
			price_per_unit DECIMAL(20, 6),
			total_amount DECIMAL(20, 2) NOT NULL,
			brokerage DECIMAL(20, 2),
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_transactions_holding_id ON stock_transactions(holding_id)`,
		`CREATE TABLE IF NOT EXISTS crypto_transactions (
			id UUID PRIMARY KEY,
			holding_id UUID NOT NULL REFERENCES crypto_holdings(id) ON DELETE CASCADE,
			transaction_type TEXT NOT NULL,
			date DATE NOT NULL,
			quantity DECIMAL(28, 10) NOT NULL,
			price_per_unit DECIMAL(20, 6),
			total_amount DECIMAL(20, 2),
			fee DECIMAL(20, 2),
			exchange TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crypto_transactions_holding_id ON crypto_transactions(holding_id)`,
		`CREATE TABLE IF NOT EXISTS networth_snapshots (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			total_assets DECIMAL(20, 2) NOT NULL,
			bank_accounts_total DECIMAL(20, 2) NOT NULL,
			superannuation_total DECIMAL(20, 2) NOT NULL,
			etf_holdings_total DECIMAL(20, 2) NOT NULL,
			stock_holdings_total DECIMAL(20, 2) NOT NULL,
			crypto_holdings_total DECIMAL(20, 2) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS networth_snapshot_assets (
			id UUID PRIMARY KEY,
			snapshot_id UUID NOT NULL REFERENCES networth_snapshots(id) ON DELETE CASCADE,
			asset_type TEXT NOT NULL,
			asset_name TEXT NOT NULL,
			asset_identifier TEXT NOT NULL DEFAULT '',
			quantity DECIMAL(28, 10),
			price_per_unit DECIMAL(20, 6),
			value DECIMAL(20, 2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_networth_snapshot_assets_snapshot_id ON networth_snapshot_assets(snapshot_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
