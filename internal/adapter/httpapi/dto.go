package httpapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/networth-tracker/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDate parses a wire date (YYYY-MM-DD).
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// dateString renders a wire date.
func dateString(t time.Time) string {
	return t.Format(dateLayout)
}

// bankAccountRequest is the create/update payload for a bank account.
// Monetary fields arrive as strings and are parsed strictly.
type bankAccountRequest struct {
	Name         string  `json:"account_name" binding:"required"`
	BankName     string  `json:"bank_name" binding:"required"`
	AccountType  string  `json:"account_type" binding:"required"`
	Balance      string  `json:"balance" binding:"required"`
	InterestRate *string `json:"interest_rate"`
	Notes        string  `json:"notes"`
}

func (r *bankAccountRequest) toDomain() (*domain.BankAccount, error) {
	balance, err := domain.ParseAmount(r.Balance)
	if err != nil {
		return nil, err
	}
	rate, err := domain.ParseOptionalAmount(r.InterestRate)
	if err != nil {
		return nil, err
	}
	return &domain.BankAccount{
		Name:         r.Name,
		BankName:     r.BankName,
		AccountType:  domain.BankAccountType(r.AccountType),
		Balance:      balance,
		InterestRate: rate,
		Notes:        r.Notes,
	}, nil
}

type bankAccountResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"account_name"`
	BankName     string           `json:"bank_name"`
	AccountType  string           `json:"account_type"`
	Balance      decimal.Decimal  `json:"balance"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	Notes        string           `json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toBankAccountResponse(a *domain.BankAccount) bankAccountResponse {
	return bankAccountResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		BankName:     a.BankName,
		AccountType:  string(a.AccountType),
		Balance:      a.Balance,
		InterestRate: a.InterestRate,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type superAccountRequest struct {
	FundName             string `json:"fund_name" binding:"required"`
	AccountName          string `json:"account_name"`
	MemberNumber         string `json:"member_number"`
	Balance              string `json:"balance"`
	EmployerContribution string `json:"employer_contribution"`
	PersonalContribution string `json:"personal_contribution"`
	InvestmentOption     string `json:"investment_option"`
	Notes                string `json:"notes"`
}

func (r *superAccountRequest) toDomain() (*domain.SuperannuationAccount, error) {
	balance, err := domain.ParseAmountOrZero(r.Balance)
	if err != nil {
		return nil, err
	}
	employer, err := domain.ParseAmountOrZero(r.EmployerContribution)
	if err != nil {
		return nil, err
	}
	personal, err := domain.ParseAmountOrZero(r.PersonalContribution)
	if err != nil {
		return nil, err
	}
	return &domain.SuperannuationAccount{
		FundName:             r.FundName,
		AccountName:          r.AccountName,
		MemberNumber:         r.MemberNumber,
		Balance:              balance,
		EmployerContribution: employer,
		PersonalContribution: personal,
		InvestmentOption:     r.InvestmentOption,
		Notes:                r.Notes,
	}, nil
}

type superAccountResponse struct {
	ID                   string          `json:"id"`
	FundName             string          `json:"fund_name"`
	AccountName          string          `json:"account_name"`
	MemberNumber         string          `json:"member_number"`
	Balance              decimal.Decimal `json:"balance"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	PersonalContribution decimal.Decimal `json:"personal_contribution"`
	InvestmentOption     string          `json:"investment_option"`
	Notes                string          `json:"notes"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func toSuperAccountResponse(a *domain.SuperannuationAccount) superAccountResponse {
	return superAccountResponse{
		ID:                   a.ID.String(),
		FundName:             a.FundName,
		AccountName:          a.AccountName,
		MemberNumber:         a.MemberNumber,
		Balance:              a.Balance,
		EmployerContribution: a.EmployerContribution,
		PersonalContribution: a.PersonalContribution,
		InvestmentOption:     a.InvestmentOption,
		Notes:                a.Notes,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

type superSnapshotRequest struct {
	AccountID            string `json:"account" binding:"required"`
	Date                 string `json:"date" binding:"required"`
	Balance              string `json:"balance" binding:"required"`
	EmployerContribution string `json:"employer_contribution"`
	PersonalContribution string `json:"personal_contribution"`
	Notes                string `json:"notes"`
}

type superSnapshotResponse struct {
	ID                   string          `json:"id"`
	AccountID            string          `json:"account"`
	Date                 string          `json:"date"`
	Balance              decimal.Decimal `json:"balance"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	PersonalContribution decimal.Decimal `json:"personal_contribution"`
	TotalContributions   decimal.Decimal `json:"total_contributions"`
	InvestmentGain       decimal.Decimal `json:"investment_gain"`
	Notes                string          `json:"notes"`
	CreatedAt            time.Time       `json:"created_at"`
}

type holdingRequest struct {
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Exchange     string `json:"exchange"`
	Units        string `json:"units"`
	AveragePrice string `json:"average_price"`
	CurrentPrice string `json:"current_price"`
	Notes        string `json:"notes"`
}

func (r *holdingRequest) amounts() (units, avg, current decimal.Decimal, err error) {
	if units, err = domain.ParseAmountOrZero(r.Units); err != nil {
		return
	}
	if avg, err = domain.ParseAmountOrZero(r.AveragePrice); err != nil {
		return
	}
	current, err = domain.ParseAmountOrZero(r.CurrentPrice)
	return
}

type holdingResponse struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Exchange       string          `json:"exchange"`
	Units          decimal.Decimal `json:"units"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	MarketValue    decimal.Decimal `json:"market_value"`
	CostBasis      decimal.Decimal `json:"cost_basis"`
	UnrealisedGain decimal.Decimal `json:"unrealised_gain"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type cryptoHoldingRequest struct {
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	CoinGeckoID   string `json:"coingecko_id"`
	Quantity      string `json:"quantity"`
	AveragePrice  string `json:"average_price"`
	CurrentPrice  string `json:"current_price"`
	WalletAddress string `json:"wallet_address"`
	Exchange      string `json:"exchange"`
	Notes         string `json:"notes"`
}

type cryptoHoldingResponse struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	CoinGeckoID    string          `json:"coingecko_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	MarketValue    decimal.Decimal `json:"market_value"`
	CostBasis      decimal.Decimal `json:"cost_basis"`
	UnrealisedGain decimal.Decimal `json:"unrealised_gain"`
	WalletAddress  string          `json:"wallet_address"`
	Exchange       string          `json:"exchange"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type equityTransactionRequest struct {
	HoldingID    string  `json:"holding" binding:"required"`
	Type         string  `json:"transaction_type" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Units        *string `json:"units"`
	PricePerUnit *string `json:"price_per_unit"`
	TotalAmount  string  `json:"total_amount" binding:"required"`
	Brokerage    string  `json:"brokerage"`
	Notes        string  `json:"notes"`
}

type equityTransactionResponse struct {
	ID           string           `json:"id"`
	HoldingID    string           `json:"holding"`
	Type         string           `json:"transaction_type"`
	Date         string           `json:"date"`
	Units        *decimal.Decimal `json:"units"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	Brokerage    decimal.Decimal  `json:"brokerage"`
	Notes        string           `json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
}

type cryptoTransactionRequest struct {
	HoldingID    string  `json:"holding" binding:"required"`
	Type         string  `json:"transaction_type" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	Quantity     string  `json:"quantity" binding:"required"`
	PricePerUnit *string `json:"price_per_unit"`
	TotalAmount  *string `json:"total_amount"`
	Fee          string  `json:"fee"`
	Exchange     string  `json:"exchange"`
	Notes        string  `json:"notes"`
}

type cryptoTransactionResponse struct {
	ID           string           `json:"id"`
	HoldingID    string           `json:"holding"`
	Type         string           `json:"transaction_type"`
	Date         string           `json:"date"`
	Quantity     decimal.Decimal  `json:"quantity"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	Fee          decimal.Decimal  `json:"fee"`
	Exchange     string           `json:"exchange"`
	Notes        string           `json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
}

type netWorthSnapshotResponse struct {
	ID               string                  `json:"id"`
	Date             string                  `json:"date"`
	Notes            string                  `json:"notes"`
	TotalAssets      decimal.Decimal         `json:"total_assets"`
	BankAccounts     decimal.Decimal         `json:"bank_accounts"`
	Superannuation   decimal.Decimal         `json:"superannuation"`
	ETFHoldings      decimal.Decimal         `json:"etf_holdings"`
	StockHoldings    decimal.Decimal         `json:"stock_holdings"`
	CryptoHoldings   decimal.Decimal         `json:"crypto_holdings"`
	ChangeFromPrev   decimal.Decimal         `json:"change_from_previous"`
	ChangePercentage decimal.Decimal         `json:"change_percentage"`
	Assets           []assetSnapshotResponse `json:"assets,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

type assetSnapshotResponse struct {
	ID              string           `json:"id"`
	SnapshotID      string           `json:"snapshot"`
	AssetType       string           `json:"asset_type"`
	AssetName       string           `json:"asset_name"`
	AssetIdentifier string           `json:"asset_identifier"`
	Quantity        *decimal.Decimal `json:"quantity"`
	PricePerUnit    *decimal.Decimal `json:"price_per_unit"`
	Value           decimal.Decimal  `json:"value"`
}

func toAssetSnapshotResponses(assets []domain.AssetSnapshot) []assetSnapshotResponse {
	out := make([]assetSnapshotResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, assetSnapshotResponse{
			ID:              a.ID.String(),
			SnapshotID:      a.SnapshotID.String(),
			AssetType:       string(a.AssetType),
			AssetName:       a.AssetName,
			AssetIdentifier: a.AssetIdentifier,
			Quantity:        a.Quantity,
			PricePerUnit:    a.PricePerUnit,
			Value:           a.Value,
		})
	}
	return out
}

type preferencesRequest struct {
	Currency     string  `json:"currency" binding:"required"`
	Timezone     string  `json:"timezone"`
	DateOfBirth  *string `json:"date_of_birth"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 string  `json:"address_line2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Postcode     string  `json:"postcode"`
	Country      string  `json:"country"`
}

type preferencesResponse struct {
	Currency     string  `json:"currency"`
	Timezone     string  `json:"timezone"`
	DateOfBirth  *string `json:"date_of_birth"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 string  `json:"address_line2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Postcode     string  `json:"postcode"`
	Country      string  `json:"country"`
}

func toPreferencesResponse(p *domain.UserPreferences) preferencesResponse {
	resp := preferencesResponse{
		Currency:     p.Currency,
		Timezone:     p.Timezone,
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		City:         p.City,
		State:        p.State,
		Postcode:     p.Postcode,
		Country:      p.Country,
	}
	if p.DateOfBirth != nil {
		dob := dateString(*p.DateOfBirth)
		resp.DateOfBirth = &dob
	}
	return resp
}
