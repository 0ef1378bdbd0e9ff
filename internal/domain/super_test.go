package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSuperSnapshotTotalContributions(t *testing.T) {
	snapshot := SuperSnapshot{
		EmployerContribution: decimal.RequireFromString("950.00"),
		PersonalContribution: decimal.RequireFromString("200.00"),
	}

	assert.True(t, decimal.RequireFromString("1150").Equal(snapshot.TotalContributions()))
}

func TestSuperSnapshotInvestmentGain(t *testing.T) {
	accountID := uuid.New()

	previous := &SuperSnapshot{
		AccountID: accountID,
		Date:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Balance:   decimal.RequireFromString("50000"),
	}
	current := SuperSnapshot{
		AccountID:            accountID,
		Date:                 time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Balance:              decimal.RequireFromString("52000"),
		EmployerContribution: decimal.RequireFromString("1200"),
		PersonalContribution: decimal.RequireFromString("300"),
	}

	// Balance rose 2000, of which 1500 were contributions
	assert.True(t, decimal.RequireFromString("500").Equal(current.InvestmentGain(previous)))
}

func TestSuperSnapshotInvestmentGainLoss(t *testing.T) {
	previous := &SuperSnapshot{Balance: decimal.RequireFromString("50000")}
	current := SuperSnapshot{
		Balance:              decimal.RequireFromString("49500"),
		EmployerContribution: decimal.RequireFromString("1000"),
	}

	// Balance fell despite contributions: market lost 1500
	assert.True(t, decimal.RequireFromString("-1500").Equal(current.InvestmentGain(previous)))
}

func TestSuperSnapshotInvestmentGainNoPrevious(t *testing.T) {
	// Gain is undefined for the first snapshot and reports zero
	current := SuperSnapshot{
		Balance:              decimal.RequireFromString("52000"),
		EmployerContribution: decimal.RequireFromString("1200"),
	}

	assert.True(t, current.InvestmentGain(nil).IsZero())
}

func TestSuperSnapshotValidate(t *testing.T) {
	snapshot := SuperSnapshot{
		AccountID: uuid.New(),
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Balance:   decimal.RequireFromString("52000"),
	}
	assert.NoError(t, snapshot.Validate())

	snapshot.AccountID = uuid.Nil
	assert.EqualError(t, snapshot.Validate(), "snapshot must reference an account")
}
