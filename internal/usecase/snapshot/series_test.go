package snapshot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/networth-tracker/backend/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func snap(date string, total string) *domain.NetWorthSnapshot {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &domain.NetWorthSnapshot{Date: d, TotalAssets: dec(total)}
}

func TestComputeDeltas(t *testing.T) {
	// Jan 1000, Feb 1100, Mar 990 — consumed newest-first
	snapshots := []*domain.NetWorthSnapshot{
		snap("2025-03-01", "990"),
		snap("2025-02-01", "1100"),
		snap("2025-01-01", "1000"),
	}

	got := ComputeDeltas(snapshots)

	assert.Len(t, got, 3)

	// Mar vs Feb: 990 - 1100 = -110, -110/1100*100 = -10.00%
	assert.True(t, dec("-110").Equal(got[0].ChangeFromPrevious))
	assert.True(t, dec("-10").Equal(got[0].ChangePercentage))

	// Feb vs Jan: +100, +10.00%
	assert.True(t, dec("100").Equal(got[1].ChangeFromPrevious))
	assert.True(t, dec("10").Equal(got[1].ChangePercentage))

	// Oldest snapshot has no prior to compare: always zero
	assert.True(t, got[2].ChangeFromPrevious.IsZero())
	assert.True(t, got[2].ChangePercentage.IsZero())
}

func TestComputeDeltasZeroPreviousTotal(t *testing.T) {
	snapshots := []*domain.NetWorthSnapshot{
		snap("2025-02-01", "500"),
		snap("2025-01-01", "0"),
	}

	got := ComputeDeltas(snapshots)

	// Division-by-zero guard: percentage is zero, not infinity
	assert.True(t, dec("500").Equal(got[0].ChangeFromPrevious))
	assert.True(t, got[0].ChangePercentage.IsZero())
}

func TestComputeDeltasRounding(t *testing.T) {
	snapshots := []*domain.NetWorthSnapshot{
		snap("2025-02-01", "1001"),
		snap("2025-01-01", "3000"),
	}

	got := ComputeDeltas(snapshots)

	// -1999/3000*100 = -66.6333... rounds to two places
	assert.True(t, dec("-66.63").Equal(got[0].ChangePercentage))
}

func TestComputeDeltasEmptyAndSingle(t *testing.T) {
	assert.Empty(t, ComputeDeltas(nil))

	got := ComputeDeltas([]*domain.NetWorthSnapshot{snap("2025-01-01", "1234")})
	assert.Len(t, got, 1)
	assert.True(t, got[0].ChangeFromPrevious.IsZero())
	assert.True(t, got[0].ChangePercentage.IsZero())
}

func TestBuildChartSeriesReversesToOldestFirst(t *testing.T) {
	snapshots := []*domain.NetWorthSnapshot{
		snap("2025-03-01", "990"),
		snap("2025-02-01", "1100"),
		snap("2025-01-01", "1000"),
	}

	got := BuildChartSeries(snapshots)

	assert.Len(t, got, 3)
	assert.Equal(t, "2025-01-01", got[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-02-01", got[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-03-01", got[2].Date.Format("2006-01-02"))
	assert.True(t, dec("1000").Equal(got[0].TotalAssets))
	assert.True(t, dec("990").Equal(got[2].TotalAssets))
}

func TestBuildSavingsSeriesExcludesSuper(t *testing.T) {
	s := snap("2025-01-01", "650")
	s.BankAccounts = dec("100")
	s.Superannuation = dec("500")
	s.ETFHoldings = dec("50")

	got := BuildSavingsSeries([]*domain.NetWorthSnapshot{s})

	assert.Len(t, got, 1)
	// bank 100 + etf 50; the 500 of super never appears
	assert.True(t, dec("150").Equal(got[0].Total))
	assert.True(t, dec("100").Equal(got[0].BankAccounts))
	assert.True(t, dec("50").Equal(got[0].ETFHoldings))
}
