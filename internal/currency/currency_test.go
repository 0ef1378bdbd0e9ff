package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("AUD"))
	assert.NoError(t, Validate("JPY"))
	assert.Error(t, Validate("XYZ"))
	// Real ISO code, but not in the supported preference set
	assert.Error(t, Validate("DKK"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.56", Format(decimal.RequireFromString("1234.56"), "AUD"))
	// JPY has no minor unit
	assert.Equal(t, "¥1,235", Format(decimal.RequireFromString("1234.56"), "JPY"))
	// Unknown currency falls back to the raw decimal
	assert.Equal(t, "10.5", Format(decimal.RequireFromString("10.5"), "???"))
}
