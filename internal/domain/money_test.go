package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain integer", input: "1000", want: "1000"},
		{name: "two decimal places", input: "1234.56", want: "1234.56"},
		{name: "negative amount", input: "-42.10", want: "-42.10"},
		{name: "high precision crypto quantity", input: "0.0000000075", want: "0.0000000075"},
		{name: "surrounding whitespace", input: "  99.95 ", want: "99.95"},
		{name: "empty should fail", input: "", wantErr: true},
		{name: "whitespace only should fail", input: "   ", wantErr: true},
		{name: "non-numeric should fail", input: "abc", wantErr: true},
		{name: "thousands separator should fail", input: "1,000.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got))
		})
	}
}

func TestParseAmountOrZero(t *testing.T) {
	// Lenient variant: empty becomes zero by explicit opt-in
	got, err := ParseAmountOrZero("")
	assert.NoError(t, err)
	assert.True(t, got.IsZero())

	// Garbage still fails even in lenient mode
	_, err = ParseAmountOrZero("not-a-number")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestParseOptionalAmount(t *testing.T) {
	got, err := ParseOptionalAmount(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = ParseOptionalAmount(&empty)
	assert.NoError(t, err)
	assert.Nil(t, got)

	val := "12.34"
	got, err = ParseOptionalAmount(&val)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.True(t, decimal.RequireFromString("12.34").Equal(*got))
	}

	bad := "12,34"
	_, err = ParseOptionalAmount(&bad)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
