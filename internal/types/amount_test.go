package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountMarshalJSON(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"1500", `"1500.00"`},
		{"1500.00", `"1500.00"`},
		{"1250.5", `"1250.50"`},
		{"0.01", `"0.01"`},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			out, err := json.Marshal(NewAmount(decimal.RequireFromString(tc.in)))
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	var got struct {
		Amount Amount `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"1500.00"}`), &got))
	assert.True(t, decimal.RequireFromString("1500").Equal(got.Amount.Decimal))
	assert.Equal(t, "1500.00", got.Amount.String())
}
