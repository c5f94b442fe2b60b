package blockchain

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int
		want     string
	}{
		{"1", 6, "1000000"},
		{"1250.75", 6, "1250750000"},
		{"0.000001", 6, "1"},
		{"0", 6, "0"},
		{".5", 6, "500000"},
		{"2500", 18, "2500000000000000000000"},
	}

	for _, tc := range cases {
		units, err := parseUnits(tc.amount, tc.decimals)
		require.NoError(t, err, tc.amount)
		want, _ := new(big.Int).SetString(tc.want, 10)
		assert.Zero(t, units.Cmp(want), "%s -> got %s want %s", tc.amount, units, tc.want)
	}
}

func TestParseUnits_Rejects(t *testing.T) {
	_, err := parseUnits("0.0000001", 6)
	assert.Error(t, err, "more precision than the token carries")

	_, err = parseUnits("-5", 6)
	assert.Error(t, err)

	_, err = parseUnits("12,5", 6)
	assert.Error(t, err)
}

func TestSubmit_UnsupportedToken(t *testing.T) {
	c := &TreasuryClient{tokens: map[string]TokenConfig{
		"USDC": {Address: "0x036CbD53842c5426634e7929541eC2318f3dCF7e", Decimals: 6},
	}}

	_, err := c.Submit(context.Background(), "0xrecipient", "10", "DOGE", "payroll")
	assert.Error(t, err)
}

func TestSubmit_TokenLookupIsCaseInsensitive(t *testing.T) {
	c := &TreasuryClient{tokens: map[string]TokenConfig{
		"USDC": {Address: "0x036CbD53842c5426634e7929541eC2318f3dCF7e", Decimals: 6},
	}}

	// The amount error fires after the token lookup, so reaching it proves
	// lowercase "usdc" resolved.
	_, err := c.Submit(context.Background(), "0xrecipient", "bad-amount", "usdc", "payroll")
	assert.ErrorContains(t, err, "invalid amount")
}
