package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, "INR", cfg.Analyzer.BaseCurrency)
	assert.Equal(t, "INR", cfg.Analyzer.SourceCurrency)
	assert.Equal(t, "INR", cfg.Analyzer.DisplayCurrency)
	assert.True(t, cfg.Analyzer.DedupeTableAmounts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DISPLAY_CURRENCY", "USD")
	t.Setenv("DEDUPE_TABLE_AMOUNTS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "USD", cfg.Analyzer.DisplayCurrency)
	assert.False(t, cfg.Analyzer.DedupeTableAmounts)
}

func TestCurrencyTable(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	table, err := cfg.CurrencyTable()
	require.NoError(t, err)

	assert.Equal(t, "INR", table.Base())
	assert.True(t, table.Has("USD"))
	assert.True(t, table.Has("JPY"))
	assert.Equal(t, "₹", table.Symbol("INR"))

	formatted, err := table.Format(1234.5, "JPY")
	require.NoError(t, err)
	assert.Equal(t, "¥1,235", formatted)
}

func TestCurrencyTableRateOverride(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_USD", "0.5")

	cfg, err := Load()
	require.NoError(t, err)
	table, err := cfg.CurrencyTable()
	require.NoError(t, err)

	got, err := table.Convert(100, "INR", "USD")
	require.NoError(t, err)
	assert.InEpsilon(t, 50.0, got, 1e-9)
}

func TestCurrencyTableBadOverride(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_EUR", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	_, err = cfg.CurrencyTable()
	assert.Error(t, err)
}
