package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", EUR)
		require.NoError(t, err)
		assert.Equal(t, "123.45 EUR", m.String())

		_, err = NewMoneyFromString("not-a-number", EUR)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(100))
	b := NewMoneyUSD(decimal.NewFromInt(30))

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(130)))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))
	})

	t.Run("negate", func(t *testing.T) {
		neg := b.Negate()
		assert.True(t, neg.IsNegative())
		assert.True(t, neg.Amount().Equal(decimal.NewFromInt(-30)))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		eur, err := NewMoney(decimal.NewFromInt(10), EUR)
		require.NoError(t, err)

		_, err = a.Add(eur)
		assert.Error(t, err)
		_, err = a.Subtract(eur)
		assert.Error(t, err)
	})
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(1)).IsPositive())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).IsNegative())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(5)).Equals(NewMoneyUSD(decimal.NewFromInt(5))))
	assert.False(t, NewMoneyUSD(decimal.NewFromInt(5)).Equals(Zero(EUR)))
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(99.5))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.5","currency":"USD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc","currency":"USD"}`), &decoded))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string and bytes", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12.34"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.34)))
		assert.Equal(t, DefaultCurrency, m.Currency())

		require.NoError(t, m.Scan([]byte("56.78")))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(56.78)))
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("unsupported type fails", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})

	t.Run("value round-trips the amount", func(t *testing.T) {
		m := NewMoneyUSD(decimal.NewFromFloat(12.34))
		v, err := m.Value()
		require.NoError(t, err)
		assert.Equal(t, "12.34", v)
	})
}
