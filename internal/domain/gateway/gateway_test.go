package gateway_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/gateway"
)

func TestMinorUnitConversion(t *testing.T) {
	t.Run("round trip is exact for two decimal places", func(t *testing.T) {
		amounts := []string{"45000", "45000.50", "0.01", "1.99", "120500.75"}
		for _, a := range amounts {
			amount, err := decimal.NewFromString(a)
			assert.NoError(t, err)

			minor := gateway.ToMinorUnits(amount)
			back := gateway.FromMinorUnits(minor)
			assert.True(t, amount.Equal(back), "amount %s did not round-trip, got %s", a, back)
		}
	})

	t.Run("annual dues in kobo", func(t *testing.T) {
		dues := decimal.NewFromInt(45000)
		assert.Equal(t, int64(4500000), gateway.ToMinorUnits(dues))
	})
}

func TestTransactionStatusDefinitive(t *testing.T) {
	assert.True(t, gateway.StatusSuccess.Definitive())
	assert.True(t, gateway.StatusFailed.Definitive())
	assert.True(t, gateway.StatusAbandoned.Definitive())
	assert.False(t, gateway.StatusPending.Definitive())
	assert.False(t, gateway.TransactionStatus("ongoing").Definitive())
}
