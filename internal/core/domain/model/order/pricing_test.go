package order_test

import (
	"testing"

	"foodcourt/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPricing(t *testing.T) {
	t.Run("derives total", func(t *testing.T) {
		p, err := order.NewPricing(1000, 70, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), p.Subtotal())
		assert.Equal(t, int64(70), p.Tax())
		assert.Equal(t, int64(50), p.ServiceFee())
		assert.Equal(t, int64(1120), p.Total())
	})

	t.Run("rejects negative components", func(t *testing.T) {
		_, err := order.NewPricing(-1, 0, 0)
		require.Error(t, err)
		_, err = order.NewPricing(0, -1, 0)
		require.Error(t, err)
		_, err = order.NewPricing(0, 0, -1)
		require.Error(t, err)
	})
}

func TestComputePricing(t *testing.T) {
	t.Run("applies rates with half-up rounding", func(t *testing.T) {
		// 7% tax and 5% service fee on 12.34.
		p, err := order.ComputePricing(1234, 700, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(86), p.Tax())        // 86.38 rounds down
		assert.Equal(t, int64(62), p.ServiceFee()) // 61.70 rounds up
		assert.Equal(t, int64(1382), p.Total())
	})

	t.Run("zero rates", func(t *testing.T) {
		p, err := order.ComputePricing(1234, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, p.Subtotal(), p.Total())
	})
}

func TestAllocateShares(t *testing.T) {
	t.Run("child totals sum exactly to parent total", func(t *testing.T) {
		parent, err := order.NewPricing(1000, 77, 33)
		require.NoError(t, err)

		shares, err := order.AllocateShares(parent, []int64{600, 300, 100})
		require.NoError(t, err)
		require.Len(t, shares, 3)

		var tax, fee, total int64
		for _, share := range shares {
			tax += share.Tax()
			fee += share.ServiceFee()
			total += share.Total()
		}
		assert.Equal(t, parent.Tax(), tax)
		assert.Equal(t, parent.ServiceFee(), fee)
		assert.Equal(t, parent.Total(), total)
	})

	t.Run("allocation is proportional", func(t *testing.T) {
		parent, err := order.NewPricing(1000, 100, 0)
		require.NoError(t, err)

		shares, err := order.AllocateShares(parent, []int64{750, 250})
		require.NoError(t, err)
		assert.Equal(t, int64(75), shares[0].Tax())
		assert.Equal(t, int64(25), shares[1].Tax())
	})

	t.Run("remainder cents favor largest remainders", func(t *testing.T) {
		// 1 cent of tax over three equal baskets: exactly one basket
		// receives it; nothing is lost or duplicated.
		parent, err := order.NewPricing(300, 1, 0)
		require.NoError(t, err)

		shares, err := order.AllocateShares(parent, []int64{100, 100, 100})
		require.NoError(t, err)

		var tax int64
		for _, share := range shares {
			tax += share.Tax()
		}
		assert.Equal(t, int64(1), tax)
	})

	t.Run("mismatched subtotals are rejected", func(t *testing.T) {
		parent, err := order.NewPricing(1000, 70, 50)
		require.NoError(t, err)

		_, err = order.AllocateShares(parent, []int64{600, 300})
		require.Error(t, err)
	})

	t.Run("empty partition is rejected", func(t *testing.T) {
		parent, err := order.NewPricing(0, 0, 0)
		require.NoError(t, err)

		_, err = order.AllocateShares(parent, nil)
		require.Error(t, err)
	})

	t.Run("all-zero subtotals split evenly", func(t *testing.T) {
		parent, err := order.NewPricing(0, 5, 0)
		require.NoError(t, err)

		shares, err := order.AllocateShares(parent, []int64{0, 0})
		require.NoError(t, err)
		assert.Equal(t, int64(3), shares[0].Tax())
		assert.Equal(t, int64(2), shares[1].Tax())
	})
}
