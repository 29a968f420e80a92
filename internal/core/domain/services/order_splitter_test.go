package services_test

import (
	"testing"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basket(t *testing.T, lines ...[2]int64) services.Basket {
	t.Helper()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem("item", int(line[0]), line[1], nil)
		require.NoError(t, err)
		items = append(items, item)
	}
	return services.Basket{ShopID: kernel.NewUUID(), Items: items}
}

func splitRequest(t *testing.T, baskets ...services.Basket) services.SplitRequest {
	t.Helper()
	customer, err := order.NewCustomer("Dana", "+77010001122")
	require.NoError(t, err)
	return services.SplitRequest{
		ZoneID:        kernel.NewUUID(),
		TableNumber:   "T12",
		Customer:      customer,
		PaymentMethod: "card",
		Baskets:       baskets,
		SubmittedAt:   time.Now(),
	}
}

func itemKeys(items []order.Item) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key())
	}
	return keys
}

func childItemKeys(children []*order.Order) []string {
	var keys []string
	for _, child := range children {
		keys = append(keys, itemKeys(child.Items())...)
	}
	return keys
}

func TestOrderSplitter_Split(t *testing.T) {
	splitter, err := services.NewOrderSplitter(700, 500)
	require.NoError(t, err)

	t.Run("one child per shop, parent first", func(t *testing.T) {
		req := splitRequest(t,
			basket(t, [2]int64{2, 1500}),
			basket(t, [2]int64{1, 500}),
			basket(t, [2]int64{3, 800}),
		)

		family, err := splitter.Split(req)
		require.NoError(t, err)
		require.Len(t, family.Children, 3)
		require.Len(t, family.All(), 4)
		assert.Same(t, family.Parent, family.All()[0])

		assert.Equal(t, order.TypeZoneMain, family.Parent.Type())
		for i, child := range family.Children {
			assert.Equal(t, order.TypeZoneShop, child.Type())
			require.NotNil(t, child.ParentID())
			assert.True(t, child.ParentID().IsEqual(family.Parent.ID()))
			require.NotNil(t, child.ShopID())
			assert.True(t, child.ShopID().IsEqual(req.Baskets[i].ShopID))
			assert.Equal(t, i+1, child.Trace().Sequence())
		}
	})

	t.Run("family shares one trace code", func(t *testing.T) {
		family, err := splitter.Split(splitRequest(t,
			basket(t, [2]int64{1, 1000}),
			basket(t, [2]int64{1, 2000}),
		))
		require.NoError(t, err)

		code := family.Parent.Trace().Code()
		assert.Equal(t, code, family.Parent.OrderNumber())
		assert.Equal(t, code+"-01", family.Children[0].OrderNumber())
		assert.Equal(t, code+"-02", family.Children[1].OrderNumber())
	})

	t.Run("children partition the parent items", func(t *testing.T) {
		lagman, err := order.NewItem("Lagman", 2, 1500, []string{"extra spicy"})
		require.NoError(t, err)
		tea, err := order.NewItem("Green Tea", 1, 500, nil)
		require.NoError(t, err)
		plov, err := order.NewItem("Plov", 1, 900, nil)
		require.NoError(t, err)

		family, err := splitter.Split(splitRequest(t,
			services.Basket{ShopID: kernel.NewUUID(), Items: []order.Item{lagman, tea}},
			services.Basket{ShopID: kernel.NewUUID(), Items: []order.Item{plov}},
		))
		require.NoError(t, err)

		// Exact multiset equality: every parent line appears in exactly one
		// child, nothing is duplicated, dropped, or repriced.
		assert.ElementsMatch(t, itemKeys(family.Parent.Items()), childItemKeys(family.Children))
		assert.Equal(t, family.Parent.Pricing().Subtotal(), order.ItemsSubtotal(family.Parent.Items()))
	})

	t.Run("child totals sum exactly to parent total", func(t *testing.T) {
		// Subtotals chosen so rate application leaves remainder cents.
		family, err := splitter.Split(splitRequest(t,
			basket(t, [2]int64{1, 333}),
			basket(t, [2]int64{1, 333}),
			basket(t, [2]int64{1, 334}),
		))
		require.NoError(t, err)

		var tax, fee, total int64
		for _, child := range family.Children {
			tax += child.Pricing().Tax()
			fee += child.Pricing().ServiceFee()
			total += child.Pricing().Total()
		}
		assert.Equal(t, family.Parent.Pricing().Tax(), tax)
		assert.Equal(t, family.Parent.Pricing().ServiceFee(), fee)
		assert.Equal(t, family.Parent.Pricing().Total(), total)
	})

	t.Run("single-shop cart still produces a family", func(t *testing.T) {
		family, err := splitter.Split(splitRequest(t, basket(t, [2]int64{1, 1000})))
		require.NoError(t, err)
		assert.Equal(t, order.TypeZoneMain, family.Parent.Type())
		require.Len(t, family.Children, 1)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		_, err := splitter.Split(splitRequest(t))
		require.Error(t, err)
	})

	t.Run("empty basket is rejected", func(t *testing.T) {
		empty := services.Basket{ShopID: kernel.NewUUID()}
		_, err := splitter.Split(splitRequest(t, basket(t, [2]int64{1, 1000}), empty))
		require.Error(t, err)
	})

	t.Run("duplicate shop is rejected", func(t *testing.T) {
		first := basket(t, [2]int64{1, 1000})
		second := basket(t, [2]int64{1, 2000})
		second.ShopID = first.ShopID
		_, err := splitter.Split(splitRequest(t, first, second))
		require.Error(t, err)
	})
}

func TestNewOrderSplitter(t *testing.T) {
	_, err := services.NewOrderSplitter(-1, 0)
	require.Error(t, err)
	_, err = services.NewOrderSplitter(0, -1)
	require.Error(t, err)
	_, err = services.NewOrderSplitter(0, 0)
	require.NoError(t, err)
}
