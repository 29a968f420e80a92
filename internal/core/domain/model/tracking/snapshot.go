// Package tracking builds the customer-facing tracking view of an order
// family. A Snapshot is a denormalized read model derived from committed
// orders; it is safe to cache and rebuild at any time, since the orders
// themselves remain the source of truth.
package tracking

import (
	"sort"
	"time"

	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"
)

// ItemView is one cart line as shown to the customer.
type ItemView struct {
	Name          string   `json:"name"`
	Quantity      int      `json:"quantity"`
	UnitPrice     int64    `json:"unitPriceCents"`
	Modifiers     []string `json:"modifiers,omitempty"`
	SubtotalCents int64    `json:"subtotalCents"`
}

// TimelineEntry is one status change in the merged family timeline. The
// order number tells the customer which shop order moved.
type TimelineEntry struct {
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Actor       string    `json:"actor"`
	Notes       string    `json:"notes,omitempty"`
	At          time.Time `json:"at"`
}

// ShopOrderView is the tracking view of one zone_shop child.
type ShopOrderView struct {
	OrderNumber string     `json:"orderNumber"`
	ShopID      string     `json:"shopId"`
	Status      string     `json:"status"`
	Items       []ItemView `json:"items"`
	TotalCents  int64      `json:"totalCents"`
}

// Progress counts children per lifecycle stage so clients can render an
// at-a-glance bar without walking the shop orders.
type Progress struct {
	TotalShops     int `json:"totalShops"`
	PendingShops   int `json:"pendingShops"`
	PreparingShops int `json:"preparingShops"`
	ReadyShops     int `json:"readyShops"`
	CompletedShops int `json:"completedShops"`
	CancelledShops int `json:"cancelledShops"`
}

// Snapshot is the complete tracking document for one order family (or one
// single order, which has no shop orders section).
type Snapshot struct {
	OrderNumber   string          `json:"orderNumber"`
	OrderType     string          `json:"orderType"`
	ZoneID        string          `json:"zoneId"`
	TableNumber   string          `json:"tableNumber"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Status        string          `json:"status"`
	Items         []ItemView      `json:"items"`
	SubtotalCents int64           `json:"subtotalCents"`
	TaxCents      int64           `json:"taxCents"`
	FeeCents      int64           `json:"serviceFeeCents"`
	TotalCents    int64           `json:"totalCents"`
	ShopOrders    []ShopOrderView `json:"shopOrders,omitempty"`
	Progress      *Progress       `json:"progress,omitempty"`
	Timeline      []TimelineEntry `json:"timeline"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

func itemViews(items []order.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice(),
			Modifiers:     item.Modifiers(),
			SubtotalCents: item.Subtotal(),
		})
	}
	return views
}

func timelineOf(o *order.Order) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(o.History()))
	for _, change := range o.History() {
		entries = append(entries, TimelineEntry{
			OrderNumber: o.OrderNumber(),
			Status:      change.Status().String(),
			Actor:       change.Actor(),
			Notes:       change.Notes(),
			At:          change.At(),
		})
	}
	return entries
}

// FromFamily builds the tracking snapshot of a parent order and its
// committed children. For single orders pass an empty children slice. The
// timeline merges every family member's history in chronological order, ties
// broken by order number so the output is deterministic.
func FromFamily(parent *order.Order, children []*order.Order, generatedAt time.Time) (*Snapshot, error) {
	if err := parent.Validate(); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		OrderNumber:   parent.OrderNumber(),
		OrderType:     parent.Type().String(),
		ZoneID:        parent.ZoneID().String(),
		TableNumber:   parent.TableNumber(),
		CustomerName:  parent.Customer().Name(),
		CustomerPhone: parent.Customer().Phone(),
		Status:        parent.Status().String(),
		Items:         itemViews(parent.Items()),
		SubtotalCents: parent.Pricing().Subtotal(),
		TaxCents:      parent.Pricing().Tax(),
		FeeCents:      parent.Pricing().ServiceFee(),
		TotalCents:    parent.Pricing().Total(),
		Timeline:      timelineOf(parent),
		GeneratedAt:   generatedAt,
	}

	if parent.Type() == order.TypeZoneMain && len(children) == 0 {
		return nil, errs.NewValueIsRequiredError("children of a zone_main order")
	}

	for _, child := range children {
		if err := child.Validate(); err != nil {
			return nil, err
		}
		shopID := ""
		if id := child.ShopID(); id != nil {
			shopID = id.String()
		}
		snapshot.ShopOrders = append(snapshot.ShopOrders, ShopOrderView{
			OrderNumber: child.OrderNumber(),
			ShopID:      shopID,
			Status:      child.Status().String(),
			Items:       itemViews(child.Items()),
			TotalCents:  child.Pricing().Total(),
		})
		snapshot.Timeline = append(snapshot.Timeline, timelineOf(child)...)
	}

	if len(children) > 0 {
		summary := order.SummarizeChildren(children)
		snapshot.Progress = &Progress{
			TotalShops:     summary.TotalShops,
			PendingShops:   summary.PendingShops,
			PreparingShops: summary.PreparingShops,
			ReadyShops:     summary.ReadyShops,
			CompletedShops: summary.CompletedShops,
			CancelledShops: summary.CancelledShops,
		}
	}

	sort.SliceStable(snapshot.Timeline, func(i, j int) bool {
		a, b := snapshot.Timeline[i], snapshot.Timeline[j]
		if !a.At.Equal(b.At) {
			return a.At.Before(b.At)
		}
		return a.OrderNumber < b.OrderNumber
	})

	return snapshot, nil
}
