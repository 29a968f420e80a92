package order

// ShopOrderSummary aggregates the per-shop progress of a zone_main order.
// It is derived from the committed children and never stored as a source of
// truth.
type ShopOrderSummary struct {
	TotalShops     int
	PendingShops   int
	PreparingShops int
	ReadyShops     int
	CompletedShops int
	CancelledShops int
}

// SummarizeChildren derives the shop order summary from a set of children.
func SummarizeChildren(children []*Order) ShopOrderSummary {
	summary := ShopOrderSummary{TotalShops: len(children)}
	for _, child := range children {
		switch child.Status() {
		case Pending:
			summary.PendingShops++
		case Preparing:
			summary.PreparingShops++
		case Ready:
			summary.ReadyShops++
		case Completed:
			summary.CompletedShops++
		case Cancelled:
			summary.CancelledShops++
		}
	}
	return summary
}
