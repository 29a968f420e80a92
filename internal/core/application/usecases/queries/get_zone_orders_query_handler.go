package queries

import (
	"context"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetZoneOrdersQueryHandler lists a zone's active orders from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern; child
// progress is aggregated in the query rather than loading aggregates.
//
// Example:
//
//	handler := NewGetZoneOrdersQueryHandler(db)
//	query, _ := NewGetZoneOrdersQuery(zoneID)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list zone orders: %v", err)
//	    return err
//	}
type GetZoneOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetZoneOrdersQueryHandler creates a handler for zone dashboard queries.
// Requires a GORM database connection for query execution.
func NewGetZoneOrdersQueryHandler(db *gorm.DB) GetZoneOrdersQueryHandler {
	return GetZoneOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve a zone's active orders.
// Returns zone_main and single orders that are not completed or cancelled,
// oldest first, each with its children's progress counts.
func (h GetZoneOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetZoneOrdersQuery,
) ([]GetZoneOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetZoneOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.order_number,
			p.order_type,
			p.table_number,
			p.customer_name,
			p.status,
			p.total_cents,
			COUNT(c.id) AS total_shops,
			COUNT(c.id) FILTER (WHERE c.status = ?) AS ready_shops,
			COUNT(c.id) FILTER (WHERE c.status = ?) AS completed_shops,
			COUNT(c.id) FILTER (WHERE c.status = ?) AS cancelled_shops
		FROM orders p
		LEFT JOIN orders c ON c.parent_id = p.id
		WHERE p.zone_id = ?
		  AND p.order_type IN (?, ?)
		  AND p.status NOT IN (?, ?)
		GROUP BY p.id, p.order_number, p.order_type, p.table_number,
		         p.customer_name, p.status, p.total_cents, p.created_at
		ORDER BY p.created_at
	`,
		order.Ready.String(), order.Completed.String(), order.Cancelled.String(),
		query.ZoneID().Bytes(),
		order.TypeZoneMain.String(), order.TypeSingle.String(),
		order.Completed.String(), order.Cancelled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetZoneOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&row.OrderNumber,
			&row.OrderType,
			&row.TableNumber,
			&row.CustomerName,
			&row.Status,
			&row.TotalCents,
			&row.TotalShops,
			&row.ReadyShops,
			&row.CompletedShops,
			&row.CancelledShops,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = orderID

		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
