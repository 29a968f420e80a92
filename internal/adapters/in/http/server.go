// Package http exposes the ordering API over Echo. Handlers translate wire
// requests into commands and queries and map domain errors onto stable
// machine-readable codes; all business rules live below this layer.
package http

import (
	"net/http"

	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createZoneOrderHandler   commands.CreateZoneOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getTrackingHandler   queries.GetTrackingQueryHandler
	getZoneOrdersHandler queries.GetZoneOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createZoneOrderHandler commands.CreateZoneOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getZoneOrdersHandler queries.GetZoneOrdersQueryHandler,
) *Server {
	return &Server{
		createZoneOrderHandler:   createZoneOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getTrackingHandler:       getTrackingHandler,
		getZoneOrdersHandler:     getZoneOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/zones/:zoneId/orders", s.CreateZoneOrder)
	api.GET("/zones/:zoneId/orders", s.GetZoneOrders)
	api.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	api.GET("/tracking/:orderNumber", s.GetTracking)

	e.GET("/health", s.Health)
}

// CreateZoneOrder handles POST /api/v1/zones/:zoneId/orders - splits a
// multi-shop cart into an atomic order family.
func (s *Server) CreateZoneOrder(ctx echo.Context) error {
	zoneID, err := kernel.UUIDFromString(ctx.Param("zoneId"))
	if err != nil {
		return respondValidationError(ctx, err)
	}

	var request CreateZoneOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return respondValidationError(ctx, err)
	}

	lines := make([]commands.CartLine, 0, len(request.Items))
	for _, item := range request.Items {
		itemID, lineErr := kernel.UUIDFromString(item.ItemID)
		if lineErr != nil {
			return respondValidationError(ctx, lineErr)
		}
		lines = append(lines, commands.CartLine{
			ItemID:    itemID,
			Quantity:  item.Quantity,
			Modifiers: item.Modifiers,
		})
	}

	cmd, err := commands.NewCreateZoneOrderCommand(
		zoneID,
		request.TableNumber, request.CustomerName, request.CustomerPhone, request.PaymentMethod,
		lines,
	)
	if err != nil {
		return respondValidationError(ctx, err)
	}

	result, err := s.createZoneOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := CreateZoneOrderResponse{
		OrderID:     result.Parent.ID().String(),
		OrderNumber: result.Parent.OrderNumber(),
		OrderType:   result.Parent.Type().String(),
		Status:      result.Parent.Status().String(),
		TotalCents:  result.Parent.Pricing().Total(),
		ShopOrders:  make([]ShopOrderResponse, 0, len(result.Children)),
	}
	for _, child := range result.Children {
		shopID := ""
		if id := child.ShopID(); id != nil {
			shopID = id.String()
		}
		response.ShopOrders = append(response.ShopOrders, ShopOrderResponse{
			OrderID:     child.ID().String(),
			OrderNumber: child.OrderNumber(),
			ShopID:      shopID,
			Status:      child.Status().String(),
			TotalCents:  child.Pricing().Total(),
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderId/status - transitions
// a single or zone_shop order and recomputes the parent when needed.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondValidationError(ctx, err)
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return respondValidationError(ctx, err)
	}

	next, err := order.StatusFromString(request.Status)
	if err != nil {
		return respondValidationError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, next, request.Actor, request.Notes)
	if err != nil {
		return respondValidationError(ctx, err)
	}
	if request.ExpectedStatus != "" {
		expected, expectedErr := order.StatusFromString(request.ExpectedStatus)
		if expectedErr != nil {
			return respondValidationError(ctx, expectedErr)
		}
		cmd = cmd.WithExpectedStatus(expected)
	}

	result, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := UpdateOrderStatusResponse{
		OrderID:     result.Order.ID().String(),
		OrderNumber: result.Order.OrderNumber(),
		Status:      result.Order.Status().String(),
	}
	if result.Parent != nil {
		parentStatus := result.Parent.Status().String()
		response.ParentStatus = &parentStatus
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetTracking handles GET /api/v1/tracking/:orderNumber - returns the family
// tracking snapshot. The optional phone query parameter is the access key;
// when supplied, a mismatch is indistinguishable from an unknown order
// number.
func (s *Server) GetTracking(ctx echo.Context) error {
	query, err := queries.NewGetTrackingQuery(ctx.Param("orderNumber"), ctx.QueryParam("phone"))
	if err != nil {
		return respondValidationError(ctx, err)
	}

	snapshot, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// GetZoneOrders handles GET /api/v1/zones/:zoneId/orders - lists the zone's
// active orders for the staff dashboard.
func (s *Server) GetZoneOrders(ctx echo.Context) error {
	zoneID, err := kernel.UUIDFromString(ctx.Param("zoneId"))
	if err != nil {
		return respondValidationError(ctx, err)
	}

	query, err := queries.NewGetZoneOrdersQuery(zoneID)
	if err != nil {
		return respondValidationError(ctx, err)
	}

	rows, err := s.getZoneOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ZoneOrderResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, ZoneOrderResponse{
			OrderID:        row.ID.String(),
			OrderNumber:    row.OrderNumber,
			OrderType:      row.OrderType,
			TableNumber:    row.TableNumber,
			CustomerName:   row.CustomerName,
			Status:         row.Status,
			TotalCents:     row.TotalCents,
			TotalShops:     row.TotalShops,
			ReadyShops:     row.ReadyShops,
			CompletedShops: row.CompletedShops,
			CancelledShops: row.CancelledShops,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
