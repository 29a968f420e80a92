package http

import (
	"errors"
	"net/http"

	"foodcourt/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body: a stable machine-readable code
// plus a human-readable message. Clients branch on the code, never on the
// message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CartLineRequest is one submitted cart entry. Prices are intentionally
// absent; the server resolves them from the menu.
type CartLineRequest struct {
	ItemID    string   `json:"itemId"`
	Quantity  int      `json:"quantity"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// CreateZoneOrderRequest is the body of POST /api/v1/zones/:zoneId/orders.
type CreateZoneOrderRequest struct {
	TableNumber   string            `json:"tableNumber"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	PaymentMethod string            `json:"paymentMethod"`
	Items         []CartLineRequest `json:"items"`
}

// ShopOrderResponse is one zone_shop child in the create response.
type ShopOrderResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	ShopID      string `json:"shopId"`
	Status      string `json:"status"`
	TotalCents  int64  `json:"totalCents"`
}

// CreateZoneOrderResponse describes the created order family.
type CreateZoneOrderResponse struct {
	OrderID     string              `json:"orderId"`
	OrderNumber string              `json:"orderNumber"`
	OrderType   string              `json:"orderType"`
	Status      string              `json:"status"`
	TotalCents  int64               `json:"totalCents"`
	ShopOrders  []ShopOrderResponse `json:"shopOrders"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/orders/:orderId/status.
// ExpectedStatus, when present, makes the transition a compare-and-set.
type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	Actor          string `json:"actor"`
	Notes          string `json:"notes,omitempty"`
	ExpectedStatus string `json:"expectedStatus,omitempty"`
}

// UpdateOrderStatusResponse reports the transitioned order and, when a child
// moved its parent, the parent's recomputed status.
type UpdateOrderStatusResponse struct {
	OrderID      string  `json:"orderId"`
	OrderNumber  string  `json:"orderNumber"`
	Status       string  `json:"status"`
	ParentStatus *string `json:"parentStatus,omitempty"`
}

// ZoneOrderResponse is one active order row on the zone dashboard.
type ZoneOrderResponse struct {
	OrderID        string `json:"orderId"`
	OrderNumber    string `json:"orderNumber"`
	OrderType      string `json:"orderType"`
	TableNumber    string `json:"tableNumber"`
	CustomerName   string `json:"customerName"`
	Status         string `json:"status"`
	TotalCents     int64  `json:"totalCents"`
	TotalShops     int    `json:"totalShops"`
	ReadyShops     int    `json:"readyShops"`
	CompletedShops int    `json:"completedShops"`
	CancelledShops int    `json:"cancelledShops"`
}

// httpStatusFor maps stable error codes to HTTP statuses. Unknown codes are
// internal failures.
func httpStatusFor(code string) int {
	switch code {
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeInvalidTransition, errs.CodeConcurrentModification:
		return http.StatusConflict
	case errs.CodeZoneUnavailable, errs.CodeItemUnavailable, errs.CodeNoEligibleShops:
		return http.StatusUnprocessableEntity
	case errs.CodeValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a domain error as the uniform error body. Validation
// sentinels from command constructors carry no code of their own and land on
// 400 via the default branch below.
func respondError(ctx echo.Context, err error) error {
	code := errs.Code(err)
	status := httpStatusFor(code)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak storage internals to API clients
		message = "internal error"
		if errors.Is(err, errs.ErrPersistenceFailure) {
			message = "temporary storage failure, retry the request"
		}
	}

	return ctx.JSON(status, ErrorResponse{Code: code, Message: message})
}

// respondValidationError renders constructor sentinel errors (which carry no
// stable code) as a validation failure.
func respondValidationError(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    errs.CodeValidationFailed,
		Message: err.Error(),
	})
}
