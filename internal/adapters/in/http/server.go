// Package http exposes the order lifecycle over an echo JSON API: checkout,
// courier enrollment, manual trigger injection and read-side queries.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodbot/internal/core/application/trigger"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/application/usecases/queries"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	checkoutHandler        *commands.CheckoutCommandHandler
	registerCourierHandler *commands.RegisterCourierCommandHandler
	dispatcher             *trigger.Dispatcher

	activeOrdersHandler    queries.GetActiveOrdersQueryHandler
	courierEarningsHandler queries.GetCourierEarningsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	checkoutHandler *commands.CheckoutCommandHandler,
	registerCourierHandler *commands.RegisterCourierCommandHandler,
	dispatcher *trigger.Dispatcher,
	activeOrdersHandler queries.GetActiveOrdersQueryHandler,
	courierEarningsHandler queries.GetCourierEarningsQueryHandler,
) *Server {
	return &Server{
		checkoutHandler:        checkoutHandler,
		registerCourierHandler: registerCourierHandler,
		dispatcher:             dispatcher,
		activeOrdersHandler:    activeOrdersHandler,
		courierEarningsHandler: courierEarningsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/triggers", s.FireTrigger)
	api.POST("/couriers", s.RegisterCourier)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/couriers/:id/earnings", s.GetCourierEarnings)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type newOrderItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type newOrderRequest struct {
	UserID   int64          `json:"userId"`
	Items    []newOrderItem `json:"items"`
	Total    int            `json:"total"`
	Phone    string         `json:"phone"`
	Location string         `json:"location"`
	Payment  string         `json:"payment"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req newOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := order.NewItem(it.Name, it.Qty)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		items = append(items, item)
	}

	phone, err := kernel.NewPhone(req.Phone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	location, err := kernel.NewRawLocation(req.Location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	payment, err := order.ParsePayment(req.Payment)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCheckoutCommand(req.UserID, items, req.Total, phone, location, payment)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	number, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]int{"number": number})
}

type triggerRequest struct {
	Kind        string   `json:"kind"`
	OrderNumber int      `json:"orderNumber"`
	Actor       int64    `json:"actor"`
	Args        []string `json:"args"`
}

// FireTrigger handles POST /api/v1/triggers - injects a lifecycle trigger,
// the same path callback buttons take.
func (s *Server) FireTrigger(ctx echo.Context) error {
	var req triggerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	kind, err := trigger.ParseKind(req.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	t := trigger.Trigger{Kind: kind, OrderNumber: req.OrderNumber, Actor: req.Actor, Args: req.Args}
	if err := s.dispatcher.Dispatch(ctx.Request().Context(), t); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

type newCourierRequest struct {
	AdminID int64  `json:"adminId"`
	ChatID  int64  `json:"chatId"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

// RegisterCourier handles POST /api/v1/couriers - enrolls a courier.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	var req newCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	phone, err := kernel.NewPhone(req.Phone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRegisterCourierCommand(req.AdminID, req.ChatID, req.Name, phone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.registerCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetActiveOrders handles GET /api/v1/orders/active - lists in-flight orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.activeOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCourierEarnings handles GET /api/v1/couriers/:id/earnings.
func (s *Server) GetCourierEarnings(ctx echo.Context) error {
	courierID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	query, err := queries.NewGetCourierEarningsQuery(courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	earnings, err := s.courierEarningsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, earnings)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, commands.ErrNotAuthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrStatusConflict), errors.Is(err, commands.ErrCourierAlreadyRegistered):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}
