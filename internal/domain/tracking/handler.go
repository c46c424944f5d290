package tracking

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helixlab/portal/internal/domain/order"
	"github.com/helixlab/portal/internal/platform/auth"
)

type Handler struct {
	orders *order.Service
	calc   *Calculator
}

func NewHandler(orders *order.Service, calc *Calculator) *Handler {
	return &Handler{orders: orders, calc: calc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/orders/:id", h.GetOrder)
	api.GET("/orders/:id/progress", h.GetProgress)
	api.GET("/orders/:id/tracking", h.GetTracking)
	api.GET("/statuses", h.GetStatuses, auth.RequireRole("staff"))
}

type orderResponse struct {
	*order.Aggregate
	Progress         int    `json:"progress"`
	CollectionMethod string `json:"collectionMethod"`
	TrackingSteps    []Step `json:"trackingSteps"`
}

// GetOrder returns the fully enriched aggregate for one order, with progress
// and the tracking timeline attached.
func (h *Handler) GetOrder(c echo.Context) error {
	agg, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{
		Aggregate:        agg,
		Progress:         h.calc.Progress(agg),
		CollectionMethod: CollectionMethod(agg),
		TrackingSteps:    GenerateSteps(agg),
	})
}

func (h *Handler) GetProgress(c echo.Context) error {
	agg, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orderId":  agg.Order.ID,
		"progress": h.calc.Progress(agg),
	})
}

func (h *Handler) GetTracking(c echo.Context) error {
	agg, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orderId":          agg.Order.ID,
		"collectionMethod": CollectionMethod(agg),
		"steps":            GenerateSteps(agg),
	})
}

// GetStatuses serves the status taxonomy tables the admin UI renders legends
// and pickers from.
func (h *Handler) GetStatuses(c echo.Context) error {
	return c.JSON(http.StatusOK, order.StatusTables())
}

func (h *Handler) load(c echo.Context) (*order.Aggregate, error) {
	orderID := c.Param("id")
	if orderID == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "order id is required")
	}

	ctx := c.Request().Context()
	userID := auth.UserIDFromContext(ctx)

	agg, err := h.orders.LoadAggregate(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return nil, echo.NewHTTPError(http.StatusBadGateway, "lab api unavailable")
	}
	return h.orders.AttachResults(ctx, agg), nil
}
