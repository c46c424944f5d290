package catalog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helixlab/portal/pkg/pagination"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/services", h.ListServices)
	api.GET("/services/:id", h.GetService)
}

func (h *Handler) ListServices(c echo.Context) error {
	services, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "lab api unavailable")
	}

	params := pagination.FromContext(c)
	lo, hi := params.Window(len(services))
	return c.JSON(http.StatusOK, pagination.NewResponse(services[lo:hi], len(services), params))
}

func (h *Handler) GetService(c echo.Context) error {
	svc, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "service not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "lab api unavailable")
	}
	return c.JSON(http.StatusOK, svc)
}
