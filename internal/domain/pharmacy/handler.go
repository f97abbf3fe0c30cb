package pharmacy

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hims/hims/internal/platform/auth"
	"github.com/hims/hims/pkg/errs"
	"github.com/hims/hims/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePharmacist))
	read.GET("/inventory", h.List)
	read.GET("/inventory/low-stock", h.LowStock)
	read.GET("/inventory/:id", h.Get)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePharmacist))
	write.POST("/inventory", h.Add)
	write.PUT("/inventory/:id", h.Update)
	write.DELETE("/inventory/:id", h.Remove)
	write.POST("/inventory/:id/restock", h.Restock)

	api.POST("/prescriptions/:id/fulfill", h.Fulfill,
		auth.RequireRole(auth.RolePharmacist))
	api.GET("/prescriptions/:id/fulfillments", h.Fulfillments,
		auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePharmacist))
}

func (h *Handler) Add(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	var in AddInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.svc.AddItem(c.Request().Context(), scope.HospitalID, &scope.StaffID, in)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	item, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "inventory item not found")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	item, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "inventory item not found")
	}
	if err := c.Bind(item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item.ID = id
	if err := h.svc.UpdateItem(c.Request().Context(), item); err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) Remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.RemoveItem(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) List(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	items, total, err := h.svc.Search(c.Request().Context(), scope.HospitalID, c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) LowStock(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	items, total, err := h.svc.LowStock(c.Request().Context(), scope.HospitalID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Restock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Restock(c.Request().Context(), id, body.Quantity); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "inventory item not found")
		}
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Fulfill(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	prescriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prescription id")
	}
	var in FulfillInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.svc.Fulfill(c.Request().Context(), prescriptionID, scope.StaffID, in)
	if errors.Is(err, ErrInsufficientStock) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) Fulfillments(c echo.Context) error {
	prescriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prescription id")
	}
	fs, err := h.svc.Fulfillments(c.Request().Context(), prescriptionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fs)
}
