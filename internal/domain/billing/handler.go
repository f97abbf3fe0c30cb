package billing

import (
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
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleReceptionist))
	read.GET("/bills", h.List)
	read.GET("/bills/:id", h.Get)
	read.GET("/visits/:visitId/bill", h.GetByVisit)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleReceptionist))
	write.POST("/visits/:visitId/bill", h.CreateForVisit)
	write.POST("/bills/:id/payments", h.RecordPayment)
}

func (h *Handler) CreateForVisit(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	visitID, err := uuid.Parse(c.Param("visitId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}
	var body struct {
		TotalAmount float64 `json:"total_amount"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.CreateForVisit(c.Request().Context(), scope.HospitalID, visitID, body.TotalAmount)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) GetByVisit(c echo.Context) error {
	visitID, err := uuid.Parse(c.Param("visitId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}
	b, err := h.svc.GetByVisit(c.Request().Context(), visitID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) RecordPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.RecordPayment(c.Request().Context(), id, body.Amount)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) List(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	bills, total, err := h.svc.List(c.Request().Context(), scope.HospitalID, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(bills, total, pg.Limit, pg.Offset))
}
