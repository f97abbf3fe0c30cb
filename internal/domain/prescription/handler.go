package prescription

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
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RolePharmacist))
	read.GET("/prescriptions/:id", h.Get)
	read.GET("/visits/:visitId/prescriptions", h.ListByVisit)

	api.GET("/prescriptions/pending", h.ListPending,
		auth.RequireRole(auth.RoleAdmin, auth.RolePharmacist))

	api.POST("/visits/:visitId/prescriptions", h.Issue,
		auth.RequireRole(auth.RoleDoctor))

	api.PATCH("/prescriptions/:id/status", h.UpdateStatus,
		auth.RequireRole(auth.RoleDoctor, auth.RolePharmacist))
}

// IssueRequest carries the prescribing form for a visit.
type IssueRequest struct {
	Items []Item `json:"items"`
}

func (h *Handler) Issue(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	visitID, err := uuid.Parse(c.Param("visitId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}
	var req IssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	batch, err := h.svc.Issue(c.Request().Context(), visitID, scope.StaffID, req.Items)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusCreated, batch)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListByVisit(c echo.Context) error {
	visitID, err := uuid.Parse(c.Param("visitId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}
	ps, err := h.svc.ListByVisit(c.Request().Context(), visitID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *Handler) ListPending(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	items, total, err := h.svc.ListPending(c.Request().Context(), scope.HospitalID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status); err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": body.Status})
}
