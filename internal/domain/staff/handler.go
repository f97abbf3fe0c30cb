package staff

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
	// Directory reads also serve the scheduling screens (doctor dropdowns).
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RoleReceptionist))
	read.GET("/staff", h.List)
	read.GET("/staff/:id", h.Get)

	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.POST("/staff", h.Add)
	admin.PUT("/staff/:id", h.Update)
	admin.DELETE("/staff/:id", h.Remove)
}

func (h *Handler) Add(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	var in AddInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in.CreatedBy = &scope.StaffID
	hu, err := h.svc.Add(c.Request().Context(), scope.HospitalID, in)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusCreated, hu)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	hu, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	return c.JSON(http.StatusOK, hu)
}

func (h *Handler) List(c echo.Context) error {
	scope, _ := auth.ScopeFromContext(c.Request().Context())
	pg := pagination.FromContext(c)

	if role := c.QueryParam("role"); role != "" {
		members, total, err := h.svc.ListByRole(c.Request().Context(), scope.HospitalID, auth.Role(role), pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(errs.Status(err), err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(members, total, pg.Limit, pg.Offset))
	}

	members, total, err := h.svc.List(c.Request().Context(), scope.HospitalID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(members, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var hu HospitalUser
	if err := c.Bind(&hu); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hu.ID = id
	if err := h.svc.Update(c.Request().Context(), &hu); err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.JSON(http.StatusOK, hu)
}

func (h *Handler) Remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Remove(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(errs.Status(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
