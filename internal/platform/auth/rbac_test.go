package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func scopedContext(e *echo.Echo, role Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	scope := Scope{HospitalID: uuid.New(), StaffID: uuid.New(), UserID: uuid.New(), Role: role}
	c.SetRequest(req.WithContext(WithScope(req.Context(), scope)))
	return c, rec
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	c, rec := scopedContext(e, RoleDoctor)

	called := false
	h := RequireRole(RoleDoctor)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Errorf("expected handler to run, code=%d", rec.Code)
	}
}

func TestRequireRole_MismatchRedirectsToOwnLanding(t *testing.T) {
	e := echo.New()
	c, rec := scopedContext(e, RolePharmacist)

	h := RequireRole(RoleDoctor)(func(c echo.Context) error {
		t.Fatal("handler must not run for mismatched role")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["landing"] != "/pharmacist" {
		t.Errorf("expected landing /pharmacist, got %q", body["landing"])
	}
}

func TestRequireRole_NoScopeDenied(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireRole(RoleAdmin)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 without scope, got %d", rec.Code)
	}
}

func TestRoleLanding(t *testing.T) {
	if RoleAdmin.Landing() != "/admin" {
		t.Errorf("unexpected admin landing: %s", RoleAdmin.Landing())
	}
	if Role("intruder").Landing() != "/" {
		t.Errorf("invalid role should land at /")
	}
	if !RoleReceptionist.Valid() {
		t.Error("receptionist should be a valid role")
	}
}
