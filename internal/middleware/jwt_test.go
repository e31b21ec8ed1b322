package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ktvilla/villa-booking/internal/utils"
)

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"

	at, err := utils.NewAccessToken(secret, 42, "MEMBER", "trusted", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{"valid token", "Bearer " + at.Token, http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"not a bearer", "Basic abc123", http.StatusUnauthorized, false},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			nextCalled := false
			h := JWTAuth(secret)(func(c echo.Context) error {
				nextCalled = true
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
			if tt.wantNext {
				if sub, _ := c.Get("user_id").(float64); uint64(sub) != 42 {
					t.Errorf("user_id = %v, want 42", c.Get("user_id"))
				}
				if c.Get("role") != "MEMBER" {
					t.Errorf("role = %v, want MEMBER", c.Get("role"))
				}
				if c.Get("trust_level") != "trusted" {
					t.Errorf("trust_level = %v, want trusted", c.Get("trust_level"))
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       interface{}
		allowed    []string
		wantStatus int
	}{
		{"role allowed", "ADMIN", []string{"ADMIN"}, http.StatusOK},
		{"role in wider set", "MEMBER", []string{"ADMIN", "MEMBER"}, http.StatusOK},
		{"role not allowed", "MEMBER", []string{"ADMIN"}, http.StatusForbidden},
		{"role missing", nil, []string{"ADMIN"}, http.StatusForbidden},
		{"role wrong type", 7, []string{"ADMIN"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}

			h := RequireRole(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
