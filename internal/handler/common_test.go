package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func testContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserID(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    uint64
		wantErr bool
	}{
		{"float64 from JWT claims", float64(42), 42, false},
		{"int64", int64(7), 7, false},
		{"uint64", uint64(9), 9, false},
		{"numeric string", "15", 15, false},
		{"json.Number", json.Number("21"), 21, false},
		{"missing", nil, 0, true},
		{"garbage string", "abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t)
			if tt.value != nil {
				c.Set("user_id", tt.value)
			}
			got, err := getUserID(c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("getUserID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("getUserID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-07-01")
	if err != nil {
		t.Fatalf("parseDate() error = %v", err)
	}
	want := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate() = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "2024-7-1", "01-07-2024", "2024-07-01T00:00:00Z", "not a date"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) should fail", bad)
		}
	}
}
