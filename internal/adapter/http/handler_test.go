package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/payment"

	"github.com/labstack/echo/v4"
)

func TestHealth_ReturnsOKWithRFC3339NanoUTC(t *testing.T) {
	e := echo.New()
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	start := time.Now().UTC()

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Status code
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// Content-Type
	ct := rec.Header().Get(echo.HeaderContentType)
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	// Body JSON
	var body struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}

	if body.Status != "ok" {
		t.Fatalf(`expected status "ok", got %q`, body.Status)
	}

	// Time is RFC3339Nano and UTC (with 'Z')
	parsed, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", parsed.Location())
	}
	// Freshness: should be close to now (within a few seconds)
	now := time.Now().UTC()
	if parsed.Before(start.Add(-2*time.Second)) || parsed.After(now.Add(2*time.Second)) {
		t.Fatalf("time not within expected window: parsed=%v start=%v now=%v", parsed, start, now)
	}
}

func TestHealth_ReportsFailingDependency(t *testing.T) {
	e := echo.New()
	h := NewHandler().
		WithDependency("mysql", func(context.Context) error { return nil }).
		WithDependency("redis", func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body struct {
		Status  string            `json:"status"`
		Failing map[string]string `json:"failing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Status != "degraded" || body.Failing["redis"] == "" || body.Failing["mysql"] != "" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestWriteError_KindToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code int
		body string
	}{
		{loan.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
		{loan.ErrNotFound, http.StatusNotFound, "loan_not_found"},
		{loan.ErrNotLender, http.StatusForbidden, "not_loan_lender"},
		{payment.ErrAlreadyResolved, http.StatusConflict, "payment_already_resolved"},
		{fmt.Errorf("wrapped: %w", payment.ErrExceedsBalance), http.StatusConflict, "payment_exceeds_balance"},
		{errors.New("secret db detail"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if err := writeError(c, tt.err); err != nil {
			t.Fatalf("writeError: %v", err)
		}
		if rec.Code != tt.code {
			t.Fatalf("%v: status = %d want %d", tt.err, rec.Code, tt.code)
		}
		var er ErrorResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &er)
		if er.Code != tt.body {
			t.Fatalf("%v: code = %q want %q", tt.err, er.Code, tt.body)
		}
		if strings.Contains(rec.Body.String(), "secret") {
			t.Fatalf("internal error leaked: %s", rec.Body.String())
		}
	}
}
