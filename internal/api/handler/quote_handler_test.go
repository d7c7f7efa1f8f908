package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

type stubQuoteService struct {
	computeFn func(ctx context.Context, input ports.QuoteInput) (*domain.PricingResult, error)
	getFn     func(ctx context.Context, input ports.GetQuoteInput) (*domain.PricingResult, error)
	listFn    func(ctx context.Context, input ports.ListQuotesInput) (*ports.ListQuotesResult, error)
}

func (s *stubQuoteService) ComputeQuote(ctx context.Context, input ports.QuoteInput) (*domain.PricingResult, error) {
	return s.computeFn(ctx, input)
}

func (s *stubQuoteService) GetQuote(ctx context.Context, input ports.GetQuoteInput) (*domain.PricingResult, error) {
	return s.getFn(ctx, input)
}

func (s *stubQuoteService) ListQuotes(ctx context.Context, input ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
	return s.listFn(ctx, input)
}

func newQuoteContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleClient)
	c.Set("client_id", "client_1")
	return c, rec
}

const structuredPayload = `{
	"origin": {"country": "CN", "city": "Shanghai"},
	"destination": {"country": "US", "city": "Los Angeles"},
	"cargo": {"weight_kg": 100, "volume_m3": 0.5, "classification_code": "8517.13.00", "declared_value": 1000},
	"transport": {"mode": "sea", "urgency": "standard"}
}`

const legacyPayload = `{"origin": "US", "destination": "IT", "weight": 100, "volume": 0.5, "transport_type": "air"}`

func TestQuoteHandler_Create_StructuredShape(t *testing.T) {
	stub := &stubQuoteService{
		computeFn: func(ctx context.Context, input ports.QuoteInput) (*domain.PricingResult, error) {
			if input.New == nil || input.Legacy != nil {
				t.Fatalf("payload with cargo must bind the structured shape: %+v", input)
			}
			if input.New.Cargo.WeightKg != 100 || input.New.Transport.Mode != "sea" {
				t.Fatalf("unexpected bound payload: %+v", input.New)
			}
			if input.ClientID != "client_1" {
				t.Fatalf("client id must come from the token, got %q", input.ClientID)
			}
			return &domain.PricingResult{ID: "q-1", TotalCost: 750.05}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newQuoteContext(t, http.MethodPost, "/v1/quotes", structuredPayload)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "q-1" {
		t.Errorf("unexpected response id: %v", resp["id"])
	}
	if resp["total_cost"] != 750.05 {
		t.Errorf("unexpected total cost: %v", resp["total_cost"])
	}
}

func TestQuoteHandler_Create_LegacyShape(t *testing.T) {
	stub := &stubQuoteService{
		computeFn: func(ctx context.Context, input ports.QuoteInput) (*domain.PricingResult, error) {
			if input.Legacy == nil || input.New != nil {
				t.Fatalf("payload without cargo must bind the legacy shape: %+v", input)
			}
			if input.Legacy.TransportType != "air" || input.Legacy.Weight != 100 {
				t.Fatalf("unexpected bound payload: %+v", input.Legacy)
			}
			return &domain.PricingResult{ID: "q-2"}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newQuoteContext(t, http.MethodPost, "/v1/quotes", legacyPayload)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestQuoteHandler_Create_InvalidJSON(t *testing.T) {
	stub := &stubQuoteService{
		computeFn: func(ctx context.Context, input ports.QuoteInput) (*domain.PricingResult, error) {
			t.Fatal("service must not be called on a malformed payload")
			return nil, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, _ := newQuoteContext(t, http.MethodPost, "/v1/quotes", "not-json")
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestQuoteHandler_Create_ValidationFailure(t *testing.T) {
	stub := &stubQuoteService{
		computeFn: func(ctx context.Context, input ports.QuoteInput) (*domain.PricingResult, error) {
			t.Fatal("service must not be called when validation fails")
			return nil, nil
		},
	}
	h := NewQuoteHandler(stub)

	// Structured shape with a zero weight.
	payload := strings.Replace(structuredPayload, `"weight_kg": 100`, `"weight_kg": 0`, 1)
	c, _ := newQuoteContext(t, http.MethodPost, "/v1/quotes", payload)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestQuoteHandler_Create_MissingClaims(t *testing.T) {
	h := NewQuoteHandler(&stubQuoteService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(legacyPayload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestQuoteHandler_Get_PassesScope(t *testing.T) {
	stub := &stubQuoteService{
		getFn: func(ctx context.Context, input ports.GetQuoteInput) (*domain.PricingResult, error) {
			if input.QuoteID != "q-42" || input.Role != domain.RoleClient || input.ClientID != "client_1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.PricingResult{ID: "q-42"}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newQuoteContext(t, http.MethodGet, "/v1/quotes/q-42", "")
	c.SetParamNames("id")
	c.SetParamValues("q-42")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestQuoteHandler_List_ParsesQuery(t *testing.T) {
	stub := &stubQuoteService{
		listFn: func(ctx context.Context, input ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
			if input.OriginCountry != "CN" || input.Mode != "sea" || input.Page != 2 || input.Limit != 5 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ListQuotesResult{Items: nil, Total: 0, Page: 2, Limit: 5}, nil
		},
	}
	h := NewQuoteHandler(stub)

	c, rec := newQuoteContext(t, http.MethodGet, "/v1/quotes?origin=CN&mode=sea&page=2&limit=5", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["pagination"]; !ok {
		t.Error("list response must carry a pagination block")
	}
}
