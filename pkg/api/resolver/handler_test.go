package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eumr_screening/pkg/core/directory"
	"eumr_screening/pkg/core/finance"
	"eumr_screening/pkg/core/resolve"
)

type fakeUniverse struct {
	tickers []string
	err     error
}

func (f *fakeUniverse) Tickers(ctx context.Context) ([]string, error) {
	return f.tickers, f.err
}

type fakeProvider struct {
	names map[string]string
}

func (f *fakeProvider) Profile(ctx context.Context, ticker string) (*finance.CompanyProfile, error) {
	if name, ok := f.names[ticker]; ok {
		return &finance.CompanyProfile{Name: name, Ticker: ticker}, nil
	}
	return nil, finance.ErrNotFound
}

func (f *fakeProvider) GeoRevenue(ctx context.Context, ticker string) (map[string]float64, error) {
	return nil, nil
}

func newTestHandler(t *testing.T, uni resolve.Universe) *Handler {
	t.Helper()
	dir, err := directory.Parse([]byte(`{"technology": {"microsoft": "MSFT"}}`))
	if err != nil {
		t.Fatal(err)
	}
	provider := &fakeProvider{names: map[string]string{"MSFT": "Microsoft Corporation"}}
	return NewHandler(resolve.NewResolver(dir, uni, provider, time.Second))
}

func TestHandleResolveHit(t *testing.T) {
	h := newTestHandler(t, &fakeUniverse{})

	req := httptest.NewRequest("POST", "/api/resolve", strings.NewReader(`{"name": "Microsoft"}`))
	w := httptest.NewRecorder()
	h.HandleResolve(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if len(resp.Candidates) != 1 || resp.Candidates[0].Ticker != "MSFT" {
		t.Errorf("Unexpected candidates %+v", resp.Candidates)
	}
}

func TestHandleResolveNoMatch(t *testing.T) {
	h := newTestHandler(t, &fakeUniverse{})

	req := httptest.NewRequest("POST", "/api/resolve", strings.NewReader(`{"name": "Unknown Holdings"}`))
	w := httptest.NewRecorder()
	h.HandleResolve(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("No match is not an error; expected 200, got %d", w.Code)
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if resp.Candidates == nil || len(resp.Candidates) != 0 {
		t.Errorf("Expected empty candidate list, got %+v", resp.Candidates)
	}
	if resp.Error != "" {
		t.Errorf("Expected no in-band error, got %q", resp.Error)
	}
}

func TestHandleResolveMachineryFailure(t *testing.T) {
	h := newTestHandler(t, &fakeUniverse{err: errors.New("listing source down")})

	req := httptest.NewRequest("POST", "/api/resolve", strings.NewReader(`{"name": "Unknown Holdings"}`))
	w := httptest.NewRecorder()
	h.HandleResolve(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", w.Code)
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected in-band error description")
	}
}

func TestHandleResolveValidation(t *testing.T) {
	h := newTestHandler(t, &fakeUniverse{})

	req := httptest.NewRequest("POST", "/api/resolve", strings.NewReader(`{"name": ""}`))
	w := httptest.NewRecorder()
	h.HandleResolve(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty name, got %d", w.Code)
	}
}
