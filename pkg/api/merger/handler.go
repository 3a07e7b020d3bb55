// Package merger exposes merger screening over HTTP: evaluation, report
// rendering and stored history.
package merger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"eumr_screening/pkg/core/eumr"
	"eumr_screening/pkg/core/report"
	"eumr_screening/pkg/core/store"
)

type EvaluateRequest struct {
	Ticker1 string `json:"ticker1"`
	Ticker2 string `json:"ticker2"`
}

// Handler holds dependencies for the merger endpoints. Repo is nil when the
// store is disabled; evaluation still works, history returns 503.
type Handler struct {
	Evaluator *eumr.Evaluator
	Repo      *store.ScreeningRepo
}

// NewHandler creates a new merger handler.
func NewHandler(evaluator *eumr.Evaluator, repo *store.ScreeningRepo) *Handler {
	return &Handler{Evaluator: evaluator, Repo: repo}
}

// HandleEvaluate serves POST /api/merger/evaluate with the full analysis as
// JSON. 422 when financial data is unavailable for either ticker.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

// HandleReport serves POST /api/merger/report with the plain-text report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report.Render(analysis))
}

// evaluate decodes the request, runs the screening and best-effort persists
// the result. Responses for failure cases are written here.
func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) (*eumr.MergerAnalysis, bool) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return nil, false
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	ticker1 := strings.ToUpper(strings.TrimSpace(req.Ticker1))
	ticker2 := strings.ToUpper(strings.TrimSpace(req.Ticker2))
	if ticker1 == "" || ticker2 == "" {
		http.Error(w, "ticker1 and ticker2 are required", http.StatusBadRequest)
		return nil, false
	}

	analysis, err := h.Evaluator.Evaluate(r.Context(), ticker1, ticker2)
	if err != nil {
		fmt.Printf("[MERGER] %s/%s evaluation failed: %v\n", ticker1, ticker2, err)
		if errors.Is(err, eumr.ErrFinancialDataUnavailable) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		} else {
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return nil, false
	}

	if h.Repo != nil && store.Enabled() {
		// History is a convenience; a failed insert must not fail the
		// screening response.
		if err := h.Repo.Save(context.WithoutCancel(r.Context()), analysis); err != nil {
			fmt.Printf("[MERGER] failed to persist screening %s: %v\n", analysis.ID, err)
		}
	}

	return analysis, true
}

// HandleHistory serves GET /api/merger/history?limit=N (listing) and
// GET /api/merger/history/{id} (full stored analysis).
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.Repo == nil || !store.Enabled() {
		http.Error(w, "screening history store is disabled", http.StatusServiceUnavailable)
		return
	}

	if id := strings.TrimPrefix(r.URL.Path, "/api/merger/history/"); id != "" && !strings.Contains(id, "/") && id != r.URL.Path {
		analysis, err := h.Repo.Load(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(analysis)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	summaries, err := h.Repo.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if summaries == nil {
		summaries = []store.ScreeningSummary{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}
