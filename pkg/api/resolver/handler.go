// Package resolver exposes ticker resolution over HTTP.
package resolver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"eumr_screening/pkg/core/resolve"
)

type Request struct {
	Name string `json:"name"`
}

type Response struct {
	Candidates []resolve.Candidate `json:"candidates"`
	Error      string              `json:"error,omitempty"`
}

// Handler holds dependencies for the resolution endpoint.
type Handler struct {
	Resolver *resolve.Resolver
}

// NewHandler creates a new resolver handler.
func NewHandler(r *resolve.Resolver) *Handler {
	return &Handler{Resolver: r}
}

// HandleResolve serves POST /api/resolve. Resolution-machinery failures are
// returned as an in-band error field (with a 502) so the UI can show them
// verbatim; an empty candidate list with no error means "no match".
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	candidates, err := h.Resolver.Resolve(r.Context(), req.Name)
	if err != nil {
		fmt.Printf("[RESOLVE] %q failed: %v\n", req.Name, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(Response{Error: err.Error()})
		return
	}

	if candidates == nil {
		candidates = []resolve.Candidate{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Candidates: candidates})
}
