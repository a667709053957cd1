// Package api exposes the copula selection engine over HTTP: one-shot
// family selection, theoretical signatures, stored validation runs,
// and a debugging chart endpoint.
package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/db"
	"github.com/banshee-data/copula.report/internal/mnsig"
)

type Server struct {
	db *db.DB
}

func NewServer(database *db.DB) *Server {
	return &Server{db: database}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/select", s.handleSelect)
	mux.HandleFunc("/api/signature", s.handleSignature)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/debug/signature", s.handleSignatureChart)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Copula signature server"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

type selectRequest struct {
	// Data is the MxN sample matrix, row major.
	Data [][]float64 `json:"data"`
	// GridK overrides the K=4 default when positive.
	GridK int `json:"grid_k,omitempty"`
	// Families overrides the default candidate list.
	Families []string `json:"families,omitempty"`
}

type selectResponse struct {
	Family      string             `json:"family"`
	Theta       float64            `json:"theta"`
	Tau         float64            `json:"tau"`
	Divergences map[string]float64 `json:"divergences"`
	// Excluded lists candidates ruled out by the boundary policy
	// (their divergence is infinite, which JSON cannot carry).
	Excluded []string `json:"excluded,omitempty"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	x, err := denseFromRows(req.Data)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	selector := mnsig.NewSelector()
	if req.GridK > 0 {
		selector.K = req.GridK
	}
	if len(req.Families) > 0 {
		families := make([]copula.Family, 0, len(req.Families))
		for _, name := range req.Families {
			f, err := copula.ParseFamily(name)
			if err != nil {
				s.writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			families = append(families, f)
		}
		selector.Families = families
	}

	sel, err := selector.Select(x)
	if err != nil {
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := selectResponse{
		Family:      sel.Family.String(),
		Theta:       sel.Theta,
		Tau:         sel.Tau,
		Divergences: make(map[string]float64, len(sel.Divergences)),
	}
	for f, d := range sel.Divergences {
		if math.IsInf(d, 1) {
			resp.Excluded = append(resp.Excluded, f.String())
			continue
		}
		resp.Divergences[f.String()] = d
	}
	s.writeJSON(w, resp)
}

func (s *Server) handleSignature(w http.ResponseWriter, r *http.Request) {
	family, tau, k, ok := s.signatureParams(w, r)
	if !ok {
		return
	}

	sig, err := mnsig.Signature(family, copula.Kendall(tau), k)
	if err != nil {
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	sum := 0.0
	for _, v := range sig {
		sum += v
	}
	s.writeJSON(w, map[string]any{
		"family":    family.String(),
		"tau":       tau,
		"grid_k":    k,
		"signature": sig,
		"sum":       sum,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeJSONError(w, http.StatusNotFound, "no results database configured")
		return
	}

	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	runs, err := s.db.ListRuns(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, map[string]any{"runs": runs})
}

// signatureParams pulls family/tau/k out of the query string, writing
// the error response itself on failure.
func (s *Server) signatureParams(w http.ResponseWriter, r *http.Request) (copula.Family, float64, int, bool) {
	family, err := copula.ParseFamily(r.URL.Query().Get("family"))
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return 0, 0, 0, false
	}

	tau, err := strconv.ParseFloat(r.URL.Query().Get("tau"), 64)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid tau: %v", err))
		return 0, 0, 0, false
	}

	k := mnsig.DefaultK
	if ks := r.URL.Query().Get("k"); ks != "" {
		k, err = strconv.Atoi(ks)
		if err != nil || k < 1 {
			s.writeJSONError(w, http.StatusBadRequest, "invalid grid resolution k")
			return 0, 0, 0, false
		}
	}
	return family, tau, k, true
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sample matrix")
	}
	n := len(rows[0])
	if n < 2 {
		return nil, fmt.Errorf("sample matrix needs at least 2 columns, got %d", n)
	}
	x := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("ragged sample matrix: row %d has %d values, want %d", i, len(row), n)
		}
		x.SetRow(i, row)
	}
	return x, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
