package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/affscope/affscope/pkg/table"
)

// Row is one classified table row.
type Row struct {
	Name              string `json:"name"`
	Number            string `json:"number"`
	Type              string `json:"type"`
	TypeDescription   string `json:"typeDescription,omitempty"`
	Status            string `json:"status"`
	CanUseNameRequest bool   `json:"canUseNameRequest"`
}

type businessesResponse struct {
	Total       int   `json:"total"`
	EntityCount int   `json:"entityCount"`
	Businesses  []Row `json:"businesses"`
}

// newStore builds a per-request store over the shared collection. The store
// machinery is single-threaded, so requests never share one.
func (s *Server) newStore(r *http.Request) *table.Store {
	st := table.NewStore(s.Src, s.Classifier)
	for _, col := range []string{table.ColName, table.ColNumber, table.ColType, table.ColStatus} {
		if v := r.URL.Query().Get(strings.ToLower(col)); v != "" {
			st.UpdateFilter(col, v)
		}
	}
	st.Load("", "")
	return st
}

func (s *Server) handleBusinesses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.newStore(r)
	defer st.Close()

	state := st.State()
	rows := make([]Row, 0, len(state.Results))
	for _, b := range state.Results {
		rows = append(rows, Row{
			Name:              s.Classifier.Name(b),
			Number:            s.Classifier.Number(b),
			Type:              s.Classifier.Type(b),
			TypeDescription:   s.Classifier.TypeDescription(b),
			Status:            s.Classifier.Status(b),
			CanUseNameRequest: s.Classifier.CanUseNameRequest(b),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(businessesResponse{
		Total:       state.Total,
		EntityCount: st.EntityCount(),
		Businesses:  rows,
	})
}

func (s *Server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.newStore(r)
	defer st.Close()

	var columns []string
	if raw := r.URL.Query().Get("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(st.Headers(columns...))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, b := range s.Src.Records() {
		counts[s.Classifier.Type(b)]++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		EntityCount int            `json:"entityCount"`
		ByType      map[string]int `json:"byType"`
	}{
		EntityCount: len(s.Src.Records()),
		ByType:      counts,
	})
}
