// Package server exposes the classified, filtered business table as a small
// JSON API consumed by the view layer.
package server

import (
	"net/http"
	"sync"

	"github.com/affscope/affscope/internal/utils"
	"github.com/affscope/affscope/pkg/entity"
	"github.com/affscope/affscope/pkg/source"
)

type Server struct {
	Src        source.Collection
	Classifier *entity.Classifier

	// The collection and store machinery follow the single-threaded UI
	// model, so handlers take turns.
	mu sync.Mutex
}

func New(src source.Collection, classifier *entity.Classifier) *Server {
	return &Server{
		Src:        src,
		Classifier: classifier,
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/businesses", s.handleBusinesses)
	mux.HandleFunc("GET /api/headers", s.handleHeaders)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	utils.Log.Info("Starting server on ", addr)
	return http.ListenAndServe(addr, mux)
}
