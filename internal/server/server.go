// internal/server/server.go

// Package server exposes the mutation engine over a small JSON REST API,
// for callers that want single-shot draws without shelling out to the CLI.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/rand"
)

// Handler holds the shared random source. chi serves requests concurrently,
// so draws are serialized behind a mutex; the CLI path never contends.
type Handler struct {
	mu  sync.Mutex
	src rand.Source
}

// New returns a Handler seeded with seed.
func New(seed uint64) *Handler {
	return &Handler{src: rand.NewSource(seed)}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/mutate", h.Mutate)
		r.Post("/sample/count", h.SampleCount)
		r.Post("/sample/indel-length", h.SampleIndelLength)
		r.Post("/records/parse", h.ParseRecords)
	})

	return r
}
