// Package web serves a small read-only HTTP API over the element registry.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/balt-dev/titanium/common"
	"github.com/balt-dev/titanium/db"
	"github.com/balt-dev/titanium/db/stats"
	"github.com/balt-dev/titanium/elements"
)

// Backend is the part of the bot the API reads from.
type Backend interface {
	Registry() *elements.Registry
	TableBytes(ctx context.Context, name string) ([]byte, error)
	LookupCounts(ctx context.Context, limit uint64) ([]db.LookupCount, error)
}

type Server struct {
	backend Backend
	stats   *stats.Client
	start   time.Time
	mux     *chi.Mux
}

func New(b Backend, st *stats.Client, start time.Time) *Server {
	s := &Server{
		backend: b,
		stats:   st,
		start:   start,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/elements", s.elements)
	r.Get("/elements/{query}", s.element)
	r.Get("/lookups", s.lookups)
	r.Get("/table.png", s.table)

	s.mux = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Listen serves the API on the given port, retrying if the listener dies.
func (s *Server) Listen(port string) {
	common.Log.Infof("API listening on :%v", port)

	go func() {
		for {
			err := http.ListenAndServe(":"+port, s)
			if err != nil {
				common.Log.Errorf("Error serving API: %v", err)
			}
			time.Sleep(30 * time.Second)
		}
	}()
}

type healthResponse struct {
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Elements int    `json:"elements"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Version: common.Version,
		Uptime:  time.Since(s.start).Round(time.Second).String(),
	}
	if reg := s.backend.Registry(); reg != nil {
		resp.Elements = reg.Len()
	}

	render.JSON(w, r, resp)
}

type elementResponse struct {
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	AtomicNumber *int   `json:"atomic_number,omitempty"`
	Pronouns     string `json:"pronouns"`
	Author       string `json:"author"`
	Table        string `json:"table"`
}

func newElementResponse(e *elements.Element) elementResponse {
	resp := elementResponse{
		Name:     e.Name,
		Symbol:   e.Symbol,
		Pronouns: e.Pronouns,
		Author:   e.Author,
		Table:    e.TableName(),
	}
	if e.AtomicNumber >= 0 {
		n := e.AtomicNumber
		resp.AtomicNumber = &n
	}
	return resp
}

func (s *Server) elements(w http.ResponseWriter, r *http.Request) {
	s.stats.IncQuery()

	reg := s.backend.Registry()
	if reg == nil {
		errorJSON(w, r, http.StatusServiceUnavailable, "no elements loaded")
		return
	}

	resp := make([]elementResponse, 0, reg.Len())
	for _, e := range reg.Elements() {
		resp = append(resp, newElementResponse(e))
	}

	render.JSON(w, r, resp)
}

func (s *Server) element(w http.ResponseWriter, r *http.Request) {
	s.stats.IncQuery()

	reg := s.backend.Registry()
	if reg == nil {
		errorJSON(w, r, http.StatusServiceUnavailable, "no elements loaded")
		return
	}

	e, ok := reg.Lookup(chi.URLParam(r, "query"))
	if !ok {
		errorJSON(w, r, http.StatusNotFound, "element not found")
		return
	}

	render.JSON(w, r, newElementResponse(e))
}

func (s *Server) lookups(w http.ResponseWriter, r *http.Request) {
	s.stats.IncQuery()

	counts, err := s.backend.LookupCounts(r.Context(), 10)
	if err != nil {
		common.Log.Errorf("Error getting lookup counts: %v", err)
		errorJSON(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if counts == nil {
		counts = []db.LookupCount{}
	}

	render.JSON(w, r, counts)
}

func (s *Server) table(w http.ResponseWriter, r *http.Request) {
	s.stats.IncQuery()

	name := r.URL.Query().Get("table")
	if name == "" {
		name = elements.DefaultTable
	}

	b, err := s.backend.TableBytes(r.Context(), name)
	if err != nil {
		errorJSON(w, r, http.StatusNotFound, "table not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(b)
}

func errorJSON(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}
