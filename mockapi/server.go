// Package mockapi serves the catalog and watch list endpoints from memory.
// It backs the mock-server command and end-to-end client tests.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"movielist-cli/model"
)

type Server struct {
	mu      sync.RWMutex
	details map[int]model.MovieDetail
	order   []int
	list    model.MyList
	logger  *slog.Logger
}

func New(details []model.MovieDetail, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		details: make(map[int]model.MovieDetail, len(details)),
		list:    model.EmptyList(),
		logger:  logger,
	}
	for _, d := range details {
		if _, exists := s.details[d.ID]; !exists {
			s.order = append(s.order, d.ID)
		}
		s.details[d.ID] = d
	}
	return s
}

// Handler returns the router for the four API routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/movies/all", s.handleCatalog).Methods(http.MethodGet)
	r.HandleFunc("/movies", s.handleDetail).Methods(http.MethodGet)
	r.HandleFunc("/mylist", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/mylist/add", s.handleAdd).Methods(http.MethodPost)
	return r
}

// List returns a copy of the current buckets.
func (s *Server) List() model.MyList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.MyList{
		ToWatch: slices.Clone(s.list.ToWatch),
		Watched: slices.Clone(s.list.Watched),
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	items := make([]model.CatalogItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.details[id].Item())
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.RLock()
	detail, ok := s.details[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.List())
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req model.AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Status != model.StatusToWatch && req.Status != model.StatusWatched {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	detail, ok := s.details[req.MovieID]
	if !ok {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}

	// an id lives in at most one bucket
	s.list.ToWatch = removeEntry(s.list.ToWatch, req.MovieID)
	s.list.Watched = removeEntry(s.list.Watched, req.MovieID)
	entry := model.WatchlistEntry{
		MovieID: detail.ID,
		Title:   detail.Title,
		Year:    detail.ReleaseDate.Year(),
		Genre:   slices.Clone(detail.Genre),
	}
	if detail.PosterURL != nil {
		entry.PosterURL = *detail.PosterURL
	}
	switch req.Status {
	case model.StatusToWatch:
		s.list.ToWatch = append(s.list.ToWatch, entry)
	case model.StatusWatched:
		s.list.Watched = append(s.list.Watched, entry)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"movieId": req.MovieID, "status": req.Status})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("mockapi.request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"request_id", r.Header.Get("X-Request-Id"),
			"elapsed", time.Since(start),
		)
	})
}

func removeEntry(entries []model.WatchlistEntry, id int) []model.WatchlistEntry {
	return slices.DeleteFunc(entries, func(e model.WatchlistEntry) bool { return e.MovieID == id })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
