// Package apitest levanta un API REST estilo JHipster en memoria para tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"petclinic-web/internal/adapters/storage/memory"
	"petclinic-web/internal/entity"
)

type Server struct {
	router chi.Router

	mu    sync.Mutex
	calls map[string]int
	fail  map[string]int
	empty map[string]bool
}

func New() *Server {
	s := &Server{
		router: chi.NewRouter(),
		calls:  make(map[string]int),
		fail:   make(map[string]int),
		empty:  make(map[string]bool),
	}
	s.router.Use(s.track)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start arranca un httptest.Server; el caller hace Close.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s)
}

// Calls cuenta requests por método y path exacto ("/api/pets/1").
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

// Fail hace que todo request a path responda status.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[path] = status
}

// EmptyBody hace que path responda 200 sin body.
func (s *Server) EmptyBody(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empty[path] = true
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method+" "+r.URL.Path]++
		status, failing := s.fail[r.URL.Path]
		empty := s.empty[r.URL.Path]
		s.mu.Unlock()

		if failing {
			http.Error(w, http.StatusText(status), status)
			return
		}
		if empty {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Register monta CRUD + _search para T bajo path ("api/owners").
func Register[T entity.Identifiable](s *Server, path string, setID func(*T, int64)) *memory.Store[T] {
	store := memory.NewStore(setID)
	h := &resource[T]{store: store}

	s.router.Route("/"+strings.Trim(path, "/"), func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/_search", h.search)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.patch)
		r.Delete("/{id}", h.delete)
	})
	return store
}

type resource[T entity.Identifiable] struct {
	store *memory.Store[T]
}

func (h *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := h.store.Create(r.Context(), in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	items, _ := h.store.List(r.Context())
	h.page(w, r, items)
}

// search hace match por substring sobre el JSON del registro.
func (h *resource[T]) search(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("query"))
	items, _ := h.store.List(r.Context())

	matched := make([]T, 0, len(items))
	for _, it := range items {
		b, _ := json.Marshal(it)
		if strings.Contains(strings.ToLower(string(b)), q) {
			matched = append(matched, it)
		}
	}
	h.page(w, r, matched)
}

func (h *resource[T]) page(w http.ResponseWriter, r *http.Request, items []T) {
	q := r.URL.Query()
	if sorts := q["sort"]; len(sorts) > 0 && strings.HasSuffix(sorts[0], ",desc") {
		slices.Reverse(items)
	}

	page, _ := strconv.Atoi(q.Get("page"))
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = 20
	}
	total := len(items)
	from := min(max(page, 0)*size, total)
	to := min(from+size, total)

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, http.StatusOK, items[from:to])
}

func (h *resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if in.GetID() == nil || *in.GetID() != id {
		http.Error(w, "id mismatch", http.StatusBadRequest)
		return
	}
	if err := h.store.Update(r.Context(), in); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// patch aplica merge-patch de primer nivel: null borra el campo.
func (h *resource[T]) patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cur, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var doc map[string]json.RawMessage
	b, _ := json.Marshal(cur)
	_ = json.Unmarshal(b, &doc)
	for k, v := range patch {
		if k == "id" {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}

	var merged T
	b, _ = json.Marshal(doc)
	if err := json.Unmarshal(b, &merged); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Update(r.Context(), merged); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

func (h *resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, memory.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
