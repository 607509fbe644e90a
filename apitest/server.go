// ABOUTME: In-memory fake of the freight REST backend for tests
// ABOUTME: Serves CRUD, upload, and email routes with chi and records every request
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is one recorded call.
type Request struct {
	Method      string
	Path        string
	Auth        string
	RequestID   string
	ContentType string
	Body        []byte
	Form        map[string]string
	Files       map[string]string
}

// JSON decodes the recorded body into a generic map.
func (r Request) JSON() map[string]any {
	out := map[string]any{}
	_ = json.Unmarshal(r.Body, &out)
	return out
}

// Server is a fake backend rooted at URL()+"/api".
type Server struct {
	srv *httptest.Server

	// Token, when set, is the only bearer token accepted.
	Token string

	mu       sync.Mutex
	store    map[string]map[int64]map[string]any
	nextID   int64
	requests []Request
	failures map[string]int
}

// NewServer starts a fake backend that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		store:    map[string]map[int64]map[string]any{},
		nextID:   1,
		failures: map[string]int{},
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API root to hand to api.New.
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

// FileRoot is the public file root matching URL().
func (s *Server) FileRoot() string {
	return s.srv.URL
}

// Seed stores records under resource, assigning ids to records without one.
func (s *Server) Seed(resource string, records ...any) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		fields := toMap(rec)
		id := s.assignID(fields)
		s.table(resource)[id] = fields
		ids = append(ids, id)
	}
	return ids
}

// Fail makes method+path answer with status. A path ending in "/*" matches any suffix.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Requests returns every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and a path prefix.
func (s *Server) Count(method, pathPrefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, pathPrefix) {
			n++
		}
	}
	return n
}

// Record returns a stored record as a field map.
func (s *Server) Record(resource string, id int64) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.table(resource)[id]
	return rec, ok
}

// Len returns the number of stored records for resource.
func (s *Server) Len(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.table(resource))
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.auth)
	r.Use(s.injectFailures)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Post("/quote/send-email", s.handleSendEmail)
		r.Get("/{resource}", s.handleList)
		r.Post("/{resource}", s.handleCreate)
		r.Get("/{resource}/{id}", s.handleGet)
		r.Put("/{resource}/{id}", s.handleUpdate)
		r.Delete("/{resource}/{id}", s.handleDelete)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		req := Request{
			Method:      r.Method,
			Path:        strings.TrimPrefix(r.URL.Path, "/api"),
			Auth:        r.Header.Get("Authorization"),
			RequestID:   r.Header.Get("X-Request-Id"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		}
		if strings.HasPrefix(req.ContentType, "multipart/form-data") {
			req.Form, req.Files = parseMultipart(r)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.Token {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		status := s.failures[r.Method+" "+path]
		if status == 0 {
			for key, st := range s.failures {
				if prefix, ok := strings.CutSuffix(key, "/*"); ok && strings.HasPrefix(r.Method+" "+path, prefix+"/") {
					status = st
					break
				}
			}
		}
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	s.mu.Lock()
	table := s.table(resource)
	ids := make([]int64, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, table[id])
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, found := s.Record(resource, id)
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	delete(fields, "id")

	s.mu.Lock()
	id := s.assignID(fields)
	s.table(resource)[id] = fields
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, fields)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found := s.table(resource)[id]
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var patch map[string]any
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		form, files := parseMultipart(r)
		patch = coerceForm(existing, form)
		for field, name := range files {
			patch[field] = "/uploads/" + name
		}
	} else if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	merged := map[string]any{}
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	merged["id"] = float64(id)
	s.table(resource)[id] = merged

	writeJSON(w, http.StatusOK, merged)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.table(resource)[id]; !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	delete(s.table(resource), id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	_, files := parseMultipart(r)
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no file")
		return
	}

	out := map[string]any{}
	for field, name := range files {
		out[field] = map[string]string{
			"fileUrl":  "/uploads/" + name,
			"fileName": name,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": out})
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs     []int64 `json:"ids"`
		Subject string  `json:"subject"`
		Content string  `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.IDs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "ids are required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sent": len(body.IDs)})
}

func (s *Server) table(resource string) map[int64]map[string]any {
	t, ok := s.store[resource]
	if !ok {
		t = map[int64]map[string]any{}
		s.store[resource] = t
	}
	return t
}

func (s *Server) assignID(fields map[string]any) int64 {
	if v, ok := fields["id"].(float64); ok && v > 0 {
		id := int64(v)
		if id >= s.nextID {
			s.nextID = id + 1
		}
		return id
	}
	id := s.nextID
	s.nextID++
	fields["id"] = float64(id)
	return id
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func parseMultipart(r *http.Request) (map[string]string, map[string]string) {
	form := map[string]string{}
	files := map[string]string{}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return form, files
	}
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			form[k] = v[0]
		}
	}
	for k, v := range r.MultipartForm.File {
		if len(v) > 0 {
			files[k] = v[0].Filename
		}
	}
	return form, files
}

// coerceForm converts multipart text back to the kinds already stored.
func coerceForm(existing map[string]any, form map[string]string) map[string]any {
	out := map[string]any{}
	for k, v := range form {
		switch existing[k].(type) {
		case bool:
			out[k] = v == "1" || v == "true"
		case float64:
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				n = 0
			}
			out[k] = n
		case []any:
			var list []any
			if err := json.Unmarshal([]byte(v), &list); err != nil {
				list = []any{}
			}
			out[k] = list
		default:
			out[k] = v
		}
	}
	return out
}

func toMap(rec any) map[string]any {
	if m, ok := rec.(map[string]any); ok {
		return m
	}
	data, err := json.Marshal(rec)
	if err != nil {
		panic(fmt.Sprintf("apitest: cannot encode seed record: %v", err))
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("apitest: cannot decode seed record: %v", err))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
