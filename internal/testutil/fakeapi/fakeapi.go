// Package fakeapi is an in-memory stand-in for the upstream internship REST
// API, used by tests. It answers the way the real backend does:
// {"status":"ok","id":N} on success, {"status":"error","message":...} otherwise.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Request is a recorded call.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   map[string]int64
	rows     map[string]map[int64]map[string]any
	failures map[string][]failure
	requests []Request
}

var collections = []string{"students", "companies", "internships", "applications"}

func New() *Server {
	s := &Server{
		nextID:   make(map[string]int64),
		rows:     make(map[string]map[int64]map[string]any),
		failures: make(map[string][]failure),
	}
	for _, c := range collections {
		s.rows[c] = make(map[int64]map[string]any)
		s.nextID[c] = 1
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/api/{collection}", s.list).Methods(http.MethodGet)
	r.HandleFunc("/api/{collection}", s.create).Methods(http.MethodPost)
	r.HandleFunc("/api/{collection}/{id:[0-9]+}", s.update).Methods(http.MethodPut)
	r.HandleFunc("/api/{collection}/{id:[0-9]+}", s.remove).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// Seed stores a row as-is and returns its id. An "id" field in row is honoured.
func (s *Server) Seed(collection string, row map[string]any) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID[collection]
	if raw, ok := row["id"]; ok {
		id = toInt(raw)
	}
	stored := copyRow(row)
	stored["id"] = id
	s.rows[collection][id] = stored
	if id >= s.nextID[collection] {
		s.nextID[collection] = id + 1
	}
	return id
}

// SetNextID makes the next created row in collection get id.
func (s *Server) SetNextID(collection string, id int64) {
	s.mu.Lock()
	s.nextID[collection] = id
	s.mu.Unlock()
}

// FailNext makes the next request with method on path answer status with a
// raw body (not necessarily JSON).
func (s *Server) FailNext(method, path string, status int, body string) {
	s.mu.Lock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], failure{status: status, body: body})
	s.mu.Unlock()
}

// Row returns a stored row.
func (s *Server) Row(collection string, id int64) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[collection][id]
	if !ok {
		return nil, false
	}
	return copyRow(row), true
}

// Requests returns the recorded calls in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CountRequests counts recorded calls with method on path.
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		key := r.Method + " " + r.URL.Path
		var fail *failure
		if queue := s.failures[key]; len(queue) > 0 {
			f := queue[0]
			fail = &f
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if fail != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fail.status)
			_, _ = w.Write([]byte(fail.body))
			return
		}
		next.ServeHTTP(w, withBody(r, body))
	})
}

type bodyKey struct{}

func withBody(r *http.Request, body map[string]any) *http.Request {
	return r.WithContext(contextWithBody(r.Context(), body))
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	s.mu.Lock()
	table, ok := s.rows[collection]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	ids := make([]int64, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.joined(collection, table[id]))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	body := bodyFrom(r)
	if msg := validate(collection, body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	s.mu.Lock()
	table, ok := s.rows[collection]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	id := s.nextID[collection]
	s.nextID[collection] = id + 1
	row := copyRow(body)
	row["id"] = id
	if collection == "applications" {
		row["status"] = "Applied"
	}
	table[id] = row
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": id})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	body := bodyFrom(r)
	if collection != "applications" {
		if msg := validate(collection, body); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[collection][id]
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if collection == "applications" {
		status, _ := body["status"].(string)
		if status == "" {
			status = "Applied"
		}
		row["status"] = status
	} else {
		for k, v := range body {
			if k != "id" {
				row[k] = v
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[collection][id]; !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	delete(s.rows[collection], id)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// joined adds the display columns the real listing queries join in. Called with s.mu held.
func (s *Server) joined(collection string, row map[string]any) map[string]any {
	out := copyRow(row)
	switch collection {
	case "internships":
		if c, ok := s.rows["companies"][toInt(row["company_id"])]; ok {
			out["company_name"] = c["name"]
		}
	case "applications":
		if st, ok := s.rows["students"][toInt(row["student_id"])]; ok {
			out["student_name"] = st["name"]
			out["student_email"] = st["email"]
		}
		if in, ok := s.rows["internships"][toInt(row["internship_id"])]; ok {
			out["internship_title"] = in["title"]
			if c, ok := s.rows["companies"][toInt(in["company_id"])]; ok {
				out["company_name"] = c["name"]
			}
		}
	}
	return out
}

func validate(collection string, body map[string]any) string {
	str := func(k string) string {
		v, _ := body[k].(string)
		return strings.TrimSpace(v)
	}
	switch collection {
	case "students":
		if str("name") == "" {
			return "Name is required"
		}
		if e := str("email"); e != "" && !emailRe.MatchString(e) {
			return "Invalid email"
		}
	case "companies":
		if str("name") == "" {
			return "Name is required"
		}
	case "internships":
		if str("title") == "" {
			return "Title is required"
		}
	case "applications":
		if toInt(body["student_id"]) == 0 || toInt(body["internship_id"]) == 0 {
			return "student_id and internship_id are required"
		}
	}
	return ""
}

func toInt(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	case json.Number:
		n, _ := x.Int64()
		return n
	default:
		return 0
	}
}

func copyRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": msg})
}

// Path builds "/api/{collection}/{id}".
func Path(collection string, id int64) string {
	return fmt.Sprintf("/api/%s/%d", collection, id)
}
