// Package opensearchtest provides an in-process OpenSearch endpoint for
// tests. It verifies the signature of every request the way the real
// service does, rejects reused nonces, and keeps apps and documents in
// memory.
package opensearchtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/boostfield/ali-opensearch-sdk/signer"
)

// Error codes returned in FAIL envelopes.
const (
	CodeAppNotExist    = 2001
	CodeInvalidItems   = 3007
	CodeInvalidRequest = 1000
)

// Request is one request the server accepted for routing.
type Request struct {
	Method string
	Path   string
	Values signer.Values
}

// Server is a fake OpenSearch endpoint.
type Server struct {
	*httptest.Server

	creds  signer.Credentials
	router *mux.Router

	mu       sync.Mutex
	apps     map[string]map[string]map[string]any // app -> doc id -> fields
	nonces   map[string]bool
	requests []Request
}

// NewServer starts a server accepting requests signed with creds.
func NewServer(creds signer.Credentials) *Server {
	s := &Server{
		creds:  creds,
		apps:   make(map[string]map[string]map[string]any),
		nonces: make(map[string]bool),
	}

	r := mux.NewRouter()
	r.Use(s.verifySignature)
	r.HandleFunc("/search", s.handleSearch).Methods("GET")
	r.HandleFunc("/suggest", s.handleSuggest).Methods("GET")
	r.HandleFunc("/index", s.handleListApps).Methods("GET")
	r.HandleFunc("/index/{app}", s.handleAppStatus).Methods("GET")
	r.HandleFunc("/index/doc/{app}", s.handlePush).Methods("POST")
	s.router = r

	s.Server = httptest.NewServer(r)
	return s
}

// Router exposes the router so tests can add or override routes. Routes
// added here run behind the signature check.
func (s *Server) Router() *mux.Router { return s.router }

// CreateApp registers an empty app.
func (s *Server) CreateApp(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[name]; !ok {
		s.apps[name] = make(map[string]map[string]any)
	}
}

// Docs returns a copy of the documents of app keyed by id.
func (s *Server) Docs(app string) map[string]map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]map[string]any, len(s.apps[app]))
	for id, f := range s.apps[app] {
		fields := make(map[string]any, len(f))
		for k, v := range f {
			fields[k] = v
		}
		out[id] = fields
	}
	return out
}

// Requests returns the verified requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Values returns the signed parameter set of r: the query string for GET
// and DELETE, the form body otherwise.
func Values(r *http.Request) (signer.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	src := r.URL.Query()
	if r.Method != http.MethodGet && r.Method != http.MethodDelete {
		src = r.PostForm
	}
	out := make(signer.Values, len(src))
	for k, vs := range src {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out, nil
}

func (s *Server) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values, err := Values(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "MalformedRequest", err.Error())
			return
		}
		if values[signer.ParamAccessKeyID] != s.creds.KeyID {
			writeError(w, http.StatusForbidden, "InvalidAccessKeyId.NotFound", "unknown access key id")
			return
		}
		if err := signer.Verify(r.Method, values, s.creds.Secret); err != nil {
			writeError(w, http.StatusForbidden, "SignatureDoesNotMatch", err.Error())
			return
		}

		s.mu.Lock()
		nonce := values["SignatureNonce"]
		if nonce != "" && s.nonces[nonce] {
			s.mu.Unlock()
			writeError(w, http.StatusBadRequest, "SignatureNonceUsed", "nonce already used: "+nonce)
			return
		}
		s.nonces[nonce] = true
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Values: values})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hit := 10
	for _, clause := range strings.Split(q.Get("query"), "&&") {
		cfg, ok := strings.CutPrefix(clause, "config=")
		if !ok {
			continue
		}
		for _, kv := range strings.Split(cfg, ",") {
			if v, ok := strings.CutPrefix(kv, "hit:"); ok {
				if n, err := strconv.Atoi(v); err == nil {
					hit = n
				}
			}
		}
	}

	s.mu.Lock()
	var items []map[string]any
	for _, app := range strings.Split(q.Get("index_name"), ";") {
		docs, ok := s.apps[app]
		if !ok {
			s.mu.Unlock()
			writeFail(w, CodeAppNotExist, "app not exist: "+app)
			return
		}
		for _, id := range sortedIDs(docs) {
			items = append(items, map[string]any{"fields": docs[id]})
		}
	}
	s.mu.Unlock()

	total := len(items)
	if len(items) > hit {
		items = items[:hit]
	}
	writeOK(w, map[string]any{
		"searchtime": 0.001,
		"total":      total,
		"num":        len(items),
		"viewtotal":  total,
		"items":      items,
		"facet":      []any{},
	}, nil)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	app := q.Get("index_name")

	s.mu.Lock()
	docs, ok := s.apps[app]
	var suggestions []map[string]string
	if ok {
		for _, id := range sortedIDs(docs) {
			title, _ := docs[id]["title"].(string)
			if title != "" && strings.HasPrefix(title, q.Get("query")) {
				suggestions = append(suggestions, map[string]string{"suggestion": title})
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeFail(w, CodeAppNotExist, "app not exist: "+app)
		return
	}
	writeOK(w, map[string]any{"searchtime": 0.001, "suggestions": suggestions}, nil)
}

func (s *Server) handleListApps(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	names := make([]string, 0, len(s.apps))
	for name := range s.apps {
		names = append(names, name)
	}
	s.mu.Unlock()
	sort.Strings(names)

	apps := make([]map[string]string, 0, len(names))
	for i, name := range names {
		apps = append(apps, map[string]string{"id": strconv.Itoa(i + 1), "name": name, "type": "standard"})
	}
	writeOK(w, apps, map[string]any{"total": len(apps)})
}

func (s *Server) handleAppStatus(w http.ResponseWriter, r *http.Request) {
	app := mux.Vars(r)["app"]
	if r.URL.Query().Get("action") != "status" {
		writeFail(w, CodeInvalidRequest, "unsupported action")
		return
	}
	s.mu.Lock()
	docs, ok := s.apps[app]
	n := len(docs)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "AppNotFound", "app not exist: "+app)
		return
	}
	writeOK(w, map[string]any{
		"index_name":      app,
		"status":          "OK",
		"data_size":       n,
		"quota_data_size": 1024,
		"quota_qps":       6,
	}, nil)
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	app := mux.Vars(r)["app"]
	form := r.PostForm
	if form.Get("action") != "push" || form.Get("table_name") == "" {
		writeFail(w, CodeInvalidRequest, "action=push and table_name are required")
		return
	}
	var ops []struct {
		Cmd    string         `json:"cmd"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal([]byte(form.Get("items")), &ops); err != nil {
		writeFail(w, CodeInvalidItems, "invalid items: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.apps[app]
	if !ok {
		writeFail(w, CodeAppNotExist, "app not exist: "+app)
		return
	}
	for _, op := range ops {
		id := docID(op.Fields)
		switch op.Cmd {
		case "ADD":
			docs[id] = op.Fields
		case "UPDATE":
			cur := docs[id]
			if cur == nil {
				cur = make(map[string]any)
			}
			for k, v := range op.Fields {
				cur[k] = v
			}
			docs[id] = cur
		case "DELETE":
			delete(docs, id)
		}
	}
	writeOK(w, nil, nil)
}

func docID(fields map[string]any) string {
	switch v := fields["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func sortedIDs(docs map[string]map[string]any) []string {
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var requestSeq struct {
	sync.Mutex
	n int
}

func nextRequestID() string {
	requestSeq.Lock()
	defer requestSeq.Unlock()
	requestSeq.n++
	return "fake-" + strconv.Itoa(requestSeq.n)
}

func writeOK(w http.ResponseWriter, result any, extra map[string]any) {
	body := map[string]any{"status": "OK", "request_id": nextRequestID(), "errors": []any{}}
	if result != nil {
		body["result"] = result
	}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeFail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "FAIL",
		"request_id": nextRequestID(),
		"errors":     []map[string]any{{"code": code, "message": message}},
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"RequestId": nextRequestID(), "Code": code, "Message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
