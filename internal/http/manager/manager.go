// Package manager implements the per-resource request managers. A Manager is
// a lookup table from HTTP method to handler; methods without an entry are
// rejected fail-closed with 405. Every response uses the uniform envelope
// {status:"ok",data} or {status:"error",error:{code,message}}.
package manager

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/mkadlec/product-audit-api/internal/apierr"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope is the uniform response body.
type Envelope struct {
	Status string        `json:"status"`
	Data   any           `json:"data,omitempty"`
	Error  *apierr.Error `json:"error,omitempty"`
}

type handlerFunc func(r *http.Request) (any, *apierr.Error)

// Manager dispatches a request to the handler registered for its method.
type Manager struct {
	handlers map[string]handlerFunc
	allowed  []string
}

// New builds a Manager from a method table. HEAD and OPTIONS get default
// handlers unless the table overrides them.
func New(handlers map[string]handlerFunc) *Manager {
	m := &Manager{handlers: handlers}

	if _, ok := handlers[http.MethodHead]; !ok {
		handlers[http.MethodHead] = func(*http.Request) (any, *apierr.Error) {
			return nil, nil
		}
	}
	if _, ok := handlers[http.MethodOptions]; !ok {
		handlers[http.MethodOptions] = func(*http.Request) (any, *apierr.Error) {
			return map[string]string{"message": "Allowed methods: " + strings.Join(m.allowed, ", ")}, nil
		}
	}

	for method := range handlers {
		m.allowed = append(m.allowed, method)
	}
	sort.Strings(m.allowed)
	return m
}

// AllowedMethods returns the methods this resource accepts.
func (m *Manager) AllowedMethods() []string {
	return m.allowed
}

func (m *Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := m.handlers[r.Method]
	if !ok {
		writeError(w, apierr.MethodNotAllowed(r.Method))
		return
	}

	data, apiErr := h(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Status: StatusOK, Data: data})
}

func writeError(w http.ResponseWriter, apiErr *apierr.Error) {
	writeJSON(w, apiErr.Code, Envelope{Status: StatusError, Error: apiErr})
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	out, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

// readJSON decodes the request body into a generic map. An empty body and
// malformed JSON are both client errors.
func readJSON(r *http.Request) (map[string]any, *apierr.Error) {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, apierr.BadRequest("Invalid JSON body: %v", err)
	}
	if len(data) == 0 {
		return nil, apierr.BadRequest("Empty input data")
	}
	return data, nil
}

// idParam extracts the required 'id' query parameter.
func idParam(r *http.Request) (int, *apierr.Error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, apierr.BadRequest("Required parameter 'id' is missing")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.BadRequest("Parameter 'id' must be an integer")
	}
	return id, nil
}

// queryInt reads an optional integer query parameter with a default.
func queryInt(r *http.Request, key string, def int) (int, *apierr.Error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.BadRequest("Parameter '%s' must be an integer", key)
	}
	return v, nil
}
