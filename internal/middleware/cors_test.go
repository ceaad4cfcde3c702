package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsThrough(allow []string, method, origin string) *httptest.ResponseRecorder {
	h := CORS(allow)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	tests := map[string]struct {
		allow      []string
		origin     string
		wantOrigin string
	}{
		"listed origin reflected": {
			allow:      []string{"http://localhost:3000"},
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
		},
		"unlisted origin gets no headers": {
			allow:  []string{"http://localhost:3000"},
			origin: "http://evil.example",
		},
		"wildcard reflects any origin": {
			allow:      []string{"*"},
			origin:     "http://anywhere.example",
			wantOrigin: "http://anywhere.example",
		},
		"no origin header": {
			allow: []string{"*"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := corsThrough(tt.allow, http.MethodGet, tt.origin)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := corsThrough([]string{"http://localhost:3000"}, http.MethodOptions, "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Empty(t, rec.Body.String(), "preflight does not reach the handler")
}
