package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func teapot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		allowed        []string
		method         string
		origin         string
		preflight      bool
		expectedStatus int
		expectedOrigin string
		expectExpose   bool
	}{
		{
			name:           "preflight allowed",
			allowed:        []string{"http://localhost:5173"},
			method:         http.MethodOptions,
			origin:         "http://localhost:5173",
			preflight:      true,
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "http://localhost:5173",
		},
		{
			name:           "preflight forbidden",
			allowed:        []string{"http://localhost:5173"},
			method:         http.MethodOptions,
			origin:         "http://evil.local",
			preflight:      true,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "trailing slash in config",
			allowed:        []string{" http://localhost:5173/ "},
			method:         http.MethodGet,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusTeapot,
			expectedOrigin: "http://localhost:5173",
			expectExpose:   true,
		},
		{
			name:           "wildcard",
			allowed:        []string{"*"},
			method:         http.MethodPut,
			origin:         "http://anywhere.local",
			expectedStatus: http.StatusTeapot,
			expectedOrigin: "*",
			expectExpose:   true,
		},
		{
			name:           "unknown origin passes without headers",
			allowed:        []string{"http://localhost:5173"},
			method:         http.MethodGet,
			origin:         "http://evil.local",
			expectedStatus: http.StatusTeapot,
		},
		{
			name:           "same origin request",
			allowed:        nil,
			method:         http.MethodGet,
			expectedStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, "/applications", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed)(teapot()).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.expectedOrigin {
				t.Fatalf("expected allow origin %q, got %q", tt.expectedOrigin, got)
			}
			if got := rec.Header().Get("Access-Control-Expose-Headers") != ""; got != tt.expectExpose {
				t.Fatalf("expected expose headers=%v, got %v", tt.expectExpose, got)
			}
		})
	}
}
