package serverhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"pipe-stock/internal/config"
	"pipe-stock/internal/stock/catalog"
)

func newTestRouter() http.Handler {
	cfg := config.Config{AllowOrigins: []string{"*"}, MaxBodyMB: 1, RateLimitRPS: 100, RateLimitBurst: 100}
	store := catalog.NewStore(catalog.Loader{}, zerolog.Nop())
	return NewRouter(cfg, store, zerolog.Nop())
}

func TestRouter(t *testing.T) {
	r := newTestRouter()
	cases := []struct {
		method, target string
		code           int
		contains       string
	}{
		{http.MethodGet, "/health", http.StatusOK, `"data":false`},
		{http.MethodPost, "/resolve", http.StatusServiceUnavailable, "not loaded"},
		{http.MethodGet, "/stock", http.StatusServiceUnavailable, "not loaded"},
		{http.MethodGet, "/datasets", http.StatusOK, `"datasets": []`},
		{http.MethodOptions, "/resolve", http.StatusNoContent, ""},
		{http.MethodGet, "/nope", http.StatusNotFound, ""},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(c.method, c.target, nil))
		if rec.Code != c.code {
			t.Fatalf("%s %s: code=%d", c.method, c.target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), c.contains) {
			t.Fatalf("%s %s: body=%s", c.method, c.target, rec.Body.String())
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s %s: no request id", c.method, c.target)
		}
	}
}
