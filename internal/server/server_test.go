package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vicenzoscavino1999/comparador-excel/internal/config"
)

// newTestServer 用临时数据目录组装完整服务器
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	s := NewServer(cfg)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestServer_HealthAndStatic 健康检查、内嵌首页与 SPA fallback
func TestServer_HealthAndStatic(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: code want=200 got=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Comparador Excel funcionando") {
		t.Fatalf("unexpected health body: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("index: code want=200 got=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if !strings.Contains(w.Body.String(), "<title>Comparador Excel</title>") {
		t.Fatalf("embedded index not served")
	}

	// 未知路径回落到前端首页
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cualquier/ruta", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Fatalf("spa fallback: code=%d", w.Code)
	}

	if s.GetStore() == nil {
		t.Fatalf("store should be initialized")
	}
}

// TestServer_CORSPreflight OPTIONS 预检直接 204
func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/login", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: code want=204 got=%d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}

// TestServer_APIMounted /api 前缀下的公开接口可达
func TestServer_APIMounted(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("version: code want=200 got=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "admin_panel") {
		t.Fatalf("unexpected version body: %s", w.Body.String())
	}

	// 受保护接口未带令牌应拒绝
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/compare", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("compare sin token: code want=401 got=%d", w.Code)
	}
}
