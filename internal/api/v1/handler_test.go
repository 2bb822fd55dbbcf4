package v1_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	v1 "github.com/vicenzoscavino1999/comparador-excel/internal/api/v1"
	"github.com/vicenzoscavino1999/comparador-excel/internal/auth"
	"github.com/vicenzoscavino1999/comparador-excel/internal/store"
)

// newTestServer 组装带临时库、认证与全部路由的测试服务
func newTestServer(t *testing.T, maxUploadMB int) (*gin.Engine, *store.Store, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "comparador.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	manager := auth.NewManager("clave-de-prueba", 24, st)
	handler := v1.NewHandler(st, manager, maxUploadMB)

	r := gin.New()
	r.GET("/health", handler.Health)
	handler.RegisterRoutes(r.Group("/api"))
	return r, st, manager
}

// newUserToken 注册用户并签发令牌
func newUserToken(t *testing.T, m *auth.Manager, username string, isAdmin bool) string {
	t.Helper()

	if _, err := m.RegisterUser(username, username+"@example.com", "secreto123", isAdmin); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	token, err := m.CreateToken(username, isAdmin)
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}
	return token
}

// workbookBytes 在内存里构造一个单页工作簿
func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

type uploadFile struct {
	field    string
	filename string
	content  []byte
}

// multipartRequest 组装 multipart 上传请求
func multipartRequest(t *testing.T, target, token string, files []uploadFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("write part failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// jsonRequest 组装 JSON 请求
func jsonRequest(t *testing.T, method, target, token string, payload interface{}) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// errorMessage 取出错误响应里的提示文案
func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}
