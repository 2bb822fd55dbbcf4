package v1

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vicenzoscavino1999/comparador-excel/internal/auth"
	"github.com/vicenzoscavino1999/comparador-excel/internal/comparison"
	"github.com/vicenzoscavino1999/comparador-excel/internal/parser"
	"github.com/vicenzoscavino1999/comparador-excel/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store       *store.Store
	auth        *auth.Manager
	comparator  *comparison.Comparator
	maxUploadMB int // 单个上传文件的大小上限
}

// NewHandler 创建 V1 API 处理器
func NewHandler(st *store.Store, am *auth.Manager, maxUploadMB int) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = 100
	}
	return &Handler{
		store:       st,
		auth:        am,
		comparator:  comparison.New(),
		maxUploadMB: maxUploadMB,
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 公开接口
	router.GET("/version", h.GetVersion)
	router.POST("/login", h.Login)

	// 登录后可用
	authed := router.Group("", h.auth.RequireAuth())
	authed.POST("/preview", h.Preview)
	authed.POST("/compare", h.Compare)

	// 管理员专用
	admin := authed.Group("", h.auth.RequireAdmin())
	admin.POST("/register", h.Register)
	admin.GET("/users", h.ListUsers)
}

// readUpload 取出一个上传文件，校验扩展名与大小后整块读入
func (h *Handler) readUpload(c *gin.Context, field, label string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("Falta el archivo '%s' en la solicitud", field)
	}

	name := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".xls" && ext != ".xlsx" {
		return nil, "", &parser.UnsupportedFileTypeError{Filename: name}
	}
	if header.Size > int64(h.maxUploadMB)*1024*1024 {
		return nil, "", &parser.FileTooLargeError{Label: label, LimitMB: h.maxUploadMB}
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("no se pudo leer el archivo %s: %v", name, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("no se pudo leer el archivo %s: %v", name, err)
	}
	return content, name, nil
}
