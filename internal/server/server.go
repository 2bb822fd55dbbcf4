package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	v1 "github.com/vicenzoscavino1999/comparador-excel/internal/api/v1"
	"github.com/vicenzoscavino1999/comparador-excel/internal/auth"
	"github.com/vicenzoscavino1999/comparador-excel/internal/config"
	"github.com/vicenzoscavino1999/comparador-excel/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "comparador.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 认证管理器与默认管理员
	authManager := auth.NewManager(cfg.Auth.SecretKey, cfg.Auth.TokenHours, sqliteStore)
	if err := authManager.EnsureDefaultAdmin(cfg.Auth.AdminUser, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Printf("默认管理员检查失败: %v", err)
	}

	// 创建 V1 API 处理器
	v1Handler := v1.NewHandler(sqliteStore, authManager, cfg.Upload.MaxSizeMB)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		v1:     v1Handler,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 健康检查挂在根路径，不带 /api 前缀
	s.router.GET("/health", s.v1.Health)

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 生产模式：使用 embed 的静态资源
		sub, _ := fs.Sub(staticFiles, "dist")

		// 首页
		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA 路由 fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放底层存储
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
