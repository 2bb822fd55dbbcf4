package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 健康检查，由服务器挂在根路径而非 /api 前缀下
// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Comparador Excel funcionando",
		"version": "2.0.0",
	})
}

// VersionResponse 功能版本响应，前端据此决定是否展示管理面板
type VersionResponse struct {
	Version string `json:"version"`
	Feature string `json:"feature"`
}

// GetVersion 获取接口功能版本
// GET /api/version
func (h *Handler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{Version: "2.1", Feature: "admin_panel"})
}
