package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// previewColumnLimit 预览响应最多展示的列数
const previewColumnLimit = 15

// PreviewDetected 识别出的三类列名，未识别的为 null
type PreviewDetected struct {
	Codigo   *string `json:"codigo"`
	Producto *string `json:"producto"`
	Cantidad *string `json:"cantidad"`
}

// PreviewResponse 单文件预览响应
type PreviewResponse struct {
	Filename string          `json:"filename"`
	Rows     int             `json:"rows"`    // 表头之后的数据行数
	Columns  []string        `json:"columns"` // 识别出的列名
	Detected PreviewDetected `json:"detected"`
	Valid    bool            `json:"valid"` // 编码列与数量列齐备才能参与对账
}

// Preview 分析单个文件的列结构，供上传界面即时反馈
// POST /api/preview
func (h *Handler) Preview(c *gin.Context) {
	content, filename, err := h.readUpload(c, "file", "Archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sheet, assign, err := h.comparator.AnalyzeFile(content, filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Error al analizar archivo: %v", err)})
		return
	}

	rows := len(sheet.Rows) - assign.DataStart()
	if rows < 0 {
		rows = 0
	}
	columns := assign.Columns
	if len(columns) > previewColumnLimit {
		columns = columns[:previewColumnLimit]
	}

	var detected PreviewDetected
	if assign.CodeIndex >= 0 {
		detected.Codigo = &assign.Columns[assign.CodeIndex]
	}
	if assign.ProductIndex >= 0 {
		detected.Producto = &assign.Columns[assign.ProductIndex]
	}
	if assign.QuantityIndex >= 0 {
		detected.Cantidad = &assign.Columns[assign.QuantityIndex]
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Filename: filename,
		Rows:     rows,
		Columns:  columns,
		Detected: detected,
		Valid:    assign.CodeIndex >= 0 && assign.QuantityIndex >= 0,
	})
}
