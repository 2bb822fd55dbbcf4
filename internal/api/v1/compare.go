package v1

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vicenzoscavino1999/comparador-excel/internal/auth"
	"github.com/vicenzoscavino1999/comparador-excel/internal/exporter"
	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
	"github.com/vicenzoscavino1999/comparador-excel/internal/parser"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Compare 对比两份文件并以附件形式返回结果工作簿
// POST /api/compare
func (h *Handler) Compare(c *gin.Context) {
	content1, name1, err := h.readUpload(c, "file1", "Archivo 1")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content2, name2, err := h.readUpload(c, "file2", "Archivo 2")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	output, summary, err := h.comparator.CompareFiles(content1, name1, content2, name2)
	if err != nil {
		status, msg := compareErrorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	comparisonID := uuid.NewString()
	h.logComparison(c.GetString(auth.ContextUserKey), comparisonID,
		name1, int64(len(content1)), name2, int64(len(content2)), summary)

	c.Header("X-Comparison-Id", comparisonID)
	c.Header("Content-Disposition", "attachment; filename="+exporter.OutputFilename)
	c.Data(http.StatusOK, xlsxContentType, output)
}

// compareErrorResponse 把管线错误映射为状态码与提示文案
func compareErrorResponse(err error) (int, string) {
	var colErr *parser.ColumnNotFoundError
	if errors.As(err, &colErr) {
		return http.StatusBadRequest, colErr.Error()
	}
	var badFile *parser.MalformedWorkbookError
	if errors.As(err, &badFile) {
		return http.StatusBadRequest, fmt.Sprintf("Error al procesar archivos: %v", err)
	}
	return http.StatusInternalServerError, fmt.Sprintf("Error al procesar archivos: %v", err)
}

// logComparison 留痕一次对账，写库失败只记日志不影响响应
func (h *Handler) logComparison(username, comparisonID, name1 string, size1 int64, name2 string, size2 int64, summary *model.Summary) {
	_, err := h.store.CreateComparisonLog(&model.ComparisonLog{
		ComparisonID:     comparisonID,
		Username:         username,
		File1Name:        name1,
		File1Size:        size1,
		File2Name:        name2,
		File2Size:        size2,
		RecordsCompared:  summary.TotalCompared,
		DifferencesFound: summary.WithDifferences,
	})
	if err != nil {
		log.Printf("写入对账日志失败: %v", err)
	}
}
