package parser

import (
	"fmt"
	"strings"

	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// roleDisplayName 错误信息中各角色的西语列名
var roleDisplayName = map[model.ColumnRole]string{
	model.RoleCode:     "Código",
	model.RoleProduct:  "Producto",
	model.RoleQuantity: "Cantidad",
}

// ColumnNotFoundError 未能检测到必需列（编码或数量）
type ColumnNotFoundError struct {
	Role             model.ColumnRole
	AvailableColumns []string
}

// Error 返回给用户的提示，最多列出前 10 个可用列名
func (e *ColumnNotFoundError) Error() string {
	cols := make([]string, 0, len(e.AvailableColumns))
	for _, c := range e.AvailableColumns {
		cols = append(cols, strings.TrimSpace(c))
	}
	shown := cols
	if len(shown) > 10 {
		shown = shown[:10]
	}
	available := strings.Join(shown, ", ")
	if len(cols) > 10 {
		available += fmt.Sprintf("... (+%d más)", len(cols)-10)
	}
	return fmt.Sprintf("No se encontró la columna de %s. Columnas disponibles: %s", roleDisplayName[e.Role], available)
}

// UnsupportedFileTypeError 扩展名不是 .xls / .xlsx
type UnsupportedFileTypeError struct {
	Filename string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("Archivo inválido: %s. Solo se permiten archivos .xls y .xlsx", e.Filename)
}

// FileTooLargeError 上传内容超出大小限制
type FileTooLargeError struct {
	Label   string // "Archivo"、"Archivo 1"、"Archivo 2"
	LimitMB int
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s excede el límite de %dMB", e.Label, e.LimitMB)
}

// MalformedWorkbookError 文件内容无法按工作簿解析
type MalformedWorkbookError struct {
	Filename string
	Err      error
}

func (e *MalformedWorkbookError) Error() string {
	return fmt.Sprintf("no se pudo leer el archivo %s: %v", e.Filename, e.Err)
}

func (e *MalformedWorkbookError) Unwrap() error {
	return e.Err
}
