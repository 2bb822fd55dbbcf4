package parser

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// errNoSheets 工作簿里没有任何工作表
var errNoSheets = errors.New("el libro no contiene hojas")

// ReadSheet 读取工作簿的第一个工作表，单元格一律按原始文本返回
// 支持 .xlsx 与旧版 .xls，其余扩展名直接拒绝
func ReadSheet(content []byte, filename string) (*RawSheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(content, filename)
	case ".xls":
		return readXLS(content, filename)
	default:
		return nil, &UnsupportedFileTypeError{Filename: filename}
	}
}

func readXLSX(content []byte, filename string) (*RawSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, &MalformedWorkbookError{Filename: filename, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MalformedWorkbookError{Filename: filename, Err: errNoSheets}
	}
	// RawCellValue 保留单元格原始存储值，长编码的科学计数法原样带出
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &MalformedWorkbookError{Filename: filename, Err: err}
	}
	return &RawSheet{Rows: rows}, nil
}

func readXLS(content []byte, filename string) (*RawSheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		// 旧版西语系统导出的文件常见 windows-1252 编码
		wb, err = xls.OpenReader(bytes.NewReader(content), "windows-1252")
		if err != nil {
			return nil, &MalformedWorkbookError{Filename: filename, Err: err}
		}
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &MalformedWorkbookError{Filename: filename, Err: errNoSheets}
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, []string{})
			continue
		}
		cols := make([]string, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cols[j] = row.Col(j)
		}
		rows = append(rows, cols)
	}
	return &RawSheet{Rows: rows}, nil
}
