package comparison

import (
	"fmt"
	"log"
	"sync"

	"github.com/vicenzoscavino1999/comparador-excel/internal/exporter"
	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
	"github.com/vicenzoscavino1999/comparador-excel/internal/parser"
	"github.com/vicenzoscavino1999/comparador-excel/internal/reconciler"
)

// Comparator 对账流程编排：解析两份盘点文件、对账并渲染结果工作簿
type Comparator struct {
	classifier *parser.ColumnClassifier
	builder    *parser.TableBuilder
	reconciler *reconciler.Reconciler
	exporter   *exporter.Exporter
}

// New 创建对账编排器
func New() *Comparator {
	return &Comparator{
		classifier: parser.NewColumnClassifier(),
		builder:    parser.NewTableBuilder(),
		reconciler: reconciler.New(),
		exporter:   exporter.NewExporter(),
	}
}

// ProcessFile 单文件管线：读工作簿、判定角色列、构建规范表
func (c *Comparator) ProcessFile(content []byte, filename string) (*model.CanonicalTable, *parser.ColumnAssignment, error) {
	sheet, err := parser.ReadSheet(content, filename)
	if err != nil {
		return nil, nil, err
	}
	assign, err := c.classifier.Classify(sheet)
	if err != nil {
		return nil, nil, err
	}
	detected := assign.Detected()
	log.Printf("列识别完成 %s: Código=%s, Producto=%s, Cantidad=%s",
		filename, detected.Code, detected.Product, detected.Quantity)

	return c.builder.BuildTable(sheet, assign), assign, nil
}

// AnalyzeFile 预览用：读工作簿并判定角色列，缺列不算错误
func (c *Comparator) AnalyzeFile(content []byte, filename string) (*parser.RawSheet, *parser.ColumnAssignment, error) {
	sheet, err := parser.ReadSheet(content, filename)
	if err != nil {
		return nil, nil, err
	}
	return sheet, c.classifier.DetectColumns(sheet), nil
}

// CompareFiles 并行解析两份文件，对账后渲染结果工作簿字节
func (c *Comparator) CompareFiles(content1 []byte, name1 string, content2 []byte, name2 string) ([]byte, *model.Summary, error) {
	var (
		wg               sync.WaitGroup
		table1, table2   *model.CanonicalTable
		assign1, assign2 *parser.ColumnAssignment
		err1, err2       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		table1, assign1, err1 = c.ProcessFile(content1, name1)
	}()
	go func() {
		defer wg.Done()
		table2, assign2, err2 = c.ProcessFile(content2, name2)
	}()
	wg.Wait()

	if err1 != nil {
		return nil, nil, err1
	}
	if err2 != nil {
		return nil, nil, err2
	}

	result := c.reconciler.Reconcile(table1, table2)
	summary := reconciler.BuildSummary(
		model.FileSummary{
			Filename:    name1,
			RecordCount: len(table1.Records),
			QuantitySum: table1.TotalQuantity(),
			Detected:    assign1.Detected(),
		},
		model.FileSummary{
			Filename:    name2,
			RecordCount: len(table2.Records),
			QuantitySum: table2.TotalQuantity(),
			Detected:    assign2.Detected(),
		},
		result,
	)

	f, err := c.exporter.Export(result, summary)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render result workbook: %w", err)
	}
	return buf.Bytes(), summary, nil
}
