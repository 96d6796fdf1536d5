package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var stockExportHeaders = []string{
	"SKU", "Name", "Category", "Inventory Stock (kg)", "Batch Stock (kg)",
	"Current Stock (kg)", "On Order (kg)", "Total Expected (kg)",
	"Avg Unit Cost", "Tier",
}

type ReportService struct {
	stockService *StockService
	minioClient  *minio.Client
	bucketName   string
	logger       *zap.Logger
}

func NewReportService(ss *StockService, minioClient *minio.Client, bucketName string, logger *zap.Logger) *ReportService {
	return &ReportService{
		stockService: ss,
		minioClient:  minioClient,
		bucketName:   bucketName,
		logger:       logger,
	}
}

// ExportStockSummary renders the stock summary as an xlsx workbook and
// returns the file name alongside it.
func (s *ReportService) ExportStockSummary(params StockSummaryParams) (*excelize.File, string, error) {
	stocks, err := s.stockService.Summary(params)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Stock Summary"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range stockExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, st := range stocks {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), st.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), st.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), st.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), st.InventoryStock)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), st.BatchStock)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), st.CurrentStock)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), st.OrderedQty)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), st.TotalExpected)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), st.AvgUnitCost)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), st.Tier)
	}

	fileName := fmt.Sprintf("stock-summary-%s.xlsx", time.Now().Format("20060102-150405"))
	return f, fileName, nil
}

// ArchiveStockSummary exports the summary and stores the workbook in object
// storage. Returns the stored object name.
func (s *ReportService) ArchiveStockSummary(ctx context.Context, params StockSummaryParams) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	f, fileName, err := s.ExportStockSummary(params)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	objectName := fmt.Sprintf("reports/%s", fileName)
	_, err = s.minioClient.PutObject(ctx, s.bucketName, objectName,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		})
	if err != nil {
		return "", fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info("stock report archived",
		zap.String("object", objectName), zap.Int("bytes", buf.Len()))
	return objectName, nil
}
