package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

var summaryExportHeaders = []string{"供应商", "发票数", "发票总额", "已付款", "未付余额"}

// ReportService 报表导出
type ReportService struct {
	ledger *LedgerService
	now    func() time.Time
}

func NewReportService(ledger *LedgerService) *ReportService {
	return &ReportService{ledger: ledger, now: time.Now}
}

// ExportSupplierSummaries 导出供应商汇总Excel
func (s *ReportService) ExportSupplierSummaries(ctx context.Context) (*excelize.File, string, error) {
	summaries, err := s.ledger.SupplierSummaries(ctx)
	if err != nil {
		return nil, "", err
	}
	f, err := BuildSummaryWorkbook(summaries)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("suppliers_%s.xlsx", s.now().Format("20060102"))
	return f, filename, nil
}

// BuildSummaryWorkbook writes one row per supplier plus a totals row. Amounts
// are written as fixed two-digit text so no float conversion takes place.
func BuildSummaryWorkbook(summaries []entity.SupplierSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Suppliers"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	amountStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})

	for i, h := range summaryExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var invoiceCount int64
	invoiced := make([]entity.Money, 0, len(summaries))
	paid := make([]entity.Money, 0, len(summaries))
	for i, item := range summaries {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Supplier.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.InvoiceCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.TotalInvoiced.String())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.TotalPaid.String())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Outstanding.String())
		f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("E%d", row), amountStyle)

		invoiceCount += item.InvoiceCount
		invoiced = append(invoiced, item.TotalInvoiced)
		paid = append(paid, item.TotalPaid)
	}

	// 底部汇总行
	summaryRow := len(summaries) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	totalInvoiced, totalPaid := entity.SumMoney(invoiced...), entity.SumMoney(paid...)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "合计")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), invoiceCount)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), totalInvoiced.String())
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), totalPaid.String())
	f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), totalInvoiced.Sub(totalPaid).String())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), summaryStyle)

	colWidths := []float64{32, 10, 16, 16, 16}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	return f, nil
}

// SupplierStatement 生成供应商对账单PDF
func (s *ReportService) SupplierStatement(ctx context.Context, supplierID string) ([]byte, string, error) {
	ledger, err := s.ledger.SupplierLedger(ctx, supplierID)
	if err != nil {
		return nil, "", err
	}
	data, err := BuildStatementPDF(ledger, s.now())
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("statement_%s.pdf", ledger.Supplier.ID), nil
}

// BuildStatementPDF renders the ledger as an A4 statement. Core PDF fonts only
// cover Latin-1; other characters are replaced during translation.
func BuildStatementPDF(ledger *entity.SupplierLedger, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Supplier statement", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Supplier Statement", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Supplier: "+tr(ledger.Supplier.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Generated: "+generated.Format(entity.DateLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Invoices", "", 1, "L", false, 0, "")
	statementTable(pdf, []string{"Date", "Number", "Before tax", "Tax", "Total"}, []float64{30, 50, 35, 30, 35})
	pdf.SetFont("Arial", "", 10)
	for _, inv := range ledger.Invoices {
		pdf.CellFormat(30, 7, inv.InvoiceDate.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(inv.InvoiceNumber), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, inv.AmountBeforeTax.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, inv.TaxAmount.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, inv.TotalAmount.String(), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Payments", "", 1, "L", false, 0, "")
	statementTable(pdf, []string{"Date", "Amount", "Notes"}, []float64{30, 35, 115})
	pdf.SetFont("Arial", "", 10)
	for _, p := range ledger.Payments {
		pdf.CellFormat(30, 7, p.PaymentDate.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, p.Amount.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(115, 7, tr(p.Notes), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 7, "Total invoiced: "+ledger.TotalInvoiced.String(), "", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Total paid: "+ledger.TotalPaid.String(), "", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Outstanding: "+ledger.Outstanding.String(), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func statementTable(pdf *gofpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(217, 225, 242)
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, h, "1", ln, "C", true, 0, "")
	}
}
