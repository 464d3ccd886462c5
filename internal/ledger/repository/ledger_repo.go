package repository

import (
	"context"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"gorm.io/gorm"
)

const globalStatsSQL = `
SELECT
	(SELECT COUNT(*) FROM suppliers) AS supplier_count,
	(SELECT COUNT(*) FROM invoices) AS invoice_count,
	(SELECT COALESCE(SUM(total_amount), 0) FROM invoices) AS total_invoiced,
	(SELECT COUNT(*) FROM purchase_orders) AS purchase_order_count`

const supplierSummarySQL = `
SELECT
	s.id AS supplier_id,
	s.name AS supplier_name,
	COALESCE(i.invoice_count, 0) AS invoice_count,
	COALESCE(i.total_invoiced, 0) AS total_invoiced,
	COALESCE(p.total_paid, 0) AS total_paid
FROM suppliers s
LEFT JOIN (
	SELECT supplier_id, COUNT(*) AS invoice_count, SUM(total_amount) AS total_invoiced
	FROM invoices GROUP BY supplier_id
) i ON i.supplier_id = s.id
LEFT JOIN (
	SELECT supplier_id, SUM(amount) AS total_paid
	FROM payments GROUP BY supplier_id
) p ON p.supplier_id = s.id
ORDER BY s.name ASC, s.id ASC`

// LedgerRepository 账本聚合查询
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GlobalStats 全局统计, 单条SQL
func (r *LedgerRepository) GlobalStats(ctx context.Context) (*entity.GlobalStats, error) {
	stats := &entity.GlobalStats{}
	row := r.db.WithContext(ctx).Raw(globalStatsSQL).Row()
	if err := row.Scan(&stats.SupplierCount, &stats.InvoiceCount, &stats.TotalInvoiced, &stats.PurchaseOrderCount); err != nil {
		return nil, Classify(err)
	}
	return stats, nil
}

type supplierSummaryRow struct {
	SupplierID    string
	SupplierName  string
	InvoiceCount  int64
	TotalInvoiced entity.Money
	TotalPaid     entity.Money
}

// SupplierSummaries 供应商汇总, 无发票的供应商计为 0
func (r *LedgerRepository) SupplierSummaries(ctx context.Context) ([]entity.SupplierSummary, error) {
	var rows []supplierSummaryRow
	if err := r.db.WithContext(ctx).Raw(supplierSummarySQL).Scan(&rows).Error; err != nil {
		return nil, Classify(err)
	}

	items := make([]entity.SupplierSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, entity.SupplierSummary{
			Supplier:      entity.SupplierRef{ID: row.SupplierID, Name: row.SupplierName},
			InvoiceCount:  row.InvoiceCount,
			TotalInvoiced: row.TotalInvoiced,
			TotalPaid:     row.TotalPaid,
			Outstanding:   row.TotalInvoiced.Sub(row.TotalPaid),
		})
	}
	return items, nil
}
