package service

import (
	"context"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
)

// 列表数量范围
const (
	MinListLimit = 1
	MaxListLimit = 100
)

// LedgerService 账本汇总服务
type LedgerService struct {
	repos *repository.Repositories
}

func NewLedgerService(repos *repository.Repositories) *LedgerService {
	return &LedgerService{repos: repos}
}

// ClampLimit 限制 n 在 [1,100]
func ClampLimit(n int) int {
	if n < MinListLimit {
		return MinListLimit
	}
	if n > MaxListLimit {
		return MaxListLimit
	}
	return n
}

// GlobalStats 全局统计
func (s *LedgerService) GlobalStats(ctx context.Context) (*entity.GlobalStats, error) {
	return s.repos.Ledger.GlobalStats(ctx)
}

// LatestInvoices 最近创建的发票, 含供应商
func (s *LedgerService) LatestInvoices(ctx context.Context, n int) ([]entity.Invoice, error) {
	return s.repos.Invoice.FindLatest(ctx, ClampLimit(n))
}

// RecentSuppliers returns the distinct suppliers of the latest n invoices in
// order of first appearance.
func (s *LedgerService) RecentSuppliers(ctx context.Context, n int) ([]entity.SupplierRef, error) {
	invoices, err := s.LatestInvoices(ctx, n)
	if err != nil {
		return nil, err
	}
	return DistinctSuppliers(invoices), nil
}

// DistinctSuppliers keeps the first occurrence of each supplier.
func DistinctSuppliers(invoices []entity.Invoice) []entity.SupplierRef {
	seen := make(map[string]struct{}, len(invoices))
	refs := make([]entity.SupplierRef, 0, len(invoices))
	for _, inv := range invoices {
		if _, ok := seen[inv.SupplierID]; ok {
			continue
		}
		seen[inv.SupplierID] = struct{}{}
		ref := entity.SupplierRef{ID: inv.SupplierID}
		if inv.Supplier != nil {
			ref.Name = inv.Supplier.Name
		}
		refs = append(refs, ref)
	}
	return refs
}

// SupplierLedger reads the supplier, its invoices and payments in one read
// transaction and sums the totals from those rows.
func (s *LedgerService) SupplierLedger(ctx context.Context, supplierID string) (*entity.SupplierLedger, error) {
	var ledger *entity.SupplierLedger
	err := s.repos.ReadTransaction(ctx, func(tx *repository.Repositories) error {
		supplier, err := tx.Supplier.FindByID(ctx, supplierID)
		if err != nil {
			return err
		}
		invoices, err := tx.Invoice.FindBySupplier(ctx, supplierID)
		if err != nil {
			return err
		}
		payments, err := tx.Payment.FindBySupplier(ctx, supplierID)
		if err != nil {
			return err
		}
		ledger = BuildLedger(supplier, invoices, payments)
		return nil
	})
	return ledger, err
}

// BuildLedger 计算供应商账本合计
func BuildLedger(supplier *entity.Supplier, invoices []entity.Invoice, payments []entity.Payment) *entity.SupplierLedger {
	invoiced := make([]entity.Money, 0, len(invoices))
	for _, inv := range invoices {
		invoiced = append(invoiced, inv.TotalAmount)
	}
	paid := make([]entity.Money, 0, len(payments))
	for _, p := range payments {
		paid = append(paid, p.Amount)
	}
	totalInvoiced := entity.SumMoney(invoiced...)
	totalPaid := entity.SumMoney(paid...)

	return &entity.SupplierLedger{
		Supplier:      *supplier,
		Invoices:      invoices,
		Payments:      payments,
		TotalInvoiced: totalInvoiced,
		TotalPaid:     totalPaid,
		Outstanding:   totalInvoiced.Sub(totalPaid),
	}
}

// SupplierSummaries 供应商汇总
func (s *LedgerService) SupplierSummaries(ctx context.Context) ([]entity.SupplierSummary, error) {
	return s.repos.Ledger.SupplierSummaries(ctx)
}
