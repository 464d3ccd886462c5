package service

import (
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/storage"
	"go.uber.org/zap"
)

// Services 服务集合
type Services struct {
	Supplier      *SupplierService
	Invoice       *InvoiceService
	Payment       *PaymentService
	PurchaseOrder *POService
	Ledger        *LedgerService
	Query         *QueryService
	Report        *ReportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, blobs storage.BlobStore, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	supplierSvc := NewSupplierService(repos, blobs, logger)
	ledgerSvc := NewLedgerService(repos)

	return &Services{
		Supplier:      supplierSvc,
		Invoice:       NewInvoiceService(repos, supplierSvc, blobs, logger),
		Payment:       NewPaymentService(repos, logger),
		PurchaseOrder: NewPOService(repos, supplierSvc, logger),
		Ledger:        ledgerSvc,
		Query:         NewQueryService(repos),
		Report:        NewReportService(ledgerSvc),
	}
}
