package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/storage"
	"go.uber.org/zap"
)

// InvoiceService 发票服务
type InvoiceService struct {
	repos     *repository.Repositories
	suppliers *SupplierService
	blobs     storage.BlobStore
	logger    *zap.Logger
	now       func() time.Time
}

func NewInvoiceService(repos *repository.Repositories, suppliers *SupplierService, blobs storage.BlobStore, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{repos: repos, suppliers: suppliers, blobs: blobs, logger: logger, now: time.Now}
}

// ComposeInvoiceRequest 发票录入请求, 金额为原始文本
type ComposeInvoiceRequest struct {
	SupplierName    string
	InvoiceNumber   string
	InvoiceType     string
	Category        string
	InvoiceDate     string
	AmountBeforeTax string
	TaxAmount       string
	// TotalAmount is only read when neither AmountBeforeTax nor TaxAmount is
	// given; it then becomes the pre-tax amount with zero tax.
	TotalAmount     string
	Notes           string
	PurchaseOrderID string
}

// Attachment 上传附件
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// invoiceDraft 校验后的发票字段
type invoiceDraft struct {
	supplierName    string
	invoiceNumber   string
	invoiceDate     entity.Date
	amountBeforeTax entity.Money
	taxAmount       entity.Money
	total           entity.Money
}

// validateInvoice parses and checks the request without touching the store.
func validateInvoice(req *ComposeInvoiceRequest) (*invoiceDraft, error) {
	name, err := validateSupplierName(req.SupplierName)
	if err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return nil, newValidationError("invoice_number", "invoice number is required")
	}
	if strings.TrimSpace(req.InvoiceDate) == "" {
		return nil, newValidationError("invoice_date", "invoice date is required")
	}
	date, err := entity.ParseDate(req.InvoiceDate)
	if err != nil {
		return nil, newValidationError("invoice_date", "%v", err)
	}

	pre, tax := strings.TrimSpace(req.AmountBeforeTax), strings.TrimSpace(req.TaxAmount)
	if pre == "" && tax == "" && strings.TrimSpace(req.TotalAmount) != "" {
		pre = req.TotalAmount
	}
	if pre == "" {
		return nil, newValidationError("amount_before_tax", "amount before tax is required")
	}
	amountBeforeTax, err := entity.ParseNonNegativeMoney(pre)
	if err != nil {
		return nil, newValidationError("amount_before_tax", "%v", err)
	}
	taxAmount := entity.ZeroMoney()
	if tax != "" {
		if taxAmount, err = entity.ParseNonNegativeMoney(tax); err != nil {
			return nil, newValidationError("tax_amount", "%v", err)
		}
	}

	total := amountBeforeTax.Add(taxAmount)
	if !total.InRange() {
		return nil, newValidationError("total_amount", "total exceeds %d integer digits", entity.MaxIntegerDigits)
	}

	return &invoiceDraft{
		supplierName:    name,
		invoiceNumber:   number,
		invoiceDate:     date,
		amountBeforeTax: amountBeforeTax,
		taxAmount:       taxAmount,
		total:           total,
	}, nil
}

// Compose validates the request, stores the attachment, resolves the supplier
// and inserts the invoice. The attachment is written before the row; if the
// transaction fails afterwards the blob is removed again.
func (s *InvoiceService) Compose(ctx context.Context, req *ComposeInvoiceRequest, att *Attachment) (*entity.Invoice, error) {
	draft, err := validateInvoice(req)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		ID:              entity.NewID(),
		InvoiceNumber:   draft.invoiceNumber,
		InvoiceType:     strings.TrimSpace(req.InvoiceType),
		Category:        strings.TrimSpace(req.Category),
		InvoiceDate:     draft.invoiceDate,
		AmountBeforeTax: draft.amountBeforeTax,
		TaxAmount:       draft.taxAmount,
		TotalAmount:     draft.total,
		Notes:           strings.TrimSpace(req.Notes),
	}

	var key string
	if att != nil && att.Reader != nil {
		if s.blobs == nil {
			return nil, fmt.Errorf("%w: no blob store configured", ErrStorage)
		}
		key = storage.InvoiceKey(invoice.ID, att.FileName, s.now())
		if err := s.blobs.Put(ctx, key, att.Reader, att.Size, att.ContentType); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		name := storage.SanitizeFilename(att.FileName)
		invoice.AttachmentPath = &key
		if name != "" {
			invoice.AttachmentName = &name
		}
	}

	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		supplier, err := s.suppliers.ResolveOrCreate(ctx, tx, draft.supplierName)
		if err != nil {
			return err
		}
		invoice.SupplierID = supplier.ID
		invoice.Supplier = supplier

		if poID := strings.TrimSpace(req.PurchaseOrderID); poID != "" {
			po, err := tx.PurchaseOrder.FindByID(ctx, poID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%w: purchase order %s", repository.ErrReferential, poID)
				}
				return err
			}
			if po.SupplierID != supplier.ID {
				return newValidationError("purchase_order_id", "purchase order belongs to another supplier")
			}
			invoice.PurchaseOrderID = &po.ID
		}

		return tx.Invoice.Create(ctx, invoice)
	})
	if err != nil {
		removeBlob(ctx, s.blobs, s.logger, key)
		return nil, err
	}

	s.logger.Info("invoice composed",
		zap.String("invoice_id", invoice.ID),
		zap.String("supplier_id", invoice.SupplierID),
		zap.String("total_amount", invoice.TotalAmount.String()),
		zap.Bool("attachment", key != ""),
	)
	return invoice, nil
}

// Get 获取发票
func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	return s.repos.Invoice.FindByID(ctx, id)
}

// Delete removes the invoice row and then its attachment.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	invoice, err := s.repos.Invoice.Delete(ctx, id)
	if err != nil {
		return err
	}
	if invoice.HasAttachment() {
		removeBlob(ctx, s.blobs, s.logger, *invoice.AttachmentPath)
	}
	s.logger.Info("invoice deleted", zap.String("invoice_id", id))
	return nil
}

// OpenAttachment returns a reader for the invoice attachment. The caller closes it.
func (s *InvoiceService) OpenAttachment(ctx context.Context, id string) (io.ReadCloser, *entity.Invoice, error) {
	invoice, err := s.repos.Invoice.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !invoice.HasAttachment() {
		return nil, nil, fmt.Errorf("%w: invoice has no attachment", repository.ErrNotFound)
	}
	if s.blobs == nil {
		return nil, nil, fmt.Errorf("%w: no blob store configured", ErrStorage)
	}
	rc, err := s.blobs.Get(ctx, *invoice.AttachmentPath)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", repository.ErrNotFound, err)
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return rc, invoice, nil
}
