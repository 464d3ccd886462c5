package repository

import (
	"context"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"gorm.io/gorm"
)

// InvoiceRepository 发票仓库
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create 创建发票
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = entity.NewID()
	}
	return Classify(r.db.WithContext(ctx).Omit("Supplier", "PurchaseOrder").Create(invoice).Error)
}

// FindByID 根据ID查找发票
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, Classify(err)
	}
	return &invoice, nil
}

// FindBySupplier 供应商发票, 按发票日期倒序
func (r *InvoiceRepository) FindBySupplier(ctx context.Context, supplierID string) ([]entity.Invoice, error) {
	items := []entity.Invoice{}
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("invoice_date DESC").
		Order("created_at DESC").
		Find(&items).Error
	return items, Classify(err)
}

// FindLatest 最近创建的发票
func (r *InvoiceRepository) FindLatest(ctx context.Context, limit int) ([]entity.Invoice, error) {
	items := []entity.Invoice{}
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	return items, Classify(err)
}

// FindAll 全部发票
func (r *InvoiceRepository) FindAll(ctx context.Context) ([]entity.Invoice, error) {
	items := []entity.Invoice{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, Classify(err)
}

// Delete removes the invoice and returns the deleted row.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&invoice).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Invoice{}).Error
	})
	if err != nil {
		return nil, Classify(err)
	}
	return &invoice, nil
}
