package repository

import (
	"context"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"gorm.io/gorm"
)

// PaymentRepository 付款仓库
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create 创建付款
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = entity.NewID()
	}
	return Classify(r.db.WithContext(ctx).Omit("Supplier").Create(payment).Error)
}

// FindByID 根据ID查找付款
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	var payment entity.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, Classify(err)
	}
	return &payment, nil
}

// FindBySupplier 供应商付款, 按付款日期倒序
func (r *PaymentRepository) FindBySupplier(ctx context.Context, supplierID string) ([]entity.Payment, error) {
	items := []entity.Payment{}
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("payment_date DESC").
		Order("created_at DESC").
		Find(&items).Error
	return items, Classify(err)
}

// FindAll 全部付款
func (r *PaymentRepository) FindAll(ctx context.Context) ([]entity.Payment, error) {
	items := []entity.Payment{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, Classify(err)
}

// Delete 删除付款
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Payment{})
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
