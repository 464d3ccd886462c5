package repository

import (
	"context"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"gorm.io/gorm"
)

// PORepository 采购订单仓库
type PORepository struct {
	db *gorm.DB
}

func NewPORepository(db *gorm.DB) *PORepository {
	return &PORepository{db: db}
}

// FindAll 查询采购订单列表, 支持 supplier_id / status 过滤
func (r *PORepository) FindAll(ctx context.Context, filters map[string]string) ([]entity.PurchaseOrder, error) {
	items := []entity.PurchaseOrder{}
	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})

	if supplierID := filters["supplier_id"]; supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.
		Preload("Supplier").
		Order("created_date DESC").
		Order("created_at DESC").
		Find(&items).Error
	return items, Classify(err)
}

// FindByID 根据ID查找采购订单
func (r *PORepository) FindByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		return nil, Classify(err)
	}
	return &po, nil
}

// Create 创建采购订单
func (r *PORepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	if po.ID == "" {
		po.ID = entity.NewID()
	}
	return Classify(r.db.WithContext(ctx).Omit("Supplier").Create(po).Error)
}

// UpdateStatus 更新状态
func (r *PORepository) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
	return Classify(err)
}

// Delete unlinks invoices from the purchase order and removes it.
func (r *PORepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Invoice{}).
			Where("purchase_order_id = ?", id).
			Update("purchase_order_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entity.PurchaseOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return Classify(err)
}
