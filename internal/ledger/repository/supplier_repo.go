package repository

import (
	"context"
	"strings"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SupplierRepository 供应商仓库
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// FindAll 查询全部供应商, 按名称排序
func (r *SupplierRepository) FindAll(ctx context.Context) ([]entity.Supplier, error) {
	items := []entity.Supplier{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, Classify(err)
}

// FindByID 根据ID查找供应商
func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		return nil, Classify(err)
	}
	return &supplier, nil
}

// FindByName 按名称精确查找(区分大小写)
func (r *SupplierRepository) FindByName(ctx context.Context, name string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&supplier).Error
	if err != nil {
		return nil, Classify(err)
	}
	return &supplier, nil
}

// Create 创建供应商
func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = entity.NewID()
	}
	return Classify(r.db.WithContext(ctx).Create(supplier).Error)
}

// Rename 修改供应商名称
func (r *SupplierRepository) Rename(ctx context.Context, id, name string) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Supplier{}).
		Where("id = ?", id).
		Update("name", name).Error
	return Classify(err)
}

// DeleteCascade removes the supplier together with its invoices, payments and
// purchase orders in one transaction. It returns the attachment keys of the
// removed invoices so the caller can clean up the blob store.
func (r *SupplierRepository) DeleteCascade(ctx context.Context, id string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Invoice{}).
			Where("supplier_id = ? AND attachment_path IS NOT NULL", id).
			Pluck("attachment_path", &keys).Error; err != nil {
			return err
		}
		if err := tx.Where("supplier_id = ?", id).Delete(&entity.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supplier_id = ?", id).Delete(&entity.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supplier_id = ?", id).Delete(&entity.PurchaseOrder{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entity.Supplier{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, Classify(err)
	}
	return keys, nil
}

// SearchByPrefix 名称前缀搜索(不区分大小写)
func (r *SupplierRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]entity.SupplierRef, error) {
	items := make([]entity.SupplierRef, 0, limit)
	err := r.db.WithContext(ctx).
		Model(&entity.Supplier{}).
		Select("id", "name").
		Where("LOWER(name) LIKE LOWER(?)", likeEscaper.Replace(prefix)+"%").
		Order("name ASC").
		Limit(limit).
		Scan(&items).Error
	return items, Classify(err)
}

// Count 供应商数量
func (r *SupplierRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Supplier{}).Count(&total).Error
	return total, Classify(err)
}
