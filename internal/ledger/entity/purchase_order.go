package entity

import "time"

// PurchaseOrder 采购订单
type PurchaseOrder struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	SupplierID  string    `json:"supplier_id" gorm:"size:32;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	Price       Money     `json:"price" gorm:"type:decimal(15,2);not null;check:chk_purchase_orders_price,price >= 0"`
	Status      string    `json:"status" gorm:"size:20;not null;default:active"`
	CreatedDate Date      `json:"created_date" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`

	// 关联
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PO状态
const (
	POStatusActive    = "active"
	POStatusFulfilled = "fulfilled"
	POStatusCancelled = "cancelled"
)

// ValidPOStatuses 采购订单状态集合
var ValidPOStatuses = []string{POStatusActive, POStatusFulfilled, POStatusCancelled}

// IsValidPOStatus reports whether s belongs to the closed status set.
func IsValidPOStatus(s string) bool {
	for _, v := range ValidPOStatuses {
		if v == s {
			return true
		}
	}
	return false
}
