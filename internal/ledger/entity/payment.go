package entity

import "time"

// Payment 付款记录
type Payment struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	SupplierID  string    `json:"supplier_id" gorm:"size:32;not null;index"`
	Amount      Money     `json:"amount" gorm:"type:decimal(15,2);not null;check:chk_payments_amount,amount > 0"`
	PaymentDate Date      `json:"payment_date" gorm:"not null;index"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	// 关联
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
}

func (Payment) TableName() string {
	return "payments"
}
