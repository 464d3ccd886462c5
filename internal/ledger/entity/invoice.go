package entity

import "time"

// Invoice 供应商发票
type Invoice struct {
	ID              string  `json:"id" gorm:"primaryKey;size:32"`
	SupplierID      string  `json:"supplier_id" gorm:"size:32;not null;index"`
	InvoiceNumber   string  `json:"invoice_number" gorm:"size:100;not null;index"`
	InvoiceType     string  `json:"invoice_type" gorm:"size:50"`
	Category        string  `json:"category" gorm:"size:100"`
	InvoiceDate     Date    `json:"invoice_date" gorm:"not null;index"`
	AmountBeforeTax Money   `json:"amount_before_tax" gorm:"type:decimal(15,2);not null;check:chk_invoices_amount_before_tax,amount_before_tax >= 0"`
	TaxAmount       Money   `json:"tax_amount" gorm:"type:decimal(15,2);not null;check:chk_invoices_tax_amount,tax_amount >= 0"`
	TotalAmount     Money   `json:"total_amount" gorm:"type:decimal(15,2);not null;check:chk_invoices_total_amount,total_amount = amount_before_tax + tax_amount"`
	Notes           string  `json:"notes" gorm:"type:text"`
	AttachmentPath  *string `json:"attachment_path" gorm:"size:500"`
	AttachmentName  *string `json:"attachment_name" gorm:"size:255"`
	PurchaseOrderID *string `json:"purchase_order_id" gorm:"size:32;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`

	// 关联
	Supplier      *Supplier      `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	PurchaseOrder *PurchaseOrder `json:"-" gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:SET NULL"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// HasAttachment 是否有附件
func (i *Invoice) HasAttachment() bool {
	return i.AttachmentPath != nil && *i.AttachmentPath != ""
}
