package entity

// GlobalStats 全局统计
type GlobalStats struct {
	SupplierCount      int64 `json:"supplier_count"`
	InvoiceCount       int64 `json:"invoice_count"`
	TotalInvoiced      Money `json:"total_invoiced"`
	PurchaseOrderCount int64 `json:"purchase_order_count"`
}

// SupplierSummary 供应商汇总行
type SupplierSummary struct {
	Supplier      SupplierRef `json:"supplier"`
	InvoiceCount  int64       `json:"invoice_count"`
	TotalInvoiced Money       `json:"total_invoiced"`
	TotalPaid     Money       `json:"total_paid"`
	Outstanding   Money       `json:"outstanding"`
}

// SupplierLedger 供应商账本
type SupplierLedger struct {
	Supplier      Supplier  `json:"supplier"`
	Invoices      []Invoice `json:"invoices"`
	Payments      []Payment `json:"payments"`
	TotalInvoiced Money     `json:"total_invoiced"`
	TotalPaid     Money     `json:"total_paid"`
	// Outstanding is negative when the supplier has been overpaid.
	Outstanding Money `json:"outstanding"`
}

// BulkData 全量数据导出
type BulkData struct {
	Suppliers      []Supplier      `json:"suppliers"`
	Invoices       []Invoice       `json:"invoices"`
	Payments       []Payment       `json:"payments"`
	PurchaseOrders []PurchaseOrder `json:"purchase_orders"`
}
