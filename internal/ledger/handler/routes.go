package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册账本路由
func RegisterRoutes(r gin.IRouter, h *Handlers) {
	r.GET("/health", h.Health.Live)
	r.GET("/health/ready", h.Health.Ready)

	r.GET("/", h.Dashboard.Get)
	r.GET("/home", h.Dashboard.Get)
	r.GET("/add", h.Invoice.AddForm)
	r.POST("/add", h.Invoice.SubmitForm)
	r.GET("/view", h.Supplier.Summaries)
	r.GET("/supplier/:id", h.Supplier.Ledger)
	r.GET("/supplier/:id/statement.pdf", h.Report.Statement)
	r.GET("/purchase-orders", h.PurchaseOrder.List)

	api := r.Group("/api")
	{
		api.GET("/search_suppliers", h.Query.SearchSuppliers)
		api.GET("/data", h.Query.BulkData)
		api.GET("/export/suppliers.xlsx", h.Report.ExportSuppliers)

		api.POST("/invoices", h.Invoice.Create)
		api.POST("/invoices/:id/delete", h.Invoice.Delete)
		api.GET("/invoices/:id/attachment", h.Invoice.DownloadAttachment)

		api.POST("/payments", h.Payment.Create)
		api.POST("/payments/:id/delete", h.Payment.Delete)

		api.POST("/suppliers/:id/edit", h.Supplier.Rename)
		api.POST("/suppliers/:id/delete", h.Supplier.Delete)

		pos := api.Group("/purchase-orders")
		{
			pos.GET("", h.PurchaseOrder.List)
			pos.POST("", h.PurchaseOrder.Create)
			pos.POST("/:id/status", h.PurchaseOrder.UpdateStatus)
			pos.POST("/:id/delete", h.PurchaseOrder.Delete)
		}
	}
}
