package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
)

// 首页列表长度
const (
	dashboardInvoiceLimit  = 10
	dashboardSupplierLimit = 5
)

// DashboardHandler 首页处理器
type DashboardHandler struct {
	svc *service.LedgerService
}

func NewDashboardHandler(svc *service.LedgerService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// DashboardData 首页数据
type DashboardData struct {
	Stats           *entity.GlobalStats  `json:"stats"`
	LatestInvoices  []entity.Invoice     `json:"latest_invoices"`
	RecentSuppliers []entity.SupplierRef `json:"recent_suppliers"`
}

// Get 首页
// GET /, GET /home
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.svc.GlobalStats(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	invoices, err := h.svc.LatestInvoices(ctx, dashboardInvoiceLimit)
	if err != nil {
		RespondError(c, err)
		return
	}
	suppliers, err := h.svc.RecentSuppliers(ctx, dashboardSupplierLimit)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, DashboardData{
		Stats:           stats,
		LatestInvoices:  invoices,
		RecentSuppliers: suppliers,
	})
}
