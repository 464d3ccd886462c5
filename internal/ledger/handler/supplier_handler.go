package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
)

// SupplierHandler 供应商处理器
type SupplierHandler struct {
	svc    *service.SupplierService
	ledger *service.LedgerService
}

func NewSupplierHandler(svc *service.SupplierService, ledger *service.LedgerService) *SupplierHandler {
	return &SupplierHandler{svc: svc, ledger: ledger}
}

// Summaries 供应商汇总
// GET /view
func (h *SupplierHandler) Summaries(c *gin.Context) {
	items, err := h.ledger.SupplierSummaries(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// Ledger 供应商账本
// GET /supplier/:id
func (h *SupplierHandler) Ledger(c *gin.Context) {
	ledger, err := h.ledger.SupplierLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, ledger)
}

// RenameSupplierRequest 供应商改名请求
type RenameSupplierRequest struct {
	Name string `json:"name"`
}

// Rename 供应商改名
// POST /api/suppliers/:id/edit
func (h *SupplierHandler) Rename(c *gin.Context) {
	var req RenameSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	supplier, err := h.svc.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, supplier)
}

// Delete 删除供应商及其全部单据
// POST /api/suppliers/:id/delete
func (h *SupplierHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"id": id})
}
