package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
)

// POHandler 采购订单处理器
type POHandler struct {
	svc *service.POService
}

func NewPOHandler(svc *service.POService) *POHandler {
	return &POHandler{svc: svc}
}

// List 采购订单列表
// GET /purchase-orders, GET /api/purchase-orders?supplier_id=&status=
func (h *POHandler) List(c *gin.Context) {
	filters := map[string]string{
		"supplier_id": c.Query("supplier_id"),
		"status":      c.Query("status"),
	}
	items, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

// CreatePORequest 创建采购订单请求
type CreatePORequest struct {
	SupplierID   string     `json:"supplier_id"`
	SupplierName string     `json:"supplier_name"`
	Description  string     `json:"description"`
	Price        amountText `json:"price"`
	Status       string     `json:"status"`
	CreatedDate  string     `json:"created_date"`
}

// Create 创建采购订单
// POST /api/purchase-orders
func (h *POHandler) Create(c *gin.Context) {
	var req CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	po, err := h.svc.Create(c.Request.Context(), &service.CreatePORequest{
		SupplierID:   req.SupplierID,
		SupplierName: req.SupplierName,
		Description:  req.Description,
		Price:        string(req.Price),
		Status:       req.Status,
		CreatedDate:  req.CreatedDate,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, po)
}

// UpdatePOStatusRequest 状态变更请求
type UpdatePOStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus 变更采购订单状态
// POST /api/purchase-orders/:id/status
func (h *POHandler) UpdateStatus(c *gin.Context) {
	var req UpdatePOStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	po, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

// Delete 删除采购订单
// POST /api/purchase-orders/:id/delete
func (h *POHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"id": id})
}
