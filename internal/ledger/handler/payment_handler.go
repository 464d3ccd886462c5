package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
)

// PaymentHandler 付款处理器
type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// CreatePaymentRequest 付款请求
type CreatePaymentRequest struct {
	SupplierID string     `json:"supplier_id"`
	Amount     amountText `json:"amount"`
	Date       string     `json:"date"`
	Notes      string     `json:"notes"`
}

// Create 登记付款
// POST /api/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	payment, err := h.svc.Create(c.Request.Context(), &service.CreatePaymentRequest{
		SupplierID: req.SupplierID,
		Amount:     string(req.Amount),
		Date:       req.Date,
		Notes:      req.Notes,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, payment)
}

// Delete 删除付款
// POST /api/payments/:id/delete
func (h *PaymentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"id": id})
}
