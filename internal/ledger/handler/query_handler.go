package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
)

// QueryHandler 查询处理器. 返回裸JSON, 前端直接消费
type QueryHandler struct {
	svc *service.QueryService
}

func NewQueryHandler(svc *service.QueryService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

// SearchSuppliers 供应商名称前缀搜索
// GET /api/search_suppliers?q=
func (h *QueryHandler) SearchSuppliers(c *gin.Context) {
	items, err := h.svc.SearchSuppliersByPrefix(c.Request.Context(), c.Query("q"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// BulkData 全量数据
// GET /api/data
func (h *QueryHandler) BulkData(c *gin.Context) {
	data, err := h.svc.BulkData(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
