package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ExportSuppliers 导出供应商汇总
// GET /api/export/suppliers.xlsx
func (h *ReportHandler) ExportSuppliers(c *gin.Context) {
	f, filename, err := h.svc.ExportSupplierSummaries(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Statement 供应商对账单
// GET /supplier/:id/statement.pdf
func (h *ReportHandler) Statement(c *gin.Context) {
	data, filename, err := h.svc.SupplierStatement(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "application/pdf", data)
}
