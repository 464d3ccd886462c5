package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/flash"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
	"go.uber.org/zap"
)

// DefaultMaxUploadSize 附件上传上限
const DefaultMaxUploadSize int64 = 10 << 20

// Options 处理器配置
type Options struct {
	MaxUploadSize int64
	SecureCookies bool
}

// Handlers 账本处理器集合
type Handlers struct {
	Dashboard     *DashboardHandler
	Invoice       *InvoiceHandler
	Supplier      *SupplierHandler
	Payment       *PaymentHandler
	PurchaseOrder *POHandler
	Query         *QueryHandler
	Report        *ReportHandler
	Health        *HealthHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svcs *service.Services, repos *repository.Repositories, flashes flash.Store, opts Options, logger *zap.Logger) *Handlers {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = DefaultMaxUploadSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Dashboard:     NewDashboardHandler(svcs.Ledger),
		Invoice:       NewInvoiceHandler(svcs.Invoice, svcs.Supplier, svcs.PurchaseOrder, flashes, opts, logger),
		Supplier:      NewSupplierHandler(svcs.Supplier, svcs.Ledger),
		Payment:       NewPaymentHandler(svcs.Payment),
		PurchaseOrder: NewPOHandler(svcs.PurchaseOrder),
		Query:         NewQueryHandler(svcs.Query),
		Report:        NewReportHandler(svcs.Report),
		Health:        NewHealthHandler(repos),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// 业务错误码
const (
	CodeBadRequest      = 40000
	CodeNotFound        = 40400
	CodeConflict        = 40900
	CodeTooLarge        = 41300
	CodeReferential     = 42200
	CodeInternal        = 50000
	CodeStorage         = 50200
	CodeUnavailable     = 50300
	messageInternalFail = "internal error"
)

func BadRequest(c *gin.Context, message string) {
	Error(c, CodeBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, CodeNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, CodeInternal, message)
}

// ErrorCode maps a service or repository error to its business code and
// client message.
func ErrorCode(err error) (int, string) {
	var ve *service.ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &ve):
		return CodeBadRequest, ve.Error()
	case errors.As(err, &tooLarge):
		return CodeTooLarge, "request body too large"
	case errors.Is(err, repository.ErrNotFound):
		return CodeNotFound, "not found"
	case errors.Is(err, repository.ErrDuplicateKey):
		return CodeConflict, "name already in use"
	case errors.Is(err, repository.ErrReferential):
		return CodeReferential, "referenced record does not exist"
	case errors.Is(err, service.ErrStorage):
		return CodeStorage, "attachment storage failed"
	case errors.Is(err, repository.ErrConnectivity):
		return CodeUnavailable, "database unavailable"
	default:
		return CodeInternal, messageInternalFail
	}
}

// RespondError writes the error envelope and records err on the context for
// the request logger.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)
	code, message := ErrorCode(err)
	Error(c, code, message)
}
