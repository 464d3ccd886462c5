package handler

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/flash"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/service"
	"go.uber.org/zap"
)

const multipartMemory = 8 << 20

// InvoiceHandler 发票处理器
type InvoiceHandler struct {
	svc       *service.InvoiceService
	suppliers *service.SupplierService
	pos       *service.POService
	flashes   flash.Store
	opts      Options
	logger    *zap.Logger
}

func NewInvoiceHandler(svc *service.InvoiceService, suppliers *service.SupplierService, pos *service.POService, flashes flash.Store, opts Options, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, suppliers: suppliers, pos: pos, flashes: flashes, opts: opts, logger: logger}
}

// AddFormData 发票录入页数据
type AddFormData struct {
	Flash          *flash.Message         `json:"flash"`
	Suppliers      []entity.Supplier      `json:"suppliers"`
	PurchaseOrders []entity.PurchaseOrder `json:"purchase_orders"`
	MaxUploadSize  int64                  `json:"max_upload_size"`
}

// AddForm 发票录入页
// GET /add
func (h *InvoiceHandler) AddForm(c *gin.Context) {
	ctx := c.Request.Context()

	suppliers, err := h.suppliers.List(ctx)
	if err != nil {
		RespondError(c, err)
		return
	}
	pos, err := h.pos.List(ctx, map[string]string{"status": entity.POStatusActive})
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, AddFormData{
		Flash:          h.popFlash(c),
		Suppliers:      suppliers,
		PurchaseOrders: pos,
		MaxUploadSize:  h.opts.MaxUploadSize,
	})
}

// SubmitForm 提交发票表单
// POST /add (multipart/form-data)
func (h *InvoiceHandler) SubmitForm(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadSize)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.failForm(c, err)
		return
	}

	req := &service.ComposeInvoiceRequest{
		SupplierName:    c.PostForm("supplier_name"),
		InvoiceNumber:   c.PostForm("invoice_number"),
		InvoiceType:     c.PostForm("invoice_type"),
		Category:        c.PostForm("category_name"),
		InvoiceDate:     c.PostForm("invoice_date"),
		AmountBeforeTax: c.PostForm("amount_pre_tax"),
		TaxAmount:       c.PostForm("tax_amount"),
		Notes:           c.PostForm("notes"),
		PurchaseOrderID: c.PostForm("purchase_order_id"),
	}

	var att *service.Attachment
	file, header, err := c.Request.FormFile("attachment")
	switch {
	case err == nil:
		defer file.Close()
		att = &service.Attachment{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		h.failForm(c, err)
		return
	}

	invoice, err := h.svc.Compose(c.Request.Context(), req, att)
	if err != nil {
		h.failForm(c, err)
		return
	}

	h.pushFlash(c, flash.Message{Kind: flash.KindSuccess, Text: "invoice saved", InvoiceID: invoice.ID})
	c.Redirect(http.StatusSeeOther, "/add")
}

func (h *InvoiceHandler) failForm(c *gin.Context, err error) {
	_, message := ErrorCode(err)
	h.pushFlash(c, flash.Message{Kind: flash.KindError, Text: message})
	RespondError(c, err)
}

func (h *InvoiceHandler) pushFlash(c *gin.Context, msg flash.Message) {
	if h.flashes == nil {
		return
	}
	id, err := h.flashes.Put(c.Request.Context(), msg)
	if err != nil {
		h.logger.Warn("failed to store flash message", zap.Error(err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flash.CookieName, id, int(flash.DefaultTTL.Seconds()), "/", "", h.opts.SecureCookies, true)
}

func (h *InvoiceHandler) popFlash(c *gin.Context) *flash.Message {
	if h.flashes == nil {
		return nil
	}
	id, err := c.Cookie(flash.CookieName)
	if err != nil || id == "" {
		return nil
	}
	c.SetCookie(flash.CookieName, "", -1, "/", "", h.opts.SecureCookies, true)
	msg, err := h.flashes.Pop(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("failed to read flash message", zap.Error(err))
		return nil
	}
	return msg
}

// CreateInvoiceRequest JSON录入请求
type CreateInvoiceRequest struct {
	Supplier        string     `json:"supplier"`
	InvoiceNumber   string     `json:"invoiceNumber"`
	InvoiceType     string     `json:"invoiceType"`
	Category        string     `json:"category"`
	Date            string     `json:"date"`
	AmountBeforeTax amountText `json:"amountBeforeTax"`
	TaxAmount       amountText `json:"taxAmount"`
	TotalAmount     amountText `json:"totalAmount"`
	Notes           string     `json:"notes"`
	PurchaseOrderID string     `json:"purchaseOrderId"`
}

// Create 创建发票
// POST /api/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	invoice, err := h.svc.Compose(c.Request.Context(), &service.ComposeInvoiceRequest{
		SupplierName:    req.Supplier,
		InvoiceNumber:   req.InvoiceNumber,
		InvoiceType:     req.InvoiceType,
		Category:        req.Category,
		InvoiceDate:     req.Date,
		AmountBeforeTax: string(req.AmountBeforeTax),
		TaxAmount:       string(req.TaxAmount),
		TotalAmount:     string(req.TotalAmount),
		Notes:           req.Notes,
		PurchaseOrderID: req.PurchaseOrderID,
	}, nil)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, invoice)
}

// Delete 删除发票
// POST /api/invoices/:id/delete
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"id": id})
}

// DownloadAttachment 下载附件
// GET /api/invoices/:id/attachment
func (h *InvoiceHandler) DownloadAttachment(c *gin.Context) {
	rc, invoice, err := h.svc.OpenAttachment(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer rc.Close()

	key := *invoice.AttachmentPath
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := path.Base(key)
	if invoice.AttachmentName != nil && *invoice.AttachmentName != "" {
		filename = *invoice.AttachmentName
	}

	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": filename}),
	})
}
