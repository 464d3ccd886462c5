package service

import (
	"context"
	"strings"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"go.uber.org/zap"
)

// POService 采购订单服务
type POService struct {
	repos     *repository.Repositories
	suppliers *SupplierService
	logger    *zap.Logger
}

func NewPOService(repos *repository.Repositories, suppliers *SupplierService, logger *zap.Logger) *POService {
	return &POService{repos: repos, suppliers: suppliers, logger: logger}
}

// CreatePORequest 创建采购订单请求
type CreatePORequest struct {
	// SupplierID wins over SupplierName when both are set.
	SupplierID   string
	SupplierName string
	Description  string
	Price        string
	Status       string
	CreatedDate  string
}

// List 采购订单列表
func (s *POService) List(ctx context.Context, filters map[string]string) ([]entity.PurchaseOrder, error) {
	if status := filters["status"]; status != "" && !entity.IsValidPOStatus(status) {
		return nil, newValidationError("status", "unknown status %q", status)
	}
	return s.repos.PurchaseOrder.FindAll(ctx, filters)
}

// Get 采购订单详情
func (s *POService) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.repos.PurchaseOrder.FindByID(ctx, id)
}

// Create 创建采购订单
func (s *POService) Create(ctx context.Context, req *CreatePORequest) (*entity.PurchaseOrder, error) {
	supplierID := strings.TrimSpace(req.SupplierID)
	if supplierID == "" && strings.TrimSpace(req.SupplierName) == "" {
		return nil, newValidationError("supplier_id", "supplier is required")
	}
	if strings.TrimSpace(req.Price) == "" {
		return nil, newValidationError("price", "price is required")
	}
	price, err := entity.ParseNonNegativeMoney(req.Price)
	if err != nil {
		return nil, newValidationError("price", "%v", err)
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.POStatusActive
	}
	if !entity.IsValidPOStatus(status) {
		return nil, newValidationError("status", "unknown status %q", status)
	}
	created := entity.Today()
	if strings.TrimSpace(req.CreatedDate) != "" {
		if created, err = entity.ParseDate(req.CreatedDate); err != nil {
			return nil, newValidationError("created_date", "%v", err)
		}
	}

	po := &entity.PurchaseOrder{
		ID:          entity.NewID(),
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		Status:      status,
		CreatedDate: created,
	}
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if supplierID == "" {
			supplier, err := s.suppliers.ResolveOrCreate(ctx, tx, req.SupplierName)
			if err != nil {
				return err
			}
			po.SupplierID = supplier.ID
		} else {
			po.SupplierID = supplierID
		}
		return tx.PurchaseOrder.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("purchase order created", zap.String("po_id", po.ID), zap.String("supplier_id", po.SupplierID))
	return po, nil
}

// UpdateStatus 修改状态
func (s *POService) UpdateStatus(ctx context.Context, id, status string) (*entity.PurchaseOrder, error) {
	status = strings.TrimSpace(status)
	if !entity.IsValidPOStatus(status) {
		return nil, newValidationError("status", "unknown status %q", status)
	}
	if err := s.repos.PurchaseOrder.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repos.PurchaseOrder.FindByID(ctx, id)
}

// Delete 删除采购订单, 关联发票解除关联
func (s *POService) Delete(ctx context.Context, id string) error {
	if err := s.repos.PurchaseOrder.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("purchase order deleted", zap.String("po_id", id))
	return nil
}
