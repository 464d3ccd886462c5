package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
)

// 搜索参数
const (
	MinSearchLength = 2
	SearchLimit     = 5
)

// QueryService 查询服务
type QueryService struct {
	repos *repository.Repositories
}

func NewQueryService(repos *repository.Repositories) *QueryService {
	return &QueryService{repos: repos}
}

// SearchSuppliersByPrefix returns up to five suppliers whose name starts with
// q, ignoring case. Queries shorter than two characters return nothing.
func (s *QueryService) SearchSuppliersByPrefix(ctx context.Context, q string) ([]entity.SupplierRef, error) {
	q = NormalizeSupplierName(q)
	if utf8.RuneCountInString(q) < MinSearchLength {
		return []entity.SupplierRef{}, nil
	}
	return s.repos.Supplier.SearchByPrefix(ctx, strings.ToLower(q), SearchLimit)
}

// BulkData 全量数据
func (s *QueryService) BulkData(ctx context.Context) (*entity.BulkData, error) {
	data := &entity.BulkData{}
	err := s.repos.ReadTransaction(ctx, func(tx *repository.Repositories) error {
		var err error
		if data.Suppliers, err = tx.Supplier.FindAll(ctx); err != nil {
			return err
		}
		if data.Invoices, err = tx.Invoice.FindAll(ctx); err != nil {
			return err
		}
		if data.Payments, err = tx.Payment.FindAll(ctx); err != nil {
			return err
		}
		data.PurchaseOrders, err = tx.PurchaseOrder.FindAll(ctx, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
