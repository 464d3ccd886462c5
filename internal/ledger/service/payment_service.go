package service

import (
	"context"
	"strings"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"go.uber.org/zap"
)

// PaymentService 付款服务
type PaymentService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewPaymentService(repos *repository.Repositories, logger *zap.Logger) *PaymentService {
	return &PaymentService{repos: repos, logger: logger}
}

// CreatePaymentRequest 付款请求, 日期为空时取当天
type CreatePaymentRequest struct {
	SupplierID string
	Amount     string
	Date       string
	Notes      string
}

func validatePayment(req *CreatePaymentRequest) (*entity.Payment, error) {
	supplierID := strings.TrimSpace(req.SupplierID)
	if supplierID == "" {
		return nil, newValidationError("supplier_id", "supplier id is required")
	}
	if strings.TrimSpace(req.Amount) == "" {
		return nil, newValidationError("amount", "amount is required")
	}
	amount, err := entity.ParseMoney(req.Amount)
	if err != nil {
		return nil, newValidationError("amount", "%v", err)
	}
	if !amount.IsPositive() {
		return nil, newValidationError("amount", "amount must be greater than zero")
	}

	date := entity.Today()
	if strings.TrimSpace(req.Date) != "" {
		if date, err = entity.ParseDate(req.Date); err != nil {
			return nil, newValidationError("date", "%v", err)
		}
	}

	return &entity.Payment{
		ID:          entity.NewID(),
		SupplierID:  supplierID,
		Amount:      amount,
		PaymentDate: date,
		Notes:       strings.TrimSpace(req.Notes),
	}, nil
}

// Create inserts the payment. An unknown supplier yields ErrReferential.
func (s *PaymentService) Create(ctx context.Context, req *CreatePaymentRequest) (*entity.Payment, error) {
	payment, err := validatePayment(req)
	if err != nil {
		return nil, err
	}
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		return tx.Payment.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("supplier_id", payment.SupplierID),
		zap.String("amount", payment.Amount.String()),
	)
	return payment, nil
}

// Delete 删除付款
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Payment.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("payment deleted", zap.String("payment_id", id))
	return nil
}
