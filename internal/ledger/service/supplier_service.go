package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/storage"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// MaxSupplierNameLength 供应商名称最大长度(字符)
const MaxSupplierNameLength = 200

// SupplierService 供应商服务
type SupplierService struct {
	repos  *repository.Repositories
	blobs  storage.BlobStore
	logger *zap.Logger
}

func NewSupplierService(repos *repository.Repositories, blobs storage.BlobStore, logger *zap.Logger) *SupplierService {
	return &SupplierService{repos: repos, blobs: blobs, logger: logger}
}

// NormalizeSupplierName trims surrounding whitespace and applies Unicode NFC
// so that visually identical names resolve to the same supplier.
func NormalizeSupplierName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func validateSupplierName(raw string) (string, error) {
	name := NormalizeSupplierName(raw)
	if name == "" {
		return "", newValidationError("supplier_name", "supplier name is required")
	}
	if utf8.RuneCountInString(name) > MaxSupplierNameLength {
		return "", newValidationError("supplier_name", "supplier name exceeds %d characters", MaxSupplierNameLength)
	}
	return name, nil
}

// ResolveOrCreate returns the supplier with exactly this name, creating it when
// absent. It runs inside tx so the new supplier rolls back with the caller. A
// concurrent insert of the same name is recovered by re-reading after the
// unique violation, which relies on tx being opened by
// Repositories.Transaction (READ COMMITTED).
func (s *SupplierService) ResolveOrCreate(ctx context.Context, tx *repository.Repositories, rawName string) (*entity.Supplier, error) {
	name, err := validateSupplierName(rawName)
	if err != nil {
		return nil, err
	}

	supplier, err := tx.Supplier.FindByName(ctx, name)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	supplier = &entity.Supplier{ID: entity.NewID(), Name: name}
	err = tx.Transaction(ctx, func(sp *repository.Repositories) error {
		return sp.Supplier.Create(ctx, supplier)
	})
	if err == nil {
		s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID), zap.String("name", name))
		return supplier, nil
	}
	if !errors.Is(err, repository.ErrDuplicateKey) {
		return nil, err
	}

	s.logger.Debug("supplier insert lost race, reading existing row", zap.String("name", name))
	return tx.Supplier.FindByName(ctx, name)
}

// Resolve 在独立事务中解析供应商
func (s *SupplierService) Resolve(ctx context.Context, rawName string) (*entity.Supplier, error) {
	var supplier *entity.Supplier
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		supplier, err = s.ResolveOrCreate(ctx, tx, rawName)
		return err
	})
	return supplier, err
}

// Get 获取供应商
func (s *SupplierService) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	return s.repos.Supplier.FindByID(ctx, id)
}

// List 全部供应商
func (s *SupplierService) List(ctx context.Context) ([]entity.Supplier, error) {
	return s.repos.Supplier.FindAll(ctx)
}

// Rename 修改名称, 名称已被占用时返回 ErrDuplicateKey
func (s *SupplierService) Rename(ctx context.Context, id, rawName string) (*entity.Supplier, error) {
	name, err := validateSupplierName(rawName)
	if err != nil {
		return nil, err
	}

	var supplier *entity.Supplier
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Supplier.Rename(ctx, id, name); err != nil {
			return err
		}
		var err error
		supplier, err = tx.Supplier.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("supplier renamed", zap.String("supplier_id", id), zap.String("name", name))
	return supplier, nil
}

// Delete removes the supplier with all dependent records, then drops the
// attachment blobs of the removed invoices.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	keys, err := s.repos.Supplier.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("supplier deleted", zap.String("supplier_id", id), zap.Int("attachments", len(keys)))
	for _, key := range keys {
		removeBlob(ctx, s.blobs, s.logger, key)
	}
	return nil
}

// removeBlob deletes key and only logs on failure.
func removeBlob(ctx context.Context, blobs storage.BlobStore, logger *zap.Logger, key string) {
	if blobs == nil || key == "" {
		return
	}
	if err := blobs.Delete(ctx, key); err != nil {
		logger.Warn("failed to remove attachment", zap.String("key", key), zap.Error(err))
	}
}
