package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Supplier 供应商
type Supplier struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:200;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierRef 供应商搜索结果
type SupplierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewID returns a 32-character hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
