package repository

import (
	"fmt"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"gorm.io/gorm"
)

// Models 账本全部表, 按依赖顺序
var Models = []interface{}{
	&entity.Supplier{},
	&entity.PurchaseOrder{},
	&entity.Invoice{},
	&entity.Payment{},
}

// AutoMigrate creates or updates the ledger tables. Safe to run repeatedly.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", Classify(err))
	}

	// MySQL 默认排序规则不区分大小写, 供应商名称需要按字节唯一
	if db.Dialector.Name() == "mysql" {
		err := db.Exec("ALTER TABLE suppliers MODIFY name VARCHAR(200) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error
		if err != nil {
			return fmt.Errorf("set supplier name collation: %w", Classify(err))
		}
	}
	return nil
}
