package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrReferential  = errors.New("referenced record does not exist")
	ErrConnectivity = errors.New("database unreachable")
)

// PostgreSQL error codes
const (
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
	pgClassConnection        = "08"
)

// MySQL error numbers
const (
	myErrDupEntry         = 1062
	myErrRowIsReferenced  = 1451
	myErrNoReferencedRow  = 1452
	myErrRowIsReferenced1 = 1217
	myErrNoReferencedRow1 = 1216
	myErrCannotConnect    = 2002
	myErrServerGone       = 2006
	myErrLostConnection   = 2013
)

// Repositories 账本仓库集合
type Repositories struct {
	db *gorm.DB

	Supplier      *SupplierRepository
	Invoice       *InvoiceRepository
	PurchaseOrder *PORepository
	Payment       *PaymentRepository
	Ledger        *LedgerRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:            db,
		Supplier:      NewSupplierRepository(db),
		Invoice:       NewInvoiceRepository(db),
		PurchaseOrder: NewPORepository(db),
		Payment:       NewPaymentRepository(db),
		Ledger:        NewLedgerRepository(db),
	}
}

// DB returns the handle the repositories are bound to.
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// writeIsolation 写事务使用 READ COMMITTED, 唯一键冲突后的重读需要看到其他事务已提交的行
var writeIsolation = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// Transaction runs fn with repositories bound to a single READ COMMITTED
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise, including on panic. Calling Transaction on repositories that are
// already bound to a transaction opens a savepoint instead.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	}, writeIsolation)
	return Classify(err)
}

var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// ReadTransaction runs fn in a read-only transaction so that every query sees
// the same snapshot.
func (r *Repositories) ReadTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	}, snapshotRead)
	return Classify(err)
}

// Ping checks that the store is reachable.
func (r *Repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return Classify(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return nil
}

// Classify maps driver and gorm errors onto the repository sentinels. Errors
// that already carry a sentinel are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrNotFound, ErrDuplicateKey, ErrReferential, ErrConnectivity} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrReferential, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == PgErrUniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case pgErr.Code == PgErrForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrReferential, err)
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == pgClassConnection:
			return fmt.Errorf("%w: %w", ErrConnectivity, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myErrDupEntry:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case myErrNoReferencedRow, myErrNoReferencedRow1, myErrRowIsReferenced, myErrRowIsReferenced1:
			return fmt.Errorf("%w: %w", ErrReferential, err)
		case myErrCannotConnect, myErrServerGone, myErrLostConnection:
			return fmt.Errorf("%w: %w", ErrConnectivity, err)
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return err
}
