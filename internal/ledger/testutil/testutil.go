package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestSchema = "test_ledger"

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Repos  *repository.Repositories
	Router *gin.Engine
	T      *testing.T
}

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnv loads .env from the project root
func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB connects to PostgreSQL with an isolated schema that is dropped
// after the test. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "ledger")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=3",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%s", TestSchema, strings.ReplaceAll(uuid.NewString(), "-", "")[:12])

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("PostgreSQL not reachable, skipping: %v", err)
	}
	if err := setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName)).Error; err != nil {
		t.Skipf("cannot create test schema, skipping: %v", err)
	}
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in DSN so every pooled connection uses the test schema
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin router in test mode
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes a JSON request against the test router
func DoRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody io.Reader = bytes.NewBuffer(nil)
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = strings.NewReader(b)
	default:
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// FormFile 测试用上传文件
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// DoMultipart posts a multipart form with optional file parts
func DoMultipart(r http.Handler, path string, fields map[string]string, files []FormFile, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	for _, f := range files {
		part, _ := mw.CreateFormFile(f.Field, f.Filename)
		part.Write(f.Content)
	}
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedSupplier creates a supplier
func SeedSupplier(t *testing.T, db *gorm.DB, name string) *entity.Supplier {
	t.Helper()
	supplier := &entity.Supplier{ID: entity.NewID(), Name: name}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}
	return supplier
}

// SeedInvoice creates an invoice with total = pre + tax
func SeedInvoice(t *testing.T, db *gorm.DB, supplierID, number, date, pre, tax string) *entity.Invoice {
	t.Helper()
	before, taxAmount := entity.MustMoney(pre), entity.MustMoney(tax)
	d, err := entity.ParseDate(date)
	if err != nil {
		t.Fatalf("bad seed date: %v", err)
	}
	invoice := &entity.Invoice{
		ID:              entity.NewID(),
		SupplierID:      supplierID,
		InvoiceNumber:   number,
		InvoiceDate:     d,
		AmountBeforeTax: before,
		TaxAmount:       taxAmount,
		TotalAmount:     before.Add(taxAmount),
	}
	if err := db.Omit("Supplier", "PurchaseOrder").Create(invoice).Error; err != nil {
		t.Fatalf("Failed to seed invoice: %v", err)
	}
	return invoice
}

// SeedPayment creates a payment
func SeedPayment(t *testing.T, db *gorm.DB, supplierID, amount, date string) *entity.Payment {
	t.Helper()
	d, err := entity.ParseDate(date)
	if err != nil {
		t.Fatalf("bad seed date: %v", err)
	}
	payment := &entity.Payment{
		ID:          entity.NewID(),
		SupplierID:  supplierID,
		Amount:      entity.MustMoney(amount),
		PaymentDate: d,
	}
	if err := db.Omit("Supplier").Create(payment).Error; err != nil {
		t.Fatalf("Failed to seed payment: %v", err)
	}
	return payment
}

// SeedPurchaseOrder creates an active purchase order
func SeedPurchaseOrder(t *testing.T, db *gorm.DB, supplierID, price string) *entity.PurchaseOrder {
	t.Helper()
	po := &entity.PurchaseOrder{
		ID:          entity.NewID(),
		SupplierID:  supplierID,
		Description: "seed",
		Price:       entity.MustMoney(price),
		Status:      entity.POStatusActive,
		CreatedDate: entity.Today(),
	}
	if err := db.Omit("Supplier").Create(po).Error; err != nil {
		t.Fatalf("Failed to seed purchase order: %v", err)
	}
	return po
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
