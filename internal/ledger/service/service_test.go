package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestValidateInvoice(t *testing.T) {
	draft, err := validateInvoice(&ComposeInvoiceRequest{
		SupplierName:    "  Almeeda ",
		InvoiceNumber:   "INV-1",
		InvoiceDate:     "2025-01-09",
		AmountBeforeTax: "100.00",
		TaxAmount:       "14.00",
		TotalAmount:     "999",
	})
	if err != nil {
		t.Fatal(err)
	}
	if draft.supplierName != "Almeeda" {
		t.Fatalf("name not trimmed: %q", draft.supplierName)
	}
	// client total is ignored
	if draft.total.String() != "114.00" {
		t.Fatalf("expected 114.00, got %s", draft.total)
	}

	draft, err = validateInvoice(&ComposeInvoiceRequest{
		SupplierName:  "Almeeda",
		InvoiceNumber: "INV-2",
		InvoiceDate:   "2025-01-09",
		TotalAmount:   "50.5",
	})
	if err != nil {
		t.Fatal(err)
	}
	if draft.amountBeforeTax.String() != "50.50" || draft.taxAmount.String() != "0.00" || draft.total.String() != "50.50" {
		t.Fatalf("simplified body mis-parsed: %+v", draft)
	}
}

func TestValidateInvoiceRejects(t *testing.T) {
	valid := func() ComposeInvoiceRequest {
		return ComposeInvoiceRequest{
			SupplierName:    "Almeeda",
			InvoiceNumber:   "INV-1",
			InvoiceDate:     "2025-01-09",
			AmountBeforeTax: "100",
			TaxAmount:       "14",
		}
	}
	tests := []struct {
		name  string
		field string
		edit  func(r *ComposeInvoiceRequest)
	}{
		{"missing supplier", "supplier_name", func(r *ComposeInvoiceRequest) { r.SupplierName = "   " }},
		{"long supplier", "supplier_name", func(r *ComposeInvoiceRequest) { r.SupplierName = strings.Repeat("س", MaxSupplierNameLength+1) }},
		{"missing number", "invoice_number", func(r *ComposeInvoiceRequest) { r.InvoiceNumber = "" }},
		{"missing date", "invoice_date", func(r *ComposeInvoiceRequest) { r.InvoiceDate = "" }},
		{"bad date", "invoice_date", func(r *ComposeInvoiceRequest) { r.InvoiceDate = "2025-02-30" }},
		{"missing amount", "amount_before_tax", func(r *ComposeInvoiceRequest) { r.AmountBeforeTax, r.TaxAmount = "", "" }},
		{"negative amount", "amount_before_tax", func(r *ComposeInvoiceRequest) { r.AmountBeforeTax = "-1" }},
		{"non numeric tax", "tax_amount", func(r *ComposeInvoiceRequest) { r.TaxAmount = "abc" }},
		{"negative tax", "tax_amount", func(r *ComposeInvoiceRequest) { r.TaxAmount = "-0.01" }},
		{"exponent amount", "amount_before_tax", func(r *ComposeInvoiceRequest) { r.AmountBeforeTax = "1e20" }},
		{"huge exponent", "amount_before_tax", func(r *ComposeInvoiceRequest) { r.AmountBeforeTax = "1e999999" }},
		{"too many digits", "amount_before_tax", func(r *ComposeInvoiceRequest) { r.AmountBeforeTax = "99999999999999.00" }},
		{"exponent tax", "tax_amount", func(r *ComposeInvoiceRequest) { r.TaxAmount = "1e20" }},
		{"total overflow", "total_amount", func(r *ComposeInvoiceRequest) { r.AmountBeforeTax, r.TaxAmount = "9999999999999.99", "1" }},
		{"simplified total overflow", "amount_before_tax", func(r *ComposeInvoiceRequest) {
			r.AmountBeforeTax, r.TaxAmount, r.TotalAmount = "", "", "1e20"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.edit(&req)
			_, err := validateInvoice(&req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("expected field %s, got %s", tt.field, ve.Field)
			}
		})
	}
}

func TestValidatePayment(t *testing.T) {
	p, err := validatePayment(&CreatePaymentRequest{SupplierID: "s1", Amount: "200", Notes: " cash "})
	if err != nil {
		t.Fatal(err)
	}
	if p.Amount.String() != "200.00" || p.Notes != "cash" {
		t.Fatalf("unexpected payment %+v", p)
	}
	if p.PaymentDate.String() != entity.Today().String() {
		t.Fatalf("date should default to today, got %s", p.PaymentDate)
	}

	p, err = validatePayment(&CreatePaymentRequest{SupplierID: "s1", Amount: "1", Date: "2024-12-31"})
	if err != nil || p.PaymentDate.String() != "2024-12-31" {
		t.Fatalf("explicit date: %v, %v", p, err)
	}

	for _, req := range []CreatePaymentRequest{
		{Amount: "10"},
		{SupplierID: "s1"},
		{SupplierID: "s1", Amount: "0"},
		{SupplierID: "s1", Amount: "-5"},
		{SupplierID: "s1", Amount: "ten"},
		{SupplierID: "s1", Amount: "1e20"},
		{SupplierID: "s1", Amount: "99999999999999"},
		{SupplierID: "s1", Amount: "10", Date: "tomorrow"},
	} {
		if _, err := validatePayment(&req); !IsValidationError(err) {
			t.Errorf("%+v: expected validation error, got %v", req, err)
		}
	}
}

func TestNormalizeSupplierName(t *testing.T) {
	decomposed := "Cafe\u0301 Co"
	if got := NormalizeSupplierName("  " + decomposed + "\t"); got != "Caf\u00e9 Co" {
		t.Fatalf("expected NFC form, got %q", got)
	}
}

func TestClampLimit(t *testing.T) {
	tests := map[int]int{-3: 1, 0: 1, 1: 1, 10: 10, 100: 100, 1000: 100}
	for in, want := range tests {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDistinctSuppliers(t *testing.T) {
	a := &entity.Supplier{ID: "a", Name: "Alpha"}
	b := &entity.Supplier{ID: "b", Name: "Beta"}
	invoices := []entity.Invoice{
		{SupplierID: "a", Supplier: a},
		{SupplierID: "b", Supplier: b},
		{SupplierID: "a", Supplier: a},
	}
	refs := DistinctSuppliers(invoices)
	if len(refs) != 2 || refs[0].Name != "Alpha" || refs[1].Name != "Beta" {
		t.Fatalf("unexpected refs %v", refs)
	}
	if got := DistinctSuppliers(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestBuildLedger(t *testing.T) {
	supplier := &entity.Supplier{ID: "s1", Name: "Almeeda"}
	invoices := []entity.Invoice{
		{TotalAmount: entity.MustMoney("300")},
		{TotalAmount: entity.MustMoney("200")},
	}

	ledger := BuildLedger(supplier, invoices, []entity.Payment{{Amount: entity.MustMoney("200")}})
	if ledger.TotalInvoiced.String() != "500.00" || ledger.TotalPaid.String() != "200.00" || ledger.Outstanding.String() != "300.00" {
		t.Fatalf("unexpected totals %s %s %s", ledger.TotalInvoiced, ledger.TotalPaid, ledger.Outstanding)
	}

	ledger = BuildLedger(supplier, invoices, []entity.Payment{{Amount: entity.MustMoney("600")}})
	if ledger.Outstanding.String() != "-100.00" {
		t.Fatalf("overpayment should go negative, got %s", ledger.Outstanding)
	}

	empty := BuildLedger(supplier, nil, nil)
	if empty.TotalInvoiced.String() != "0.00" || empty.Outstanding.String() != "0.00" {
		t.Fatalf("empty ledger totals wrong: %+v", empty)
	}
}

func TestBuildSummaryWorkbook(t *testing.T) {
	summaries := []entity.SupplierSummary{
		{
			Supplier:      entity.SupplierRef{ID: "a", Name: "Alpha"},
			InvoiceCount:  2,
			TotalInvoiced: entity.MustMoney("314"),
			TotalPaid:     entity.MustMoney("75"),
			Outstanding:   entity.MustMoney("239"),
		},
		{
			Supplier:      entity.SupplierRef{ID: "z", Name: "Zulu"},
			TotalInvoiced: entity.ZeroMoney(),
			TotalPaid:     entity.ZeroMoney(),
			Outstanding:   entity.ZeroMoney(),
		},
	}
	f, err := BuildSummaryWorkbook(summaries)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	book, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()

	cells := map[string]string{
		"A1": "供应商",
		"A2": "Alpha",
		"C2": "314.00",
		"E2": "239.00",
		"A3": "Zulu",
		"C3": "0.00",
		"A4": "合计",
		"B4": "2",
		"C4": "314.00",
		"D4": "75.00",
		"E4": "239.00",
	}
	for cell, want := range cells {
		got, err := book.GetCellValue("Suppliers", cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestBuildStatementPDF(t *testing.T) {
	ledger := BuildLedger(
		&entity.Supplier{ID: "s1", Name: "Café Almeeda"},
		[]entity.Invoice{{
			InvoiceNumber:   "INV-1",
			InvoiceDate:     entity.NewDate(time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)),
			AmountBeforeTax: entity.MustMoney("100"),
			TaxAmount:       entity.MustMoney("14"),
			TotalAmount:     entity.MustMoney("114"),
		}},
		[]entity.Payment{{Amount: entity.MustMoney("50"), PaymentDate: entity.Today(), Notes: "مدفوع"}},
	)
	data, err := BuildStatementPDF(ledger, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 8)])
	}
}

type failingBlobStore struct{}

func (failingBlobStore) Put(context.Context, string, io.Reader, int64, string) error {
	return errors.New("disk full")
}

func (failingBlobStore) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("unavailable")
}

func (failingBlobStore) Delete(context.Context, string) error { return nil }

func TestComposeStorageFailure(t *testing.T) {
	// repos is nil: the blob is written before any database work
	svc := NewInvoiceService(nil, nil, failingBlobStore{}, zap.NewNop())
	_, err := svc.Compose(context.Background(), &ComposeInvoiceRequest{
		SupplierName:    "Almeeda",
		InvoiceNumber:   "INV-1",
		InvoiceDate:     "2025-01-09",
		AmountBeforeTax: "100",
		TaxAmount:       "14",
	}, &Attachment{FileName: "scan.pdf", Reader: strings.NewReader("pdf"), Size: 3})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestSearchShortQuery(t *testing.T) {
	svc := NewQueryService(nil)
	for _, q := range []string{"", " ", "a", " b "} {
		items, err := svc.SearchSuppliersByPrefix(context.Background(), q)
		if err != nil {
			t.Fatal(err)
		}
		if items == nil || len(items) != 0 {
			t.Fatalf("%q: expected empty slice, got %v", q, items)
		}
	}
}
