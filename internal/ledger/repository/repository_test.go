package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/entity"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/repository"
	"github.com/ixAbdulaziz/ERP-Last/internal/ledger/testutil"
)

func setupRepos(t *testing.T) (*repository.Repositories, *testutil.TestEnv) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return repos, &testutil.TestEnv{DB: db, Repos: repos, T: t}
}

func TestAutoMigrateIdempotent(t *testing.T) {
	_, env := setupRepos(t)
	if err := repository.AutoMigrate(env.DB); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestInsertWithUnknownSupplierIsReferential(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	payment := &entity.Payment{SupplierID: entity.NewID(), Amount: entity.MustMoney("10"), PaymentDate: entity.Today()}
	if err := repos.Payment.Create(ctx, payment); !errors.Is(err, repository.ErrReferential) {
		t.Fatalf("payment: expected ErrReferential, got %v", err)
	}

	invoice := &entity.Invoice{
		SupplierID:      entity.NewID(),
		InvoiceNumber:   "X-1",
		InvoiceDate:     entity.Today(),
		AmountBeforeTax: entity.MustMoney("1"),
		TaxAmount:       entity.ZeroMoney(),
		TotalAmount:     entity.MustMoney("1"),
	}
	if err := repos.Invoice.Create(ctx, invoice); !errors.Is(err, repository.ErrReferential) {
		t.Fatalf("invoice: expected ErrReferential, got %v", err)
	}

	po := &entity.PurchaseOrder{SupplierID: entity.NewID(), Price: entity.MustMoney("1"), Status: entity.POStatusActive, CreatedDate: entity.Today()}
	if err := repos.PurchaseOrder.Create(ctx, po); !errors.Is(err, repository.ErrReferential) {
		t.Fatalf("purchase order: expected ErrReferential, got %v", err)
	}
}

func TestDuplicateSupplierName(t *testing.T) {
	repos, env := setupRepos(t)
	ctx := context.Background()
	testutil.SeedSupplier(t, env.DB, "Almeeda")

	err := repos.Supplier.Create(ctx, &entity.Supplier{Name: "Almeeda"})
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// identity is case-sensitive
	if err := repos.Supplier.Create(ctx, &entity.Supplier{Name: "ALMEEDA"}); err != nil {
		t.Fatalf("different case should be a different supplier: %v", err)
	}
}

func TestTotalCheckConstraint(t *testing.T) {
	repos, env := setupRepos(t)
	s := testutil.SeedSupplier(t, env.DB, "Check Co")

	invoice := &entity.Invoice{
		SupplierID:      s.ID,
		InvoiceNumber:   "BAD-1",
		InvoiceDate:     entity.Today(),
		AmountBeforeTax: entity.MustMoney("100"),
		TaxAmount:       entity.MustMoney("14"),
		TotalAmount:     entity.MustMoney("120"),
	}
	if err := repos.Invoice.Create(context.Background(), invoice); err == nil {
		t.Fatal("inconsistent total should be rejected by the store")
	}
}

func TestDeleteCascade(t *testing.T) {
	repos, env := setupRepos(t)
	ctx := context.Background()

	s := testutil.SeedSupplier(t, env.DB, "Cascade Co")
	other := testutil.SeedSupplier(t, env.DB, "Bystander")
	po := testutil.SeedPurchaseOrder(t, env.DB, s.ID, "50")
	inv := testutil.SeedInvoice(t, env.DB, s.ID, "C-1", "2025-01-01", "10", "1")
	key := "invoices/2025/01/01/" + inv.ID + ".pdf"
	env.DB.Model(&entity.Invoice{}).Where("id = ?", inv.ID).Update("attachment_path", key)
	testutil.SeedInvoice(t, env.DB, other.ID, "B-1", "2025-01-01", "5", "0")
	testutil.SeedPayment(t, env.DB, s.ID, "3", "2025-01-02")

	keys, err := repos.Supplier.DeleteCascade(ctx, s.ID)
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Fatalf("expected attachment keys [%s], got %v", key, keys)
	}

	var count int64
	env.DB.Model(&entity.Invoice{}).Where("supplier_id = ?", s.ID).Count(&count)
	if count != 0 {
		t.Fatalf("invoices left behind: %d", count)
	}
	env.DB.Model(&entity.Payment{}).Where("supplier_id = ?", s.ID).Count(&count)
	if count != 0 {
		t.Fatalf("payments left behind: %d", count)
	}
	if _, err := repos.PurchaseOrder.FindByID(ctx, po.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("purchase order should be gone, got %v", err)
	}
	env.DB.Model(&entity.Invoice{}).Where("supplier_id = ?", other.ID).Count(&count)
	if count != 1 {
		t.Fatalf("other supplier's invoice affected: %d", count)
	}

	if _, err := repos.Supplier.DeleteCascade(ctx, s.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestTransactionSeesConcurrentCommit(t *testing.T) {
	repos, env := setupRepos(t)
	ctx := context.Background()

	err := repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var level string
		if err := tx.DB().Raw("SHOW transaction_isolation").Scan(&level).Error; err != nil {
			return err
		}
		if level != "read committed" {
			t.Errorf("expected read committed, got %q", level)
		}

		if _, err := tx.Supplier.FindByName(ctx, "Late Co"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound before insert, got %v", err)
		}
		// committed on another pooled connection
		testutil.SeedSupplier(t, env.DB, "Late Co")

		got, err := tx.Supplier.FindByName(ctx, "Late Co")
		if err != nil {
			t.Fatalf("row committed after the first read should be visible: %v", err)
		}
		if got.Name != "Late Co" {
			t.Errorf("unexpected supplier %+v", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSearchByPrefix(t *testing.T) {
	repos, env := setupRepos(t)
	ctx := context.Background()
	for _, name := range []string{"Almeeda", "alpha traders", "Alpine", "Al-Noor", "Alba", "Alcon", "Beta", "50%_off"} {
		testutil.SeedSupplier(t, env.DB, name)
	}

	items, err := repos.Supplier.SearchByPrefix(ctx, "al", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 results, got %d", len(items))
	}
	for _, it := range items {
		if it.Name == "Beta" || it.Name == "50%_off" {
			t.Fatalf("unexpected match %s", it.Name)
		}
	}

	items, _ = repos.Supplier.SearchByPrefix(ctx, "alm", 5)
	if len(items) != 1 || items[0].Name != "Almeeda" {
		t.Fatalf("expected Almeeda, got %v", items)
	}

	// wildcards are literal
	items, _ = repos.Supplier.SearchByPrefix(ctx, "50%", 5)
	if len(items) != 1 {
		t.Fatalf("expected literal %% match, got %v", items)
	}
	items, _ = repos.Supplier.SearchByPrefix(ctx, "%", 5)
	if len(items) != 0 {
		t.Fatalf("%% should not match everything, got %v", items)
	}
}

func TestSupplierSummariesIncludeEmptySuppliers(t *testing.T) {
	repos, env := setupRepos(t)
	ctx := context.Background()

	a := testutil.SeedSupplier(t, env.DB, "Alpha")
	testutil.SeedSupplier(t, env.DB, "Zulu")
	testutil.SeedInvoice(t, env.DB, a.ID, "A-1", "2025-01-01", "100", "14")
	testutil.SeedInvoice(t, env.DB, a.ID, "A-2", "2025-01-02", "200", "0")
	testutil.SeedPayment(t, env.DB, a.ID, "50", "2025-01-03")
	testutil.SeedPayment(t, env.DB, a.ID, "25", "2025-01-04")

	items, err := repos.Ledger.SupplierSummaries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(items))
	}
	if items[0].Supplier.Name != "Alpha" || items[1].Supplier.Name != "Zulu" {
		t.Fatalf("unexpected order: %v", items)
	}
	if items[0].InvoiceCount != 2 || items[0].TotalInvoiced.String() != "314.00" {
		t.Fatalf("alpha summary wrong: %+v", items[0])
	}
	if items[0].TotalPaid.String() != "75.00" || items[0].Outstanding.String() != "239.00" {
		t.Fatalf("alpha payments wrong: %+v", items[0])
	}
	if items[1].InvoiceCount != 0 || items[1].TotalInvoiced.String() != "0.00" {
		t.Fatalf("zulu summary wrong: %+v", items[1])
	}
}

func TestGlobalStatsIdempotent(t *testing.T) {
	repos, env := setupRepos(t)
	ctx := context.Background()

	empty, err := repos.Ledger.GlobalStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if empty.SupplierCount != 0 || empty.TotalInvoiced.String() != "0.00" {
		t.Fatalf("empty stats wrong: %+v", empty)
	}

	s := testutil.SeedSupplier(t, env.DB, "Stats Co")
	testutil.SeedInvoice(t, env.DB, s.ID, "S-1", "2025-01-01", "0.10", "0.20")
	testutil.SeedPurchaseOrder(t, env.DB, s.ID, "9")

	first, _ := repos.Ledger.GlobalStats(ctx)
	second, _ := repos.Ledger.GlobalStats(ctx)
	if first.SupplierCount != second.SupplierCount || first.InvoiceCount != second.InvoiceCount ||
		first.PurchaseOrderCount != second.PurchaseOrderCount || !first.TotalInvoiced.Equal(second.TotalInvoiced) {
		t.Fatalf("stats changed between calls: %+v vs %+v", first, second)
	}
	if first.SupplierCount != 1 || first.InvoiceCount != 1 || first.PurchaseOrderCount != 1 || first.TotalInvoiced.String() != "0.30" {
		t.Fatalf("unexpected stats %+v", first)
	}
}

func TestDeletePurchaseOrderUnlinksInvoices(t *testing.T) {
	repos, env := setupRepos(t)
	ctx := context.Background()

	s := testutil.SeedSupplier(t, env.DB, "PO Co")
	po := testutil.SeedPurchaseOrder(t, env.DB, s.ID, "100")
	inv := testutil.SeedInvoice(t, env.DB, s.ID, "P-1", "2025-01-01", "10", "0")
	env.DB.Model(&entity.Invoice{}).Where("id = ?", inv.ID).Update("purchase_order_id", po.ID)

	if err := repos.PurchaseOrder.Delete(ctx, po.ID); err != nil {
		t.Fatal(err)
	}
	got, err := repos.Invoice.FindByID(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.PurchaseOrderID != nil {
		t.Fatalf("invoice still linked to %s", *got.PurchaseOrderID)
	}
	if err := repos.PurchaseOrder.Delete(ctx, po.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
