package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"invoice.pdf", "invoice.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\scan.png`, "scan.png"},
		{"a..b.pdf", "ab.pdf"},
		{"bad\x00name\n.pdf", "badname.pdf"},
		{"  فاتورة.pdf ", "فاتورة.pdf"},
		{"dir/", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInvoiceKey(t *testing.T) {
	now := time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC)
	if got := InvoiceKey("abc123", "Scan.PDF", now); got != "invoices/2025/01/09/abc123.pdf" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := InvoiceKey("abc123", "../../x", now); got != "invoices/2025/01/09/abc123" {
		t.Fatalf("unexpected key %s", got)
	}
	if err := ValidateKey(InvoiceKey("abc123", "a.png", now)); err != nil {
		t.Fatalf("generated key rejected: %v", err)
	}
}

func TestValidateKey(t *testing.T) {
	for _, bad := range []string{"", "/abs", "a/../b", "a//b", "./a", `a\b`, "a/"} {
		if err := ValidateKey(bad); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ValidateKey(%q) expected ErrInvalidKey, got %v", bad, err)
		}
	}
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewLocalStore(root)
	if err != nil {
		t.Fatal(err)
	}

	key := "invoices/2025/01/09/abc.pdf"
	if err := store.Put(ctx, key, strings.NewReader("hello"), 5, "application/pdf"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "invoices", "2025", "01", "09", "abc.pdf")); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	rc, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "hello" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound, got %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("deleting a missing blob should succeed, got %v", err)
	}
	if err := store.Put(ctx, "../escape", strings.NewReader("x"), 1, ""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
