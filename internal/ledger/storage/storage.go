package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidKey   = errors.New("invalid blob key")
)

// BlobStore 附件存储
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// InvoiceKey builds the blob key for an invoice attachment:
// invoices/YYYY/MM/DD/<id><ext>.
func InvoiceKey(id, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(fileName)))
	if len(ext) > 16 {
		ext = ""
	}
	return fmt.Sprintf("invoices/%s/%s%s", now.Format("2006/01/02"), id, ext)
}

// ValidateKey rejects keys that are absolute or escape the store root.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrInvalidKey
	}
	if path.Clean(key) != key {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return ErrInvalidKey
		}
	}
	return nil
}

// SanitizeFilename strips directory components, parent references and control
// characters from a client-supplied file name. The result is display metadata
// only and never used as a storage path.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, "..", "")
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if len([]rune(name)) > 255 {
		name = string([]rune(name)[:255])
	}
	return name
}
