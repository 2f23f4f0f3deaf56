package storage

import (
	"context"
	"errors"
	"testing"
)

func TestLocalArchive(t *testing.T) {
	ctx := context.Background()
	a := NewLocalArchive(t.TempDir())
	key := PDFKey("abc")

	if _, err := a.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Put: err = %v, want ErrNotFound", err)
	}

	loc, err := a.Put(ctx, key, []byte("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if loc != "uploads/abc.pdf" {
		t.Errorf("location = %q", loc)
	}

	data, err := a.Get(ctx, loc)
	if err != nil || string(data) != "%PDF-1.4" {
		t.Fatalf("Get = %q, %v", data, err)
	}

	if err := a.Delete(ctx, loc); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := a.Delete(ctx, loc); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
	if _, err := a.Get(ctx, loc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete: err = %v", err)
	}
}

func TestLocalArchiveRejectsTraversal(t *testing.T) {
	a := NewLocalArchive(t.TempDir())
	for _, key := range []string{"../escape.pdf", "uploads/../../x", ""} {
		if _, err := a.Put(context.Background(), key, []byte("x"), "application/pdf"); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
	}
}
