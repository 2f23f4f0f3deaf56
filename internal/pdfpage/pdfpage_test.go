package pdfpage

import (
	"errors"
	"testing"

	"github.com/lshigami/examlens/internal/testutil"
)

func TestCount(t *testing.T) {
	n, err := Count(testutil.MinimalPDF(t, 3))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	if _, err := Count([]byte("not a pdf")); err == nil {
		t.Error("Count should fail on garbage")
	}
}

func TestExtract(t *testing.T) {
	pdf := testutil.MinimalPDF(t, 2)

	page, err := Extract(pdf, 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	n, err := Count(page)
	if err != nil {
		t.Fatalf("Count(extracted): %v", err)
	}
	if n != 1 {
		t.Errorf("extracted page count = %d, want 1", n)
	}

	for _, p := range []int{0, 3, -1} {
		if _, err := Extract(pdf, p); !errors.Is(err, ErrPageOutOfRange) {
			t.Errorf("Extract(page %d): err = %v, want ErrPageOutOfRange", p, err)
		}
	}
}
