// Package pdfpage reads page counts and cuts single pages out of a PDF.
package pdfpage

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var ErrPageOutOfRange = errors.New("page out of range")

// Count returns the number of pages in pdf.
func Count(pdf []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx.PageCount, nil
}

// Extract returns a one-page PDF holding the given 1-based page.
func Extract(pdf []byte, page int) ([]byte, error) {
	n, err := Count(pdf)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > n {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, n)
	}

	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(pdf), &out, []string{strconv.Itoa(page)}, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("pdfcpu trim: %w", err)
	}
	return out.Bytes(), nil
}
