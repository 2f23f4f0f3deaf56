package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/model"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/lshigami/examlens/internal/storage"
	"gorm.io/gorm"
)

type fakeExtractor struct {
	raw         string
	err         error
	calls       int
	instruction string
	request     string
}

func (f *fakeExtractor) ExtractQuestions(ctx context.Context, pdf []byte, instruction, request string) (string, error) {
	f.calls++
	f.instruction, f.request = instruction, request
	return f.raw, f.err
}

type solveReply struct {
	raw string
	err error
}

type fakeSolver struct {
	replies []solveReply
	prompts []string
}

func (f *fakeSolver) Solve(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := len(f.prompts) - 1
	if i >= len(f.replies) {
		return "", errors.New("unexpected solve call")
	}
	return f.replies[i].raw, f.replies[i].err
}

type memArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemArchive() *memArchive {
	return &memArchive{objects: map[string][]byte{}}
}

func (a *memArchive) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.putErr != nil {
		return "", a.putErr
	}
	a.objects[key] = bytes.Clone(data)
	return key, nil
}

func (a *memArchive) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, ok := a.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (a *memArchive) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.objects, key)
	return nil
}

// failingQuestions makes the batch insert fail.
type failingQuestions struct {
	repository.QuestionRepository
}

func (failingQuestions) CreateBatch([]model.Question) error {
	return errors.New("disk full")
}

func pdfFile(data []byte) *UploadedFile {
	return &UploadedFile{
		Filename:    "exam.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", m, err)
	}
	return n
}

func requireAppErr(t *testing.T, err error, kind apperr.Kind, status int) *apperr.Error {
	t.Helper()
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *apperr.Error", err)
	}
	if ae.Kind != kind || ae.Status != status {
		t.Fatalf("err = %s/%d, want %s/%d (%v)", ae.Kind, ae.Status, kind, status, err)
	}
	return ae
}

func strp(s string) *string { return &s }
