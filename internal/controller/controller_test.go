package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/lshigami/examlens/internal/service"
	"github.com/lshigami/examlens/internal/storage"
	"github.com/lshigami/examlens/internal/testutil"
)

type stubExtractor struct{ raw string }

func (s stubExtractor) ExtractQuestions(context.Context, []byte, string, string) (string, error) {
	return s.raw, nil
}

type stubSolver struct{ raw string }

func (s stubSolver) Solve(context.Context, string) (string, error) {
	return s.raw, nil
}

type mapArchive struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (a *mapArchive) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[key] = data
	return key, nil
}

func (a *mapArchive) Get(_ context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return d, nil
}

func (a *mapArchive) Delete(_ context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.data, key)
	return nil
}

type testServer struct {
	router     *gin.Engine
	extraction service.ExtractionService
}

func newTestServer(t *testing.T, extracted, solved string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	archive := &mapArchive{data: map[string][]byte{}}

	uploads := repository.NewUploadRepository(db)
	questions := repository.NewQuestionRepository(db)
	attempts := repository.NewAttemptRepository(db)
	answers := repository.NewAttemptAnswerRepository(db)

	extraction := service.NewExtractionService(uploads, questions, stubExtractor{raw: extracted}, archive)
	ctrl := NewController(
		NewExamController(extraction, service.NewExamService(uploads, questions, archive)),
		NewAttemptController(
			service.NewAttemptService(uploads, questions, attempts, answers),
			service.NewResolutionService(db, uploads, questions, attempts, answers, stubSolver{raw: solved}),
		),
		NewHealthController(db),
		100,
	)
	r := gin.New()
	ctrl.RegisterRoutes(r)
	return &testServer{router: r, extraction: extraction}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, pdf []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if pdf != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="exam.pdf"`)
		h.Set("Content-Type", "application/pdf")
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(pdf)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exams", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.extraction.Wait()
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body %s", w.Code, want, w.Body.String())
	}
}

var uploadFields = map[string]string{
	"subject":       "AP_STATISTICS",
	"questionCount": "2",
	"userEmail":     "owner@example.com",
}

const twoQuestions = `[
	{"question": "Which value is the median?", "options": ["1", "2", "3"], "correct": "B", "page_number": 1},
	{"question": "Which plot is skewed?", "content": "x | y\n1 | 2\n3 | 4", "options": ["A plot", "B plot"]}
]`

func TestExamAndAttemptFlow(t *testing.T) {
	s := newTestServer(t, twoQuestions, `["A"]`)

	w := s.upload(t, testutil.MinimalPDF(t, 2), uploadFields)
	expectStatus(t, w, http.StatusCreated)
	examID := decode[dto.ExtractResponse](t, w).ExamID

	w = s.do(t, http.MethodGet, "/api/v1/exams/"+examID, nil)
	expectStatus(t, w, http.StatusForbidden)
	w = s.do(t, http.MethodGet, "/api/v1/exams/"+examID+"?userEmail=owner@example.com", nil)
	expectStatus(t, w, http.StatusOK)
	exam := decode[dto.ExamDetail](t, w)
	if len(exam.Questions) != 2 || !exam.HasPDF {
		t.Fatalf("exam = %+v", exam)
	}
	if exam.Questions[1].Render.Kind != "text_table" || !strings.Contains(exam.Questions[1].Render.ReferenceHTML, "<table>") {
		t.Errorf("render = %+v", exam.Questions[1].Render)
	}
	if !exam.Questions[0].Render.HasLeftPanel {
		t.Error("question with a page number and an archived PDF should get a panel")
	}

	w = s.do(t, http.MethodGet, "/api/v1/exams/"+examID+"/pages/1?userEmail=owner@example.com", nil)
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	w = s.do(t, http.MethodGet, "/api/v1/exams/"+examID+"/pages/5?userEmail=owner@example.com", nil)
	expectStatus(t, w, http.StatusBadRequest)

	w = s.do(t, http.MethodPost, "/api/v1/attempts", dto.StartAttemptRequest{ExamID: examID, UserEmail: "owner@example.com"})
	expectStatus(t, w, http.StatusCreated)
	attempt := decode[dto.AttemptDetail](t, w)

	second := exam.Questions[1].ID
	w = s.do(t, http.MethodPost, "/api/v1/attempts/answer", map[string]any{
		"attemptId": attempt.ID, "questionId": second, "userAnswer": "a",
	})
	expectStatus(t, w, http.StatusOK)
	if got := decode[dto.AnswerView](t, w); got.SelectedAnswer == nil || *got.SelectedAnswer != "A" {
		t.Errorf("answer = %+v", got)
	}

	w = s.do(t, http.MethodPost, "/api/v1/attempts/complete", dto.CompleteAttemptRequest{AttemptID: attempt.ID})
	expectStatus(t, w, http.StatusOK)
	result := decode[dto.CompletionResponse](t, w)
	if !result.OK || result.Total != 2 || result.CorrectCount != 1 || result.UnansweredCount != 1 || result.Percentage != 50 {
		t.Errorf("result = %+v", result)
	}

	w = s.do(t, http.MethodPost, "/api/v1/attempts/complete", dto.CompleteAttemptRequest{AttemptID: attempt.ID})
	expectStatus(t, w, http.StatusBadRequest)

	w = s.do(t, http.MethodGet, "/api/v1/attempts/"+attempt.ID, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[dto.AttemptDetail](t, w); got.CompletedAt == nil || got.CorrectCount != 1 {
		t.Errorf("attempt = %+v", got)
	}

	w = s.do(t, http.MethodDelete, "/api/v1/exams/"+examID+"?userEmail=other@example.com", nil)
	expectStatus(t, w, http.StatusForbidden)
	w = s.do(t, http.MethodDelete, "/api/v1/exams/"+examID+"?userEmail=owner@example.com", nil)
	expectStatus(t, w, http.StatusNoContent)
	w = s.do(t, http.MethodGet, "/api/v1/exams/"+examID, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestUploadErrors(t *testing.T) {
	tests := []struct {
		name      string
		extracted string
		pdf       bool
		fields    map[string]string
		status    int
		message   string
	}{
		{"no questions", "[]", true, uploadFields, http.StatusUnprocessableEntity, "No questions found in this PDF."},
		{"missing file", twoQuestions, false, uploadFields, http.StatusBadRequest, "Please attach a PDF file."},
		{"bad subject", twoQuestions, true, map[string]string{"subject": "AP_BIOLOGY", "questionCount": "2", "userEmail": "a@b.c"}, http.StatusBadRequest, ""},
		{"missing email", twoQuestions, true, map[string]string{"subject": "AP_STATISTICS", "questionCount": "2"}, http.StatusUnauthorized, ""},
		{"garbage output", "I could not find any questions", true, uploadFields, http.StatusBadGateway, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.extracted, "")
			var pdf []byte
			if tt.pdf {
				pdf = testutil.MinimalPDF(t, 1)
			}
			w := s.upload(t, pdf, tt.fields)
			expectStatus(t, w, tt.status)
			body := decode[dto.ErrorResponse](t, w)
			if body.Error == "" || (tt.message != "" && body.Error != tt.message) {
				t.Errorf("error = %q, want %q", body.Error, tt.message)
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, twoQuestions, "")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"start without body", http.MethodPost, "/api/v1/attempts", nil, http.StatusBadRequest},
		{"answer without ids", http.MethodPost, "/api/v1/attempts/answer", map[string]any{"userAnswer": "A"}, http.StatusBadRequest},
		{"complete unknown attempt", http.MethodPost, "/api/v1/attempts/complete", dto.CompleteAttemptRequest{AttemptID: "nope"}, http.StatusNotFound},
		{"unknown attempt", http.MethodGet, "/api/v1/attempts/nope", nil, http.StatusNotFound},
		{"page not a number", http.MethodGet, "/api/v1/exams/x/pages/one", nil, http.StatusBadRequest},
		{"publish unknown exam", http.MethodPatch, "/api/v1/exams/nope/publish", dto.PublishRequest{UserEmail: "a@b.c", Published: true}, http.StatusNotFound},
		{"list without email", http.MethodGet, "/api/v1/exams", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			expectStatus(t, w, tt.status)
		})
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, "", "")
	w := s.do(t, http.MethodGet, "/healthz", nil)
	expectStatus(t, w, http.StatusOK)
}
