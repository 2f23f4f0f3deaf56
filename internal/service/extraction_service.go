package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/extraction"
	"github.com/lshigami/examlens/internal/llm"
	"github.com/lshigami/examlens/internal/metrics"
	"github.com/lshigami/examlens/internal/model"
	"github.com/lshigami/examlens/internal/pdfpage"
	"github.com/lshigami/examlens/internal/prompt"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/lshigami/examlens/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	// MaxPDFBytes is the upload size ceiling.
	MaxPDFBytes = 50 << 20

	maxRawResponseBytes = 64 << 10
	extractionTimeout   = 5 * time.Minute
	archiveTimeout      = 2 * time.Minute
)

// UploadedFile is the PDF part of an extraction request.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ExtractInput carries the raw form values; they are validated by Extract.
type ExtractInput struct {
	File          *UploadedFile
	Subject       string
	QuestionCount string
	UserEmail     string
}

type ExtractionService interface {
	Extract(ctx context.Context, in ExtractInput) (string, error)
	// Wait blocks until background archive writes have finished.
	Wait()
}

type extractionService struct {
	uploadRepo   repository.UploadRepository
	questionRepo repository.QuestionRepository
	extractor    llm.Extractor
	archive      storage.Archive
	wg           sync.WaitGroup
}

func NewExtractionService(
	uploadRepo repository.UploadRepository,
	questionRepo repository.QuestionRepository,
	extractor llm.Extractor,
	archive storage.Archive,
) ExtractionService {
	return &extractionService{
		uploadRepo:   uploadRepo,
		questionRepo: questionRepo,
		extractor:    extractor,
		archive:      archive,
	}
}

type validatedInput struct {
	file    *UploadedFile
	subject model.Subject
	count   int
	owner   string
}

func validateExtractInput(in ExtractInput) (*validatedInput, error) {
	if in.File == nil || in.File.Open == nil {
		return nil, apperr.Validation("Please attach a PDF file.")
	}
	mediaType, _, err := mime.ParseMediaType(in.File.ContentType)
	if err != nil || mediaType != "application/pdf" {
		return nil, apperr.Validation("Only PDF files are supported.")
	}
	if in.File.Size > MaxPDFBytes {
		return nil, apperr.Validation("The PDF is larger than 50 MB.")
	}

	raw := strings.TrimSpace(in.Subject)
	if raw == "" {
		return nil, apperr.Validation("Please choose a subject.")
	}
	subject, ok := model.ParseSubject(raw)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("Unknown subject %q.", raw))
	}

	count, err := strconv.Atoi(strings.TrimSpace(in.QuestionCount))
	if err != nil || count <= 0 {
		return nil, apperr.Validation("Question count must be a positive whole number.")
	}

	owner := strings.TrimSpace(in.UserEmail)
	if owner == "" {
		return nil, apperr.Unauthenticated("Please sign in before uploading an exam.")
	}
	return &validatedInput{file: in.File, subject: subject, count: count, owner: owner}, nil
}

func readPDF(f *UploadedFile) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, apperr.Validation("The uploaded file could not be read.")
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxPDFBytes+1))
	if err != nil {
		return nil, apperr.Validation("The uploaded file could not be read.")
	}
	if len(data) > MaxPDFBytes {
		return nil, apperr.Validation("The PDF is larger than 50 MB.")
	}
	if len(data) == 0 {
		return nil, apperr.Validation("The uploaded file is empty.")
	}
	return data, nil
}

// Extract validates the request, asks the model for the questions once,
// stores the upload with its questions and starts archiving the PDF. It
// returns the new upload ID.
func (s *extractionService) Extract(ctx context.Context, in ExtractInput) (id string, err error) {
	defer func() {
		outcome := "success"
		var ae *apperr.Error
		if errors.As(err, &ae) {
			outcome = ae.Kind.String()
		} else if err != nil {
			outcome = "error"
		}
		metrics.ExtractionOutcomes.WithLabelValues(outcome).Inc()
	}()

	v, err := validateExtractInput(in)
	if err != nil {
		return "", err
	}
	data, err := readPDF(v.file)
	if err != nil {
		return "", err
	}
	log.Debug().Str("subject", string(v.subject)).Int("count", v.count).Int("bytes", len(data)).Msg("Extraction validated")

	pages, err := pdfpage.Count(data)
	if err != nil {
		log.Warn().Err(err).Str("file", v.file.Filename).Msg("Could not read PDF page count; page numbers will not be checked")
	}

	if s.extractor == nil {
		return "", apperr.NotConfigured("AI service is not configured.")
	}

	// The model call runs to completion even if the client goes away.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), extractionTimeout)
	defer cancel()

	log.Debug().Str("subject", string(v.subject)).Msg("Extraction prompting")
	start := time.Now()
	raw, err := s.extractor.ExtractQuestions(callCtx, data, prompt.ExtractionInstruction(v.subject), prompt.ExtractionRequest(v.count))
	metrics.ObserveModelCall("extraction", start, err)
	if err != nil {
		log.Error().Err(err).Str("subject", string(v.subject)).Msg("Extraction model call failed")
		if errors.Is(err, llm.ErrEmptyResponse) {
			return "", apperr.Upstream("The AI model returned nothing. Please try again.", err)
		}
		return "", apperr.Upstream("The AI service could not read this PDF. Please try again.", err)
	}

	log.Debug().Int("raw_bytes", len(raw)).Msg("Extraction parsing")
	questions, err := extraction.Parse(raw, v.count, v.subject)
	if err != nil {
		log.Error().Err(err).Msg("Extraction output could not be parsed")
		return "", apperr.Parse("The AI model returned an unreadable response. Please try again.", err)
	}
	if len(questions) == 0 {
		return "", apperr.NoResult("No questions found in this PDF.")
	}
	if pages > 0 {
		dropOutOfRangePages(questions, pages)
	}

	log.Debug().Int("questions", len(questions)).Msg("Extraction persisting")
	upload := &model.Upload{
		OwnerID:     v.owner,
		Filename:    filepath.Base(v.file.Filename),
		Subject:     v.subject,
		RawResponse: truncateUTF8(raw, maxRawResponseBytes),
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		log.Error().Err(err).Msg("Failed to create upload")
		return "", apperr.Persistence("Could not save the exam. Please try again.", err)
	}
	for i := range questions {
		questions[i].UploadID = upload.ID
	}
	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Error().Err(err).Str("upload_id", upload.ID).Msg("Failed to insert questions, removing upload")
		if delErr := s.uploadRepo.Delete(upload.ID); delErr != nil {
			log.Error().Err(delErr).Str("upload_id", upload.ID).Msg("Compensating upload delete failed")
		}
		return "", apperr.Persistence("Could not save the exam questions. Please try again.", err)
	}

	s.wg.Add(1)
	go s.archivePDF(upload.ID, data)

	log.Info().Str("upload_id", upload.ID).Int("questions", len(questions)).Str("subject", string(v.subject)).Msg("Extraction done")
	return upload.ID, nil
}

// archivePDF stores the original bytes for page rendering. Failures are
// logged and counted but never reach the caller.
func (s *extractionService) archivePDF(uploadID string, data []byte) {
	defer s.wg.Done()
	if s.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	loc, err := s.archive.Put(ctx, storage.PDFKey(uploadID), data, "application/pdf")
	if err != nil {
		metrics.ArchiveFailures.Inc()
		log.Warn().Err(err).Str("upload_id", uploadID).Msg("Archiving PDF failed; page images will be unavailable")
		return
	}
	if err := s.uploadRepo.SetPDFPath(uploadID, loc); err != nil {
		metrics.ArchiveFailures.Inc()
		log.Warn().Err(err).Str("upload_id", uploadID).Msg("Could not record archived PDF path")
		return
	}
	log.Debug().Str("upload_id", uploadID).Str("path", loc).Msg("PDF archived")
}

func (s *extractionService) Wait() {
	s.wg.Wait()
}

func dropOutOfRangePages(questions []model.Question, pages int) {
	for i := range questions {
		if p := questions[i].PageNumber; p != nil && *p > pages {
			log.Warn().Int("position", questions[i].Position).Int("page", *p).Int("pages", pages).Msg("Dropping page number beyond the end of the PDF")
			questions[i].PageNumber = nil
		}
	}
}

func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
