package service

import (
	"context"
	"testing"

	"github.com/lshigami/examlens/internal/apperr"
	"github.com/lshigami/examlens/internal/classifier"
	"github.com/lshigami/examlens/internal/dto"
	"github.com/lshigami/examlens/internal/extraction"
	"github.com/lshigami/examlens/internal/model"
	"github.com/lshigami/examlens/internal/pdfpage"
	"github.com/lshigami/examlens/internal/repository"
	"github.com/lshigami/examlens/internal/storage"
	"github.com/lshigami/examlens/internal/testutil"
	"gorm.io/gorm"
)

func newExamService(t *testing.T) (*gorm.DB, ExamService, *memArchive) {
	t.Helper()
	db := testutil.NewDB(t)
	archive := newMemArchive()
	return db, NewExamService(repository.NewUploadRepository(db), repository.NewQuestionRepository(db), archive), archive
}

func archiveUpload(t *testing.T, db *gorm.DB, archive *memArchive, upload *model.Upload, pdf []byte) {
	t.Helper()
	key := storage.PDFKey(upload.ID)
	if _, err := archive.Put(context.Background(), key, pdf, "application/pdf"); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err := db.Model(upload).Update("pdf_path", key).Error; err != nil {
		t.Fatalf("set pdf path: %v", err)
	}
	upload.PDFPath = &key
}

func TestQuestionView(t *testing.T) {
	page := 2
	tests := []struct {
		name      string
		q         model.Question
		hasPDF    bool
		kind      classifier.Kind
		panel     bool
		wantStem  string
		wantHTML  bool
		wantRef   string
	}{
		{
			name:     "no reference",
			q:        model.Question{Stem: "Who wrote the Federalist Papers?"},
			kind:     classifier.KindNone,
			wantStem: "Who wrote the Federalist Papers?",
		},
		{
			name:     "stem only reference",
			q:        model.Question{Stem: "Pick one.", Reference: strp("Which of the following is true?")},
			kind:     classifier.KindStem,
			wantStem: "Pick one.",
		},
		{
			name:     "page image without reference",
			q:        model.Question{Stem: "Which shift is shown?", PageNumber: &page},
			hasPDF:   true,
			kind:     classifier.KindNone,
			panel:    true,
			wantStem: "Which shift is shown?",
		},
		{
			name:     "page number but no archive",
			q:        model.Question{Stem: "Which shift is shown?", PageNumber: &page},
			kind:     classifier.KindNone,
			wantStem: "Which shift is shown?",
		},
		{
			name:     "pipe table",
			q:        model.Question{Stem: "What is the mean?", Reference: strp("x | y\n1 | 2\n3 | 4")},
			kind:     classifier.KindTextTable,
			panel:    true,
			wantStem: "What is the mean?",
			wantHTML: true,
		},
		{
			name: "legacy code with trailing question",
			q: model.Question{
				Stem:      extraction.GenericStem,
				Reference: strp("int x = 3;\nfor (int i = 0; i < x; i++) {\n  x--;\n}\nWhat is the value of x after the loop?"),
			},
			kind:     classifier.KindCode,
			panel:    true,
			wantStem: "What is the value of x after the loop?",
			wantRef:  "int x = 3;\nfor (int i = 0; i < x; i++) {\n  x--;\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.q.Position = 4
			v := questionView(&tt.q, tt.hasPDF)
			if v.QuestionNumber != 4 {
				t.Errorf("QuestionNumber = %d, want 4", v.QuestionNumber)
			}
			if v.Render.Kind != string(tt.kind) {
				t.Errorf("Kind = %q, want %q", v.Render.Kind, tt.kind)
			}
			if v.Render.HasLeftPanel != tt.panel {
				t.Errorf("HasLeftPanel = %v, want %v", v.Render.HasLeftPanel, tt.panel)
			}
			if v.Stem != tt.wantStem {
				t.Errorf("Stem = %q, want %q", v.Stem, tt.wantStem)
			}
			if (v.Render.ReferenceHTML != "") != tt.wantHTML {
				t.Errorf("ReferenceHTML = %q", v.Render.ReferenceHTML)
			}
			if tt.wantRef != "" && (v.Reference == nil || *v.Reference != tt.wantRef) {
				t.Errorf("Reference = %v, want %q", v.Reference, tt.wantRef)
			}
		})
	}
}

func TestGetExam(t *testing.T) {
	db, svc, _ := newExamService(t)
	upload, _ := testutil.SeedUpload(t, db, "owner@example.com", model.SubjectStatistics, "A", "", "C")

	detail, err := svc.Get(upload.ID, "owner@example.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.QuestionCount != 3 || len(detail.Questions) != 3 {
		t.Fatalf("detail = %d/%d questions", detail.QuestionCount, len(detail.Questions))
	}
	for i, q := range detail.Questions {
		if q.QuestionNumber != i+1 {
			t.Errorf("questions[%d].QuestionNumber = %d", i, q.QuestionNumber)
		}
	}
	if !detail.Questions[0].HasAnswerKey || detail.Questions[1].HasAnswerKey {
		t.Errorf("HasAnswerKey = %v/%v, want true/false", detail.Questions[0].HasAnswerKey, detail.Questions[1].HasAnswerKey)
	}
	if detail.HasPDF {
		t.Error("HasPDF without an archive")
	}

	_, err = svc.Get("missing", "owner@example.com")
	requireAppErr(t, err, apperr.KindConflict, 404)
}

func TestViewingUnpublishedExam(t *testing.T) {
	db, svc, archive := newExamService(t)
	upload, _ := testutil.SeedUpload(t, db, "owner@example.com", model.SubjectStatistics, "A")
	archiveUpload(t, db, archive, upload, testutil.MinimalPDF(t, 1))

	for _, viewer := range []string{"", "other@example.com"} {
		_, err := svc.Get(upload.ID, viewer)
		requireAppErr(t, err, apperr.KindConflict, 403)
		_, err = svc.Page(context.Background(), upload.ID, viewer, 1)
		requireAppErr(t, err, apperr.KindConflict, 403)
	}
	if _, err := svc.Get(upload.ID, " owner@example.com "); err != nil {
		t.Fatalf("owner Get: %v", err)
	}

	if _, err := svc.SetPublished(upload.ID, dto.PublishRequest{UserEmail: "owner@example.com", Published: true}); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}
	if _, err := svc.Get(upload.ID, ""); err != nil {
		t.Fatalf("anonymous Get of published exam: %v", err)
	}
	if _, err := svc.Page(context.Background(), upload.ID, "other@example.com", 1); err != nil {
		t.Fatalf("Page of published exam: %v", err)
	}
}

func TestListExams(t *testing.T) {
	db, svc, _ := newExamService(t)
	mine, _ := testutil.SeedUpload(t, db, "owner@example.com", model.SubjectStatistics, "A", "B")
	testutil.SeedUpload(t, db, "other@example.com", model.SubjectUSHistory, "C")
	if _, err := svc.SetPublished(mine.ID, dto.PublishRequest{UserEmail: "owner@example.com", Published: true}); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}

	owned, err := svc.ListByOwner("owner@example.com")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != mine.ID || owned[0].QuestionCount != 2 {
		t.Errorf("owned = %+v", owned)
	}

	published, err := svc.ListPublished()
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(published) != 1 || published[0].ID != mine.ID || !published[0].Published {
		t.Errorf("published = %+v", published)
	}

	_, err = svc.ListByOwner("  ")
	requireAppErr(t, err, apperr.KindValidation, 401)
}

func TestSetPublishedOwnership(t *testing.T) {
	db, svc, _ := newExamService(t)
	upload, _ := testutil.SeedUpload(t, db, "owner@example.com", model.SubjectStatistics, "A")

	_, err := svc.SetPublished(upload.ID, dto.PublishRequest{UserEmail: "other@example.com", Published: true})
	requireAppErr(t, err, apperr.KindConflict, 403)

	_, err = svc.SetPublished("missing", dto.PublishRequest{UserEmail: "owner@example.com", Published: true})
	requireAppErr(t, err, apperr.KindConflict, 404)

	got, err := svc.SetPublished(upload.ID, dto.PublishRequest{UserEmail: "owner@example.com", Published: true})
	if err != nil {
		t.Fatalf("SetPublished: %v", err)
	}
	if !got.Published || got.QuestionCount != 1 {
		t.Errorf("summary = %+v", got)
	}
}

func TestDeleteExamCascades(t *testing.T) {
	db, svc, archive := newExamService(t)
	upload, questions := testutil.SeedUpload(t, db, "owner@example.com", model.SubjectStatistics, "A", "B")
	archiveUpload(t, db, archive, upload, testutil.MinimalPDF(t, 1))

	attempt := &model.Attempt{UploadID: upload.ID, OwnerID: "taker@example.com", TotalQuestions: 2}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
	if err := db.Create(&model.AttemptAnswer{AttemptID: attempt.ID, QuestionID: questions[0].ID, SelectedAnswer: strp("A")}).Error; err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	err := svc.Delete(context.Background(), upload.ID, "other@example.com")
	requireAppErr(t, err, apperr.KindConflict, 403)

	if err := svc.Delete(context.Background(), upload.ID, "owner@example.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, m := range []any{&model.Upload{}, &model.Question{}, &model.Attempt{}, &model.AttemptAnswer{}} {
		if n := countRows(t, db, m); n != 0 {
			t.Errorf("%T rows = %d, want 0", m, n)
		}
	}
	if len(archive.objects) != 0 {
		t.Error("archived PDF not removed")
	}

	err = svc.Delete(context.Background(), upload.ID, "owner@example.com")
	requireAppErr(t, err, apperr.KindConflict, 404)
}

func TestPage(t *testing.T) {
	db, svc, archive := newExamService(t)
	withPDF, _ := testutil.SeedUpload(t, db, "owner@example.com", model.SubjectMacroeconomics, "A")
	archiveUpload(t, db, archive, withPDF, testutil.MinimalPDF(t, 2))
	withoutPDF, _ := testutil.SeedUpload(t, db, "owner@example.com", model.SubjectMacroeconomics, "A")

	out, err := svc.Page(context.Background(), withPDF.ID, "owner@example.com", 2)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if n, err := pdfpage.Count(out); err != nil || n != 1 {
		t.Errorf("page pdf has %d pages (err %v), want 1", n, err)
	}

	tests := []struct {
		name   string
		examID string
		page   int
		kind   apperr.Kind
		status int
	}{
		{"out of range", withPDF.ID, 3, apperr.KindValidation, 400},
		{"zero", withPDF.ID, 0, apperr.KindValidation, 400},
		{"no archive", withoutPDF.ID, 1, apperr.KindConflict, 404},
		{"missing exam", "missing", 1, apperr.KindConflict, 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Page(context.Background(), tt.examID, "owner@example.com", tt.page)
			requireAppErr(t, err, tt.kind, tt.status)
		})
	}

	// The archive object can vanish after the path was recorded.
	delete(archive.objects, storage.PDFKey(withPDF.ID))
	_, err = svc.Page(context.Background(), withPDF.ID, "owner@example.com", 1)
	requireAppErr(t, err, apperr.KindConflict, 404)
}
