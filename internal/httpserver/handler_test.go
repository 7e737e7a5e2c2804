package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/scorecard-go/pkg/scorecard"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/writer"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type fakeStore struct {
	runs []models.Summary
	err  error
}

func (s *fakeStore) SaveRun(_ context.Context, sum models.Summary) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.runs = append(s.runs, sum)
	return "run-1", nil
}

func newTestRouter(store RunStore) *Router {
	gin.SetMode(gin.TestMode)
	opts := scorecard.DefaultOptions()
	opts.AsOf = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	h := NewHandler(opts, 1<<20, store, zap.NewNop())
	return NewRouter(h, zap.NewNop())
}

func serve(r *Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.Engine.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, target string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "upload.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	w := serve(newTestRouter(nil), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("GET /healthz = %d %s", w.Code, w.Body.String())
	}
}

func TestSummarizeSample(t *testing.T) {
	store := &fakeStore{}
	w := serve(newTestRouter(store), httptest.NewRequest(http.MethodPost, "/scorecard?workstream=Data,CRM", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /scorecard = %d %s", w.Code, w.Body.String())
	}

	var sum models.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sum.ActiveInitiatives != 2 || sum.AsOf != "2026-10-15" {
		t.Errorf("summary = %d initiatives as of %s", sum.ActiveInitiatives, sum.AsOf)
	}
	if len(store.runs) != 1 || w.Header().Get("X-Run-ID") != "run-1" {
		t.Errorf("run was not stored: %d runs, header %q", len(store.runs), w.Header().Get("X-Run-ID"))
	}
}

func TestSummarizeStoreFailure(t *testing.T) {
	w := serve(newTestRouter(&fakeStore{err: errors.New("db down")}), httptest.NewRequest(http.MethodPost, "/scorecard", nil))
	if w.Code != http.StatusOK || w.Header().Get("X-Run-ID") != "" {
		t.Errorf("a store failure should not fail the request: %d", w.Code)
	}
}

func TestSummarizeUpload(t *testing.T) {
	var tmpl bytes.Buffer
	if err := writer.Template(&tmpl, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Template failed: %v", err)
	}

	w := serve(newTestRouter(nil), uploadRequest(t, "/scorecard?lookahead=20", tmpl.Bytes()))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /scorecard = %d %s", w.Code, w.Body.String())
	}
	var sum models.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sum.SourceName != "upload.xlsx" || sum.LookaheadDays != 20 || sum.UpcomingCount != 2 {
		t.Errorf("summary = source %q, lookahead %d, upcoming %d", sum.SourceName, sum.LookaheadDays, sum.UpcomingCount)
	}
}

func TestBadRequests(t *testing.T) {
	r := newTestRouter(nil)
	tests := []struct {
		name string
		req  *http.Request
	}{
		{"bad as_of", httptest.NewRequest(http.MethodPost, "/scorecard?as_of=15/10/2026", nil)},
		{"bad lookahead", httptest.NewRequest(http.MethodPost, "/scorecard?lookahead=soon", nil)},
		{"bad include_complete", httptest.NewRequest(http.MethodPost, "/export?include_complete=maybe", nil)},
		{"not a workbook", uploadRequest(t, "/scorecard", []byte("hello"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestExport(t *testing.T) {
	w := serve(newTestRouter(nil), httptest.NewRequest(http.MethodPost, "/export?summary_sheet=true", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /export = %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "program_scorecard_20261015.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 4 || got[0] != writer.SummarySheet {
		t.Errorf("sheets = %v", got)
	}
}

func TestExportCSV(t *testing.T) {
	w := serve(newTestRouter(nil), httptest.NewRequest(http.MethodPost, "/export/csv?owner=R.%20Patel", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /export/csv = %d %s", w.Code, w.Body.String())
	}
	body := strings.TrimPrefix(w.Body.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "Initiative,Workstream") {
		t.Errorf("csv = %q", body)
	}
}

func TestTemplateAndMetrics(t *testing.T) {
	r := newTestRouter(nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/template", nil))
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != xlsxContentType {
		t.Errorf("GET /template = %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "scorecard_http_request_duration_seconds") {
		t.Errorf("GET /metrics = %d", w.Code)
	}
}

// uploadWithNotes returns the template workbook plus an unrecognised Notes sheet.
func uploadWithNotes(t *testing.T) []byte {
	t.Helper()
	var tmpl bytes.Buffer
	if err := writer.Template(&tmpl, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	f, err := excelize.OpenReader(&tmpl)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()
	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetSheetRow("Notes", "A1", &[]interface{}{"Issue", "Status"})
	f.SetSheetRow("Notes", "A2", &[]interface{}{"Licence renewal", "Red"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestExportKeepsPassthroughSheets(t *testing.T) {
	w := serve(newTestRouter(nil), uploadRequest(t, "/export", uploadWithNotes(t)))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /export = %d %s", w.Code, w.Body.String())
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()

	got := f.GetSheetList()
	if len(got) != 4 || got[3] != "Notes" {
		t.Fatalf("sheets = %v", got)
	}
	rows, err := f.GetRows("Notes")
	if err != nil || len(rows) != 2 || rows[1][0] != "Licence renewal" {
		t.Errorf("Notes rows = %v (%v)", rows, err)
	}
}

func TestSummarizeCountsPassthroughStatus(t *testing.T) {
	w := serve(newTestRouter(nil), uploadRequest(t, "/scorecard", uploadWithNotes(t)))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /scorecard = %d %s", w.Code, w.Body.String())
	}
	var sum models.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got := sum.Status.ByTable["Notes"][models.StatusAtRisk]; got != 1 {
		t.Errorf("Notes tally = %v", sum.Status.ByTable["Notes"])
	}
}
