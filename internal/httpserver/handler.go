package httpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/scorecard-go/internal/logging"
	"github.com/ukaji3/scorecard-go/internal/metrics"
	"github.com/ukaji3/scorecard-go/pkg/scorecard"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/sample"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/writer"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RunStore records summaries; see internal/store.
type RunStore interface {
	SaveRun(ctx context.Context, sum models.Summary) (string, error)
}

// Handler serves the scorecard endpoints.
type Handler struct {
	defaults  scorecard.Options
	maxUpload int64
	store     RunStore
	logger    *zap.Logger
}

// NewHandler creates a handler. Query parameters override defaults per request.
// store may be nil.
func NewHandler(defaults scorecard.Options, maxUploadBytes int64, store RunStore, logger *zap.Logger) *Handler {
	return &Handler{
		defaults:  defaults,
		maxUpload: maxUploadBytes,
		store:     store,
		logger:    logger,
	}
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Template returns the sample workbook.
// GET /template
func (h *Handler) Template(c *gin.Context) {
	opts, err := h.options(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := writer.Template(&buf, opts.Today()); err != nil {
		h.logger.Error("Failed to build template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build template"})
		return
	}
	h.attachment(c, "program_scorecard_template.xlsx", xlsxContentType, buf.Bytes())
}

// Summarize returns the executive summary of the uploaded workbook, or of the
// sample data when no file is sent.
// POST /scorecard
func (h *Handler) Summarize(c *gin.Context) {
	_, sum, ok := h.analyze(c)
	if !ok {
		return
	}
	metrics.Observe(sum)

	if h.store != nil {
		runID, err := h.store.SaveRun(c.Request.Context(), sum)
		if err != nil {
			h.logger.Error("Failed to store run", zap.String("source", sum.SourceName), zap.Error(err))
		} else {
			c.Header("X-Run-ID", runID)
		}
	}
	c.JSON(http.StatusOK, sum)
}

// Export returns the filtered workbook.
// POST /export?summary_sheet=true
func (h *Handler) Export(c *gin.Context) {
	s, sum, ok := h.analyze(c)
	if !ok {
		return
	}

	var summary *models.Summary
	if withSummary, _ := strconv.ParseBool(c.Query("summary_sheet")); withSummary {
		summary = &sum
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, s.AllTables(), summary); err != nil {
		h.logger.Error("Failed to export workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export workbook"})
		return
	}
	name := fmt.Sprintf("program_scorecard_%s.xlsx", strings.ReplaceAll(sum.AsOf, "-", ""))
	h.attachment(c, name, xlsxContentType, buf.Bytes())
}

// ExportCSV returns the widest filtered table as CSV.
// POST /export/csv
func (h *Handler) ExportCSV(c *gin.Context) {
	s, sum, ok := h.analyze(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := writer.WriteCSV(&buf, s.AllTables()); err != nil {
		h.logger.Error("Failed to export csv", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export csv"})
		return
	}
	name := fmt.Sprintf("program_scorecard_%s.csv", strings.ReplaceAll(sum.AsOf, "-", ""))
	h.attachment(c, name, "text/csv; charset=utf-8", buf.Bytes())
}

// analyze loads the request's workbook and summarizes it. On failure the
// error response has been written and ok is false.
func (h *Handler) analyze(c *gin.Context) (models.Scorecard, models.Summary, bool) {
	opts, err := h.options(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Scorecard{}, models.Summary{}, false
	}

	data, err := h.load(c, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Scorecard{}, models.Summary{}, false
	}

	s, sum := scorecard.Analyze(data, opts)
	return s, sum, true
}

// load reads the multipart "file" field, falling back to the sample data.
func (h *Handler) load(c *gin.Context, opts scorecard.Options) (models.Scorecard, error) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		metrics.RecordLoad("sample", nil)
		return sample.Load(opts.Today()), nil
	}
	if err != nil {
		metrics.RecordLoad("invalid", nil)
		return models.Scorecard{}, fmt.Errorf("reading upload: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		metrics.RecordLoad("invalid", nil)
		return models.Scorecard{}, fmt.Errorf("reading upload: %w", err)
	}
	defer file.Close()

	s, warnings, err := scorecard.Load(file, header.Filename, opts)
	if err != nil {
		metrics.RecordLoad("invalid", nil)
		h.logger.Warn("Rejected upload", zap.String("source", header.Filename), zap.Error(err))
		return models.Scorecard{}, err
	}

	metrics.RecordLoad("ok", warnings)
	logging.SheetWarnings(h.logger, header.Filename, warnings)
	return s, nil
}

// options applies the query parameters to the handler defaults.
func (h *Handler) options(c *gin.Context) (scorecard.Options, error) {
	opts := h.defaults
	opts.Filter = scorecard.Filter{
		Workstreams:     append([]string(nil), h.defaults.Filter.Workstreams...),
		Owners:          append([]string(nil), h.defaults.Filter.Owners...),
		Health:          append([]string(nil), h.defaults.Filter.Health...),
		IncludeComplete: h.defaults.Filter.IncludeComplete,
	}

	if v := c.Query("as_of"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return opts, fmt.Errorf("invalid as_of %q: expected YYYY-MM-DD", v)
		}
		opts.AsOf = d
	}
	if v := c.Query("lookahead"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid lookahead %q", v)
		}
		opts.LookaheadDays = n
	}
	if v := c.Query("include_complete"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid include_complete %q", v)
		}
		opts.Filter.IncludeComplete = b
	}
	if v := listQuery(c, "workstream"); len(v) > 0 {
		opts.Filter.Workstreams = v
	}
	if v := listQuery(c, "owner"); len(v) > 0 {
		opts.Filter.Owners = v
	}
	if v := listQuery(c, "health"); len(v) > 0 {
		opts.Filter.Health = v
	}
	return opts, nil
}

// listQuery accepts both repeated and comma-separated values.
func listQuery(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *Handler) attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, contentType, data)
}
