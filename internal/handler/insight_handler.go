package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"insightsynth/internal/loader"
	"insightsynth/internal/model"
	"insightsynth/internal/report"
	"insightsynth/internal/synthesizer"
)

type SessionStore interface {
	Put(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
}

type ThemeSynthesizer interface {
	Synthesize(ctx context.Context, rows []model.FeedbackRow) (*model.SynthesisResult, error)
}

// Options carries the request-independent knobs the handlers need.
type Options struct {
	TextColumn      string
	PreviewRows     int
	MaxRowsCap      int
	IncludeExcerpts bool
}

type InsightHandler struct {
	store SessionStore
	synth ThemeSynthesizer
	opts  Options
}

func NewInsightHandler(store SessionStore, synth ThemeSynthesizer, opts Options) *InsightHandler {
	return &InsightHandler{store: store, synth: synth, opts: opts}
}

// Upload accepts a multipart CSV, loads it into feedback rows and opens a new
// session. The text column defaults from config and can be overridden with
// the text_column form field.
func (h *InsightHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		slog.Error("error opening upload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("error reading upload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return
	}

	textColumn := c.DefaultPostForm("text_column", h.opts.TextColumn)

	rows, err := loader.Load(data, textColumn)
	if err != nil {
		var malformed *loader.MalformedInputError
		if errors.As(err, &malformed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": malformed.Error()})
			return
		}
		slog.Error("error loading CSV", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	columns, err := loader.Columns(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := &model.Session{
		ID:         uuid.NewString(),
		TextColumn: textColumn,
		Columns:    columns,
		Rows:       rows,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.store.Put(c.Request.Context(), session); err != nil {
		slog.Error("error storing session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session store error"})
		return
	}

	slog.Info("upload accepted", "session_id", session.ID, "rows", len(rows))
	c.JSON(http.StatusCreated, toUploadResponse(session, h.opts.PreviewRows))
}

// Preview returns the session's first rows so a caller can confirm the right
// column was picked before spending a model call.
func (h *InsightHandler) Preview(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toUploadResponse(session, h.opts.PreviewRows))
}

// Analyze runs one synthesis over the session's rows and stores the result.
// A failed run leaves the session without a result; the caller re-triggers.
func (h *InsightHandler) Analyze(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	rows := session.Rows
	if maxRows := getQueryInt("max_rows", 0, c); maxRows > 0 {
		if maxRows > h.opts.MaxRowsCap {
			maxRows = h.opts.MaxRowsCap
		}
		if maxRows < len(rows) {
			rows = rows[:maxRows]
		}
	}

	result, err := h.synth.Synthesize(c.Request.Context(), rows)
	if err != nil {
		h.renderSynthesisError(c, session.ID, err)
		return
	}

	session.Result = result
	if err := h.store.Put(c.Request.Context(), session); err != nil {
		slog.Error("error storing result", "session_id", session.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session store error"})
		return
	}

	slog.Info("analysis complete", "session_id", session.ID, "themes", len(result.Themes))
	c.JSON(http.StatusOK, toAnalysisResponse(session.ID, result))
}

// GetReport returns the rendered Markdown alongside the themes.
func (h *InsightHandler) GetReport(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if session.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No analysis for this session yet"})
		return
	}

	c.JSON(http.StatusOK, ReportResponse{
		SessionID: session.ID,
		Markdown:  h.renderMarkdown(session),
		Themes:    toThemeResponses(session.Result.Themes),
	})
}

// DownloadReport serves the Markdown as a file attachment.
func (h *InsightHandler) DownloadReport(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if session.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No analysis for this session yet"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="insights_report.md"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(h.renderMarkdown(session)))
}

func (h *InsightHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *InsightHandler) renderMarkdown(session *model.Session) string {
	if h.opts.IncludeExcerpts {
		return report.RenderWithExcerpts(session.Result, session.Rows)
	}
	return report.Render(session.Result)
}

func (h *InsightHandler) session(c *gin.Context) (*model.Session, bool) {
	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
		return nil, false
	}
	return session, true
}

func (h *InsightHandler) renderSynthesisError(c *gin.Context, sessionID string, err error) {
	slog.Error("synthesis failed", "session_id", sessionID, "error", err)

	var inputErr *synthesizer.InputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Error()})
		return
	}

	var citationErr *synthesizer.CitationIntegrityError
	if errors.As(err, &citationErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": citationErr.Error()})
		return
	}

	var schemaErr *synthesizer.SchemaValidationError
	if errors.As(err, &schemaErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": schemaErr.Error()})
		return
	}

	var invocationErr *synthesizer.ModelInvocationError
	if errors.As(err, &invocationErr) {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": invocationErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
}
