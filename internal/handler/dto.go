package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"insightsynth/internal/model"
)

type RowResponse struct {
	RowID    int               `json:"row_id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type UploadResponse struct {
	SessionID  string        `json:"session_id"`
	TextColumn string        `json:"text_column"`
	Columns    []string      `json:"columns"`
	RowCount   int           `json:"row_count"`
	Preview    []RowResponse `json:"preview"`
	CreatedAt  string        `json:"created_at"`
}

type ThemeResponse struct {
	Name              string `json:"name"`
	Summary           string `json:"summary"`
	Frequency         string `json:"frequency"`
	Severity          string `json:"severity"`
	RecommendedAction string `json:"recommended_action"`
	CitedRowIDs       []int  `json:"cited_row_ids"`
}

type AnalysisResponse struct {
	SessionID string          `json:"session_id"`
	ModelUsed string          `json:"model_used"`
	RowCount  int             `json:"row_count"`
	Themes    []ThemeResponse `json:"themes"`
}

type ReportResponse struct {
	SessionID string          `json:"session_id"`
	Markdown  string          `json:"markdown"`
	Themes    []ThemeResponse `json:"themes"`
}

func toUploadResponse(s *model.Session, previewRows int) UploadResponse {
	preview := s.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	rows := make([]RowResponse, len(preview))
	for i, r := range preview {
		rows[i] = RowResponse{RowID: r.RowID, Text: r.Text, Metadata: r.Metadata}
	}

	return UploadResponse{
		SessionID:  s.ID,
		TextColumn: s.TextColumn,
		Columns:    s.Columns,
		RowCount:   len(s.Rows),
		Preview:    rows,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}

func toThemeResponses(themes []model.Theme) []ThemeResponse {
	res := make([]ThemeResponse, len(themes))
	for i, t := range themes {
		res[i] = ThemeResponse{
			Name:              t.Name,
			Summary:           t.Summary,
			Frequency:         t.Frequency.String(),
			Severity:          t.Severity.String(),
			RecommendedAction: t.RecommendedAction,
			CitedRowIDs:       t.CitedRowIDs,
		}
	}
	return res
}

func toAnalysisResponse(sessionID string, result *model.SynthesisResult) AnalysisResponse {
	return AnalysisResponse{
		SessionID: sessionID,
		ModelUsed: result.ModelUsed,
		RowCount:  result.RowCount,
		Themes:    toThemeResponses(result.Themes),
	}
}

func getQueryInt(key string, fallback int, c *gin.Context) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
