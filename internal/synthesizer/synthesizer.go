package synthesizer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"insightsynth/internal/model"
	"insightsynth/pkg/llm"
)

// Synthesizer turns loaded feedback rows into a validated SynthesisResult via
// one synchronous model call. Each run is stateless and independent of prior
// runs.
type Synthesizer struct {
	client  llm.Client
	maxRows int
	timeout time.Duration
}

func New(client llm.Client, maxRows int, timeout time.Duration) *Synthesizer {
	return &Synthesizer{
		client:  client,
		maxRows: maxRows,
		timeout: timeout,
	}
}

// Synthesize drops blank rows, prompts the model with (row_id, text) records
// and validates the response. Every cited row id is checked against the rows
// actually sent; a dangling citation fails the run.
func (s *Synthesizer) Synthesize(ctx context.Context, rows []model.FeedbackRow) (*model.SynthesisResult, error) {
	inputs := make([]llm.ThemeInput, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Text) == "" {
			continue
		}
		inputs = append(inputs, llm.ThemeInput{RowID: row.RowID, Text: row.Text})
		if s.maxRows > 0 && len(inputs) == s.maxRows {
			break
		}
	}

	if len(inputs) == 0 {
		return nil, &InputError{Reason: "no rows with non-empty feedback text"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slog.Info("invoking model", "rows", len(inputs))

	extraction, err := s.client.ExtractThemes(ctx, inputs)
	if err != nil {
		var decodeErr *llm.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, &SchemaValidationError{Err: decodeErr}
		}
		return nil, &ModelInvocationError{Err: err}
	}

	known := make(map[int]bool, len(inputs))
	for _, in := range inputs {
		known[in.RowID] = true
	}

	themes := make([]model.Theme, 0, len(extraction.Themes))
	for _, raw := range extraction.Themes {
		frequency, err := model.ParseLevel(raw.Frequency)
		if err != nil {
			return nil, &SchemaValidationError{Err: err}
		}
		severity, err := model.ParseLevel(raw.Severity)
		if err != nil {
			return nil, &SchemaValidationError{Err: err}
		}

		for _, id := range raw.CitedRowIDs {
			if !known[id] {
				return nil, &CitationIntegrityError{Theme: raw.Theme, RowID: id}
			}
		}

		themes = append(themes, model.Theme{
			Name:              raw.Theme,
			Summary:           raw.Summary,
			Frequency:         frequency,
			Severity:          severity,
			RecommendedAction: raw.RecommendedAction,
			CitedRowIDs:       raw.CitedRowIDs,
		})
	}

	return &model.SynthesisResult{
		Themes:    themes,
		RowCount:  len(inputs),
		ModelUsed: extraction.ModelUsed,
		CreatedAt: time.Now().UTC(),
	}, nil
}
