package llm

import (
	"context"
	"fmt"
)

// ThemeInput is one (row_id, text) record sent to the model.
type ThemeInput struct {
	RowID int    `json:"row_id"`
	Text  string `json:"text"`
}

// RawTheme mirrors the JSON object the model is instructed to return for one
// theme. Frequency and severity stay strings here; callers validate them
// against the allowed labels.
type RawTheme struct {
	Theme             string `json:"theme" jsonschema_description:"Short theme name"`
	Summary           string `json:"summary" jsonschema_description:"1-2 sentence description of the theme"`
	Frequency         string `json:"frequency" jsonschema:"enum=Low,enum=Medium,enum=High"`
	Severity          string `json:"severity" jsonschema:"enum=Low,enum=Medium,enum=High"`
	RecommendedAction string `json:"recommended_action" jsonschema_description:"Concrete recommendation"`
	CitedRowIDs       []int  `json:"cited_row_ids" jsonschema_description:"Row IDs from the uploaded CSV that support this theme"`
}

// ExtractionResult is the parsed model output for one extraction call.
type ExtractionResult struct {
	Themes    []RawTheme
	ModelUsed string
}

// Client performs one synchronous theme-extraction call. Implementations do
// not retry and do not attempt to repair malformed responses.
type Client interface {
	ExtractThemes(ctx context.Context, inputs []ThemeInput) (*ExtractionResult, error)
}

// ModelConfig carries the per-run model parameters. The response schema is
// fixed by the package and not configurable.
type ModelConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int64
}

// DecodeError reports a model response that was not valid JSON or did not
// match the expected theme shape. Content preserves the raw response so the
// failure can be surfaced verbatim.
type DecodeError struct {
	Content string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response: %v, content: %s", e.Err, e.Content)
}

func (e *DecodeError) Unwrap() error { return e.Err }
