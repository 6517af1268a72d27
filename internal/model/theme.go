package model

import (
	"fmt"
	"strings"
	"time"
)

// Level is a Low/Medium/High estimate the model assigns to a theme's
// frequency and severity.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// ParseLevel maps a model-produced label onto a Level. Anything outside
// Low/Medium/High is rejected rather than coerced.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	}
	return "", fmt.Errorf("invalid level %q: must be Low, Medium or High", s)
}

func (l Level) String() string { return string(l) }

// Theme is a synthesized cluster of feedback. CitedRowIDs reference
// FeedbackRow.RowID values from the upload that the theme is grounded on.
type Theme struct {
	Name              string `json:"name"`
	Summary           string `json:"summary"`
	Frequency         Level  `json:"frequency"`
	Severity          Level  `json:"severity"`
	RecommendedAction string `json:"recommended_action"`
	CitedRowIDs       []int  `json:"cited_row_ids"`
}

// SynthesisResult is the outcome of one analysis run. Themes keep the order
// the model produced them in.
type SynthesisResult struct {
	Themes    []Theme   `json:"themes"`
	RowCount  int       `json:"row_count"`
	ModelUsed string    `json:"model_used"`
	CreatedAt time.Time `json:"created_at"`
}
