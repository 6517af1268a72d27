package synthesizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightsynth/internal/model"
	"insightsynth/pkg/llm"
)

type fakeClient struct {
	received []llm.ThemeInput
	themes   []llm.RawTheme
	err      error
}

func (f *fakeClient) ExtractThemes(ctx context.Context, inputs []llm.ThemeInput) (*llm.ExtractionResult, error) {
	f.received = inputs
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ExtractionResult{Themes: f.themes, ModelUsed: "fake-model"}, nil
}

func testRows() []model.FeedbackRow {
	return []model.FeedbackRow{
		{RowID: 1, Text: "slow load times"},
		{RowID: 2, Text: "crashes on export"},
		{RowID: 3, Text: "confusing pricing page"},
	}
}

func TestSynthesizeValidResult(t *testing.T) {
	client := &fakeClient{
		themes: []llm.RawTheme{
			{Theme: "Performance", Summary: "The app is slow.", Frequency: "High", Severity: "Medium", RecommendedAction: "Profile the startup path", CitedRowIDs: []int{1}},
			{Theme: "Stability", Summary: "Exports crash.", Frequency: "Medium", Severity: "High", RecommendedAction: "Fix the export pipeline", CitedRowIDs: []int{2, 3}},
		},
	}
	s := New(client, 15, time.Second)

	result, err := s.Synthesize(context.Background(), testRows())
	require.NoError(t, err)
	require.Len(t, result.Themes, 2)

	// model output order is preserved
	assert.Equal(t, "Performance", result.Themes[0].Name)
	assert.Equal(t, "Stability", result.Themes[1].Name)
	assert.Equal(t, model.LevelHigh, result.Themes[0].Frequency)
	assert.Equal(t, []int{2, 3}, result.Themes[1].CitedRowIDs)
	assert.Equal(t, 3, result.RowCount)
	assert.Equal(t, "fake-model", result.ModelUsed)
}

func TestSynthesizeDanglingCitation(t *testing.T) {
	client := &fakeClient{
		themes: []llm.RawTheme{
			{Theme: "Ghost", Summary: "Cites nothing real.", Frequency: "Low", Severity: "Low", RecommendedAction: "n/a", CitedRowIDs: []int{99}},
		},
	}
	s := New(client, 15, time.Second)

	_, err := s.Synthesize(context.Background(), testRows())

	var citationErr *CitationIntegrityError
	require.ErrorAs(t, err, &citationErr)
	assert.Equal(t, 99, citationErr.RowID)
	assert.Equal(t, "Ghost", citationErr.Theme)
}

func TestSynthesizeEmptyThemeListIsValid(t *testing.T) {
	s := New(&fakeClient{themes: []llm.RawTheme{}}, 15, time.Second)

	result, err := s.Synthesize(context.Background(), testRows())
	require.NoError(t, err)
	assert.Empty(t, result.Themes)
}

func TestSynthesizeDropsBlankRows(t *testing.T) {
	client := &fakeClient{}
	s := New(client, 15, time.Second)

	rows := []model.FeedbackRow{
		{RowID: 1, Text: "  "},
		{RowID: 2, Text: "crashes on export"},
		{RowID: 3, Text: ""},
	}
	_, err := s.Synthesize(context.Background(), rows)
	require.NoError(t, err)

	require.Len(t, client.received, 1)
	assert.Equal(t, 2, client.received[0].RowID)
}

func TestSynthesizeAllBlankInput(t *testing.T) {
	client := &fakeClient{}
	s := New(client, 15, time.Second)

	rows := []model.FeedbackRow{{RowID: 1, Text: " \t"}}
	_, err := s.Synthesize(context.Background(), rows)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Nil(t, client.received, "model must not be called on empty input")
}

func TestSynthesizeMaxRowsCap(t *testing.T) {
	client := &fakeClient{}
	s := New(client, 2, time.Second)

	_, err := s.Synthesize(context.Background(), testRows())
	require.NoError(t, err)
	assert.Len(t, client.received, 2)
}

func TestSynthesizeTimeout(t *testing.T) {
	client := &fakeClient{err: context.DeadlineExceeded}
	s := New(client, 15, time.Millisecond)

	_, err := s.Synthesize(context.Background(), testRows())

	var invocationErr *ModelInvocationError
	require.ErrorAs(t, err, &invocationErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSynthesizeProviderError(t *testing.T) {
	client := &fakeClient{err: errors.New("openai API error: 500")}
	s := New(client, 15, time.Second)

	_, err := s.Synthesize(context.Background(), testRows())

	var invocationErr *ModelInvocationError
	require.ErrorAs(t, err, &invocationErr)
}

func TestSynthesizeDecodeErrorBecomesSchemaValidation(t *testing.T) {
	client := &fakeClient{err: &llm.DecodeError{Content: "not json", Err: errors.New("invalid character")}}
	s := New(client, 15, time.Second)

	_, err := s.Synthesize(context.Background(), testRows())

	var schemaErr *SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "not json")
}

func TestSynthesizeInvalidLevel(t *testing.T) {
	client := &fakeClient{
		themes: []llm.RawTheme{
			{Theme: "Odd", Summary: "Bad enum.", Frequency: "Critical", Severity: "Low", RecommendedAction: "n/a", CitedRowIDs: []int{1}},
		},
	}
	s := New(client, 15, time.Second)

	_, err := s.Synthesize(context.Background(), testRows())

	var schemaErr *SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
}
