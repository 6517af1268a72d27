package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

const maxTextChars = 2000

type themeEnvelope struct {
	Themes []RawTheme `json:"themes"`
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// formatFeedbackPayload serializes the extraction task and the (row_id, text)
// records as the user message. Texts are capped so one long row cannot blow
// the context window.
func formatFeedbackPayload(inputs []ThemeInput) (string, error) {
	records := make([]ThemeInput, len(inputs))
	for i, in := range inputs {
		records[i] = ThemeInput{RowID: in.RowID, Text: truncate(in.Text, maxTextChars)}
	}

	payload := struct {
		Task     string       `json:"task"`
		Feedback []ThemeInput `json:"feedback"`
	}{
		Task:     "Cluster the feedback into 3-7 themes. For each theme: name, summary, frequency, severity, recommended_action, cited_row_ids.",
		Feedback: records,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

// decodeExtraction parses a model response into the theme envelope. Unknown
// fields are rejected rather than coerced.
func decodeExtraction(content string) (*themeEnvelope, error) {
	cleaned := cleanJSONResponse(content)

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.DisallowUnknownFields()

	var env themeEnvelope
	if err := dec.Decode(&env); err != nil {
		return nil, &DecodeError{Content: content, Err: err}
	}
	return &env, nil
}
