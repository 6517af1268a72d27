package model

import "time"

// FeedbackRow is one unit of ingested customer feedback. RowID is stable for
// the lifetime of the upload and is what themes cite.
type FeedbackRow struct {
	RowID    int               `json:"row_id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Session holds the state of one upload: the loaded rows and, after an
// analysis run, the synthesis result. Nothing about a session is durable;
// stores expire it after a TTL.
type Session struct {
	ID         string           `json:"id"`
	TextColumn string           `json:"text_column"`
	Columns    []string         `json:"columns"`
	Rows       []FeedbackRow    `json:"rows"`
	Result     *SynthesisResult `json:"result,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
