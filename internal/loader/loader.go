package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"insightsynth/internal/model"
)

// MalformedInputError reports a CSV that cannot be loaded: unparseable bytes,
// a missing text column, no data rows, or duplicate explicit row ids.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.Reason
}

// idColumns are recognized as an explicit row identifier when present. Any
// other column besides the text column is passed through as metadata.
var idColumns = map[string]bool{"id": true, "row_id": true}

// Load parses an uploaded CSV into feedback rows. textColumn is matched
// case-insensitively against the header. Row ids come from an explicit
// id/row_id column when one exists, otherwise from the data row index.
func Load(data []byte, textColumn string) ([]model.FeedbackRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("cannot parse CSV header: %v", err)}
	}

	textIdx := -1
	idIdx := -1
	for i, col := range header {
		name := strings.TrimSpace(col)
		if strings.EqualFold(name, textColumn) {
			textIdx = i
		} else if idColumns[strings.ToLower(name)] && idIdx < 0 {
			idIdx = i
		}
	}
	if textIdx < 0 {
		return nil, &MalformedInputError{
			Reason: fmt.Sprintf("text column %q not found, columns are: %s", textColumn, strings.Join(header, ", ")),
		}
	}

	var rows []model.FeedbackRow
	seen := map[int]bool{}

	for i := 0; ; i++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Reason: fmt.Sprintf("cannot parse CSV row %d: %v", i+1, err)}
		}

		row := model.FeedbackRow{RowID: i}
		if idIdx >= 0 && idIdx < len(record) {
			id, err := strconv.Atoi(strings.TrimSpace(record[idIdx]))
			if err != nil {
				return nil, &MalformedInputError{Reason: fmt.Sprintf("row %d: id %q is not an integer", i+1, record[idIdx])}
			}
			row.RowID = id
		}
		if seen[row.RowID] {
			return nil, &MalformedInputError{Reason: fmt.Sprintf("duplicate row id %d", row.RowID)}
		}
		seen[row.RowID] = true

		if textIdx < len(record) {
			row.Text = record[textIdx]
		}

		for j, col := range header {
			if j == textIdx || j == idIdx || j >= len(record) {
				continue
			}
			if record[j] == "" {
				continue
			}
			if row.Metadata == nil {
				row.Metadata = map[string]string{}
			}
			row.Metadata[strings.TrimSpace(col)] = record[j]
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &MalformedInputError{Reason: "no data rows"}
	}

	return rows, nil
}

// Columns returns the header of an uploaded CSV so a caller can offer column
// selection before loading.
func Columns(data []byte) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("cannot parse CSV header: %v", err)}
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}
	return header, nil
}
