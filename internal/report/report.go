// Package report renders a SynthesisResult as Markdown. Rendering is a pure
// function of its inputs: the same result always yields byte-identical output.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"insightsynth/internal/model"
)

const title = "# AI Insight Synthesizer Output"

// Render produces the Markdown report: one section per theme with summary,
// frequency/severity labels, recommended action and cited row ids.
func Render(result *model.SynthesisResult) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")

	if len(result.Themes) == 0 {
		sb.WriteString("\nNo themes were identified in the analyzed feedback.\n")
		return sb.String()
	}

	for _, t := range result.Themes {
		writeTheme(&sb, t)
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderWithExcerpts additionally quotes the cited feedback text under each
// theme. rows must be the row set the result was synthesized from.
func RenderWithExcerpts(result *model.SynthesisResult, rows []model.FeedbackRow) string {
	byID := make(map[int]model.FeedbackRow, len(rows))
	for _, r := range rows {
		byID[r.RowID] = r
	}

	var sb strings.Builder
	sb.WriteString(title + "\n")

	if len(result.Themes) == 0 {
		sb.WriteString("\nNo themes were identified in the analyzed feedback.\n")
		return sb.String()
	}

	for _, t := range result.Themes {
		writeTheme(&sb, t)
		for _, id := range t.CitedRowIDs {
			if row, ok := byID[id]; ok {
				sb.WriteString(fmt.Sprintf("  - [%d] %q\n", id, row.Text))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeTheme(sb *strings.Builder, t model.Theme) {
	sb.WriteString("\n## " + t.Name + "\n")
	sb.WriteString("- Summary: " + t.Summary + "\n")
	sb.WriteString("- Frequency: " + t.Frequency.String() + "\n")
	sb.WriteString("- Severity: " + t.Severity.String() + "\n")
	sb.WriteString("- Recommended action: " + t.RecommendedAction + "\n")
	sb.WriteString("- Cited rows: " + joinIDs(t.CitedRowIDs) + "\n")
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
