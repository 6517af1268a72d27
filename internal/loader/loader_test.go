package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	csvData := []byte("feedback,plan,region\nslow load times,pro,EU\ncrashes on export,free,US\nconfusing pricing page,pro,\n")

	rows, err := Load(csvData, "feedback")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 0, rows[0].RowID)
	assert.Equal(t, "slow load times", rows[0].Text)
	assert.Equal(t, map[string]string{"plan": "pro", "region": "EU"}, rows[0].Metadata)

	assert.Equal(t, 2, rows[2].RowID)
	// empty metadata values are skipped
	assert.Equal(t, map[string]string{"plan": "pro"}, rows[2].Metadata)
}

func TestLoadTextColumnCaseInsensitive(t *testing.T) {
	rows, err := Load([]byte("Feedback\nworks great\n"), "feedback")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "works great", rows[0].Text)
}

func TestLoadMissingTextColumn(t *testing.T) {
	_, err := Load([]byte("comment,plan\nslow,pro\n"), "feedback")

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Reason, `"feedback" not found`)
	assert.Contains(t, malformed.Reason, "comment, plan")
}

func TestLoadHeaderOnly(t *testing.T) {
	_, err := Load([]byte("feedback,plan\n"), "feedback")

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "no data rows", malformed.Reason)
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(nil, "feedback")

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
}

func TestLoadExplicitIDColumn(t *testing.T) {
	rows, err := Load([]byte("id,feedback\n10,slow\n20,crashes\n"), "feedback")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 10, rows[0].RowID)
	assert.Equal(t, 20, rows[1].RowID)
	assert.Nil(t, rows[0].Metadata)
}

func TestLoadDuplicateRowIDs(t *testing.T) {
	_, err := Load([]byte("id,feedback\n1,slow\n1,crashes\n"), "feedback")

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Reason, "duplicate row id 1")
}

func TestLoadNonIntegerID(t *testing.T) {
	_, err := Load([]byte("id,feedback\nabc,slow\n"), "feedback")

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
}

func TestColumns(t *testing.T) {
	cols, err := Columns([]byte("feedback, plan ,region\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"feedback", "plan", "region"}, cols)

	_, err = Columns(nil)
	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
}
