package excel

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"incosedss/domain/survey"
	"incosedss/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWorkbook_FirstSheet(t *testing.T) {
	data, err := testkit.WorkbookBytes(testkit.ScenarioHeaders, testkit.ScenarioRows())
	require.NoError(t, err)

	got, err := ReadWorkbook(bytes.NewReader(data), DefaultReaderConfig())
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", got.Sheet)
	assert.Equal(t, testkit.ScenarioHeaders, got.Headers)
	assert.Equal(t, 12, got.RowCount())
	assert.Equal(t, 4, got.ColumnCount())
	assert.Equal(t, []string{"Healthcare", "Yes", "ASEP roadmap", "Certification guidance"}, got.Rows[0])
}

func TestReadWorkbook_Unreadable(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("definitely not a zip archive"), DefaultReaderConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, survey.ErrUnreadable))
}

func TestReadWorkbook_HeaderOnly(t *testing.T) {
	data, err := testkit.WorkbookBytes(testkit.ScenarioHeaders, nil)
	require.NoError(t, err)

	_, err = ReadWorkbook(bytes.NewReader(data), DefaultReaderConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, survey.ErrEmptyDataset))
}

func TestReadWorkbook_EmptySheet(t *testing.T) {
	data, err := testkit.WorkbookBytes(nil, nil)
	require.NoError(t, err)

	_, err = ReadWorkbook(bytes.NewReader(data), DefaultReaderConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, survey.ErrEmptyDataset))
}

func TestReadCSV_RaggedRowsArePadded(t *testing.T) {
	src := "\ufeffDomain,Member\nHealthcare,Yes,extra\nRail\n\n"

	got, err := ReadCSV(strings.NewReader(src), DefaultReaderConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"Domain", "Member", "Unnamed: 2"}, got.Headers)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, []string{"Healthcare", "Yes", "extra"}, got.Rows[0])
	assert.Equal(t, []string{"Rail", "", ""}, got.Rows[1])
}

func TestRepairHeaders(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		width    int
		expected []string
	}{
		{"unchanged", []string{"a", "b"}, 2, []string{"a", "b"}},
		{"blank", []string{"a", "  ", ""}, 3, []string{"a", "Unnamed: 1", "Unnamed: 2"}},
		{"duplicates", []string{"a", "a", "a"}, 3, []string{"a", "a.1", "a.2"}},
		{"duplicate collides with existing suffix", []string{"a", "a.1", "a"}, 3, []string{"a", "a.1", "a.2"}},
		{"short header", []string{"a"}, 2, []string{"a", "Unnamed: 1"}},
		{"first duplicate gets .1", []string{"Domain", "Domain", "", ""}, 4, []string{"Domain", "Domain.1", "Unnamed: 2", "Unnamed: 3"}},
		{"suffix counters are per name", []string{"a", "b", "a", "b", "a"}, 5, []string{"a", "b", "a.1", "b.1", "a.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repairHeaders(tt.raw, tt.width))
		})
	}
}

func TestDataReader_ReadData(t *testing.T) {
	data, err := testkit.WorkbookBytes(testkit.ScenarioHeaders, testkit.ScenarioRows())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := NewDataReader(path).ReadData()
	require.NoError(t, err)
	assert.Equal(t, 12, got.RowCount())

	_, err = NewDataReader(filepath.Join(t.TempDir(), "missing.xlsx")).ReadData()
	assert.True(t, errors.Is(err, survey.ErrUnreadable))
}

func TestFileTypeOf(t *testing.T) {
	kind, ok := FileTypeOf("Survey.XLSX")
	assert.True(t, ok)
	assert.Equal(t, FileTypeXLSX, kind)

	kind, ok = FileTypeOf("survey.csv")
	assert.True(t, ok)
	assert.Equal(t, FileTypeCSV, kind)

	_, ok = FileTypeOf("survey.xls")
	assert.False(t, ok)
}
