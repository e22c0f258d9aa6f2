package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	return Report{
		Title: "Analytics",
		Tables: []Table{
			{
				Name:    "Overview",
				Headers: []string{"metric", "value"},
				Rows:    [][]string{{"totalHabits", "3"}, {"productivityScore", "72"}},
			},
			{
				Name:    "Timeline",
				Headers: []string{"date", "todos", "habits"},
				Rows:    [][]string{{"2024-01-01", "1", "2"}, {"2024-01-02"}},
			},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleReport())
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"metric", "value"},
		{"totalHabits", "3"},
		{"productivityScore", "72"},
		{"date", "todos", "habits"},
		{"2024-01-01", "1", "2"},
		{"2024-01-02", "", ""},
	}, records)
	assert.Contains(t, string(out), "72\n\ndate,todos,habits\n")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Report{Tables: []Table{{Name: "empty"}}})
	assert.ErrorContains(t, err, "requires at least one header")
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = NewPDFExporter().Render(Report{Tables: []Table{{Name: "empty"}}})
	assert.Error(t, err)
}
