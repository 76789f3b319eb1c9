package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title: "Agendamentos",
		Columns: []Column{
			{Key: "teacher", Title: "Professor", Width: 2},
			{Key: "subject", Title: "Disciplina", Width: 2},
			{Key: "start", Title: "Início"},
		},
		Rows: []map[string]string{
			{"teacher": "Ana", "subject": "Math", "start": "10/01/2024 08:00"},
			{"teacher": "Bob", "subject": "Art, History", "start": "10/01/2024 10:00"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, utf8BOM))

	lines := strings.Split(strings.TrimSpace(string(out[len(utf8BOM):])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Professor,Disciplina,Início", lines[0])
	assert.Equal(t, "Ana,Math,10/01/2024 08:00", lines[1])
	assert.Equal(t, `Bob,"Art, History",10/01/2024 10:00`, lines[2])
}

func TestExportersRejectEmptyColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestColumnWidthsUseWeights(t *testing.T) {
	widths := columnWidths(sampleTable().Columns)
	assert.InDelta(t, pdfUsableWidth*2/5, widths[0], 0.001)
	assert.InDelta(t, pdfUsableWidth/5, widths[2], 0.001)
}
