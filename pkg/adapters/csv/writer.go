// Package csv renders the score template as a plain comma-delimited document.
// It is the fallback used when no spreadsheet writer is available.
package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"

	"github.com/aretw0/admission/pkg/domain"
)

// Writer implements ports.TemplateWriter for CSV.
type Writer struct{}

// NewWriter creates a CSV template writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns domain.FormatCSV.
func (w *Writer) Format() domain.Format {
	return domain.FormatCSV
}

// Write emits the header row, the sample rows, one blank row, the instruction
// heading and the instruction lines, in that order.
func (w *Writer) Write(out io.Writer, tpl domain.ScoreTemplate) error {
	cw := stdcsv.NewWriter(out)

	records := make([][]string, 0, 2+len(tpl.Samples)+len(tpl.Instructions.Lines))
	records = append(records, tpl.Schema.Columns)
	for _, row := range tpl.Samples {
		records = append(records, row.Strings())
	}
	records = append(records, []string{})
	records = append(records, []string{tpl.Instructions.Heading})
	for _, line := range tpl.Instructions.Lines {
		records = append(records, []string{line})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv template: %w", err)
	}
	return nil
}
