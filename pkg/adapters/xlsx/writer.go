// Package xlsx renders the score template as a styled Office Open XML workbook.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"

	"github.com/aretw0/admission/pkg/domain"
)

// SheetName is the name of the single worksheet in the template.
const SheetName = "Scores"

// HeaderFill is the solid fill color of the header row.
const HeaderFill = "2E7D32"

// PinnedTimestamp is stamped as the created/modified date of every workbook,
// keeping output byte-identical across invocations.
var PinnedTimestamp = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	minColumnWidth  = 8.43
	maxColumnWidth  = 255
	columnPadding   = 2
	docPropsLayout  = "2006-01-02T15:04:05Z"
	defaultFontSize = 11
)

// Writer implements ports.TemplateWriter for XLSX.
type Writer struct {
	timestamp time.Time
}

// Option configures the Writer.
type Option func(*Writer)

// WithTimestamp overrides the pinned document timestamp.
func WithTimestamp(ts time.Time) Option {
	return func(w *Writer) {
		w.timestamp = ts
	}
}

// NewWriter creates an XLSX template writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{timestamp: PinnedTimestamp}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Format returns domain.FormatXLSX.
func (w *Writer) Format() domain.Format {
	return domain.FormatXLSX
}

// Write builds the workbook in memory and serializes it to out.
func (w *Writer) Write(out io.Writer, tpl domain.ScoreTemplate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.build(f, tpl); err != nil {
		return err
	}
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return nil
}

func (w *Writer) build(f *excelize.File, tpl domain.ScoreTemplate) error {
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}
	if err := w.setProperties(f, tpl.Properties); err != nil {
		return err
	}
	if err := writeHeader(f, tpl.Schema); err != nil {
		return err
	}
	if err := addValidation(f, tpl.Validation); err != nil {
		return err
	}
	if err := writeSamples(f, tpl.Samples); err != nil {
		return err
	}
	if err := writeInstructions(f, tpl.Instructions, tpl.InstructionsRow()); err != nil {
		return err
	}
	if err := setDimension(f, tpl); err != nil {
		return err
	}
	return autoFit(f, len(tpl.Schema.Columns))
}

// setDimension records the used range; excelize leaves it at A1 otherwise.
func setDimension(f *excelize.File, tpl domain.ScoreTemplate) error {
	lastRow := tpl.InstructionsRow() + len(tpl.Instructions.Lines)
	last, err := excelize.CoordinatesToCellName(len(tpl.Schema.Columns), lastRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetDimension(SheetName, "A1:"+last); err != nil {
		return fmt.Errorf("failed to set sheet dimension: %w", err)
	}
	return nil
}

func (w *Writer) setProperties(f *excelize.File, props domain.DocumentProperties) error {
	stamp := w.timestamp.UTC().Format(docPropsLayout)
	err := f.SetDocProps(&excelize.DocProperties{
		Creator:        props.Creator,
		LastModifiedBy: props.LastModifiedBy,
		Title:          props.Title,
		Subject:        props.Subject,
		Description:    props.Description,
		Created:        stamp,
		Modified:       stamp,
	})
	if err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, schema domain.TemplateSchema) error {
	header := make([]any, len(schema.Columns))
	for i, col := range schema.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(headerStyle())
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(schema.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func headerStyle() *excelize.Style {
	borders := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "top", "right", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return &excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: defaultFontSize},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HeaderFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: borders,
	}
}

func addValidation(f *excelize.File, rule domain.ValidationRule) error {
	first, err := excelize.CoordinatesToCellName(rule.Column, rule.FirstRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(rule.Column, rule.LastRow)
	if err != nil {
		return err
	}

	dv := excelize.NewDataValidation(rule.AllowBlank)
	dv.Sqref = first + ":" + last
	if err := dv.SetDropList(rule.Options()); err != nil {
		return fmt.Errorf("failed to set validation list: %w", err)
	}
	dv.SetInput(rule.PromptTitle, rule.Prompt)
	dv.SetError(errorStyle(rule.ErrorStyle), rule.ErrorTitle, rule.Error)

	if err := f.AddDataValidation(SheetName, dv); err != nil {
		return fmt.Errorf("failed to add validation: %w", err)
	}
	return nil
}

func errorStyle(style domain.ErrorStyle) excelize.DataValidationErrorStyle {
	switch style {
	case domain.ErrorStyleWarning:
		return excelize.DataValidationErrorStyleWarning
	case domain.ErrorStyleInformation:
		return excelize.DataValidationErrorStyleInformation
	default:
		return excelize.DataValidationErrorStyleStop
	}
}

func writeSamples(f *excelize.File, samples []domain.SampleRow) error {
	for i, row := range samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row.Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write sample row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeInstructions(f *excelize.File, block domain.InstructionBlock, startRow int) error {
	heading, err := excelize.CoordinatesToCellName(1, startRow)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, heading, block.Heading); err != nil {
		return fmt.Errorf("failed to write instructions heading: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create heading style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, heading, heading, bold); err != nil {
		return fmt.Errorf("failed to style instructions heading: %w", err)
	}

	for i, line := range block.Lines {
		cell, err := excelize.CoordinatesToCellName(1, startRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, line); err != nil {
			return fmt.Errorf("failed to write instruction %d: %w", i+1, err)
		}
	}
	return nil
}

// autoFit sizes each column to its widest rendered value.
func autoFit(f *excelize.File, columns int) error {
	rows, err := f.GetRows(SheetName)
	if err != nil {
		return fmt.Errorf("failed to read back rows: %w", err)
	}

	for col := 1; col <= columns; col++ {
		widest := 0
		for _, row := range rows {
			if col <= len(row) {
				widest = max(widest, runewidth.StringWidth(row[col-1]))
			}
		}

		width := min(max(float64(widest+columnPadding), minColumnWidth), maxColumnWidth)
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}
	return nil
}
