package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TemplateSchema is the ordered list of upload columns.
type TemplateSchema struct {
	Columns []string
}

// SampleRow is one example upload row. Its arity matches TemplateSchema.
type SampleRow struct {
	ControlNumber string
	Score         int
	Remarks       string
}

// Values returns the row as cell values in schema order.
func (r SampleRow) Values() []any {
	return []any{r.ControlNumber, r.Score, r.Remarks}
}

// Strings returns the row as text fields in schema order.
func (r SampleRow) Strings() []string {
	return []string{r.ControlNumber, strconv.Itoa(r.Score), r.Remarks}
}

// InstructionBlock is the guidance appended after the sample data.
type InstructionBlock struct {
	Heading string
	Lines   []string
}

// ErrorStyle controls how a spreadsheet reacts to input rejected by a ValidationRule.
type ErrorStyle string

const (
	ErrorStyleStop        ErrorStyle = "stop" // Blocks the value
	ErrorStyleWarning     ErrorStyle = "warning"
	ErrorStyleInformation ErrorStyle = "information"
)

// ValidationRule restricts a column to an enumerated set of whole numbers.
type ValidationRule struct {
	// Column is the 1-based column index the rule is attached to.
	Column int
	// FirstRow and LastRow bound the rule (1-based, inclusive).
	FirstRow int
	LastRow  int

	Values     []int
	ErrorStyle ErrorStyle
	AllowBlank bool

	PromptTitle string
	Prompt      string
	ErrorTitle  string
	Error       string
}

// Allows reports whether a cell value passes the rule.
// Only the canonical decimal form of a listed value is accepted.
func (v ValidationRule) Allows(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return v.AllowBlank
	}
	n, err := strconv.Atoi(value)
	if err != nil || strconv.Itoa(n) != value {
		return false
	}
	for _, allowed := range v.Values {
		if n == allowed {
			return true
		}
	}
	return false
}

// Options returns the legal values as text, in order.
func (v ValidationRule) Options() []string {
	opts := make([]string, len(v.Values))
	for i, n := range v.Values {
		opts[i] = strconv.Itoa(n)
	}
	return opts
}

// DocumentProperties are the descriptive metadata embedded in rich documents.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Title          string
	Subject        string
	Description    string
}

// ScoreTemplate aggregates everything needed to render the upload template.
type ScoreTemplate struct {
	Schema       TemplateSchema
	Samples      []SampleRow
	Instructions InstructionBlock
	Validation   ValidationRule
	Properties   DocumentProperties
}

// Column and row limits of the stanine template.
const (
	ScoreColumn         = 2
	ValidationFirstRow  = 2
	ValidationLastRow   = 1000
	InstructionsRowGap  = 2
	applicationProvider = "PSAU Admission System"
)

// NewScoreTemplate builds the stanine score upload template.
// Every call returns independent slices, so callers may not affect each other.
func NewScoreTemplate() ScoreTemplate {
	return ScoreTemplate{
		Schema: TemplateSchema{
			Columns: []string{"Control Number", "Stanine Score", "Remarks"},
		},
		Samples: []SampleRow{
			{ControlNumber: "2024-0001", Score: 7, Remarks: "Sample entry"},
			{ControlNumber: "2024-0002", Score: 5},
			{ControlNumber: "2024-0003", Score: 9},
		},
		Instructions: InstructionBlock{
			Heading: "Instructions:",
			Lines: []string{
				"1. Control Number: Enter the applicant's control number",
				"2. Stanine Score: Enter a score from 1 to 9",
				"3. Remarks: Optional notes about the score",
				"4. Do not modify the column headers",
				"5. Remove sample data before uploading",
			},
		},
		Validation: ValidationRule{
			Column:      ScoreColumn,
			FirstRow:    ValidationFirstRow,
			LastRow:     ValidationLastRow,
			Values:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
			ErrorStyle:  ErrorStyleStop,
			AllowBlank:  false,
			PromptTitle: "Stanine Score",
			Prompt:      "Enter a stanine score from 1 to 9",
			ErrorTitle:  "Invalid Score",
			Error:       "Please enter a stanine score between 1 and 9",
		},
		Properties: DocumentProperties{
			Creator:        applicationProvider,
			LastModifiedBy: applicationProvider,
			Title:          "Entrance Exam Score Upload Template",
			Subject:        "Template for uploading entrance exam scores",
			Description:    "Template for bulk uploading entrance exam scores",
		},
	}
}

// InstructionsRow is the 1-based row where the instruction heading starts:
// header row, sample rows, then a gap.
func (t ScoreTemplate) InstructionsRow() int {
	return 1 + len(t.Samples) + InstructionsRowGap
}

// InstructionsMarkdown renders the template's guidance as markdown.
func (t ScoreTemplate) InstructionsMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSuffix(t.Instructions.Heading, ":"))
	for _, line := range t.Instructions.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n## Columns\n\n")
	b.WriteString("| Column | Sample |\n|---|---|\n")
	for i, col := range t.Schema.Columns {
		sample := ""
		if len(t.Samples) > 0 {
			if values := t.Samples[0].Strings(); i < len(values) {
				sample = values[i]
			}
		}
		fmt.Fprintf(&b, "| %s | %s |\n", col, sample)
	}
	return b.String()
}
