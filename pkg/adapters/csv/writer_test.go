package csv_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/admission/pkg/adapters/csv"
	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/ports/tests"
)

const expectedTemplate = `Control Number,Stanine Score,Remarks
2024-0001,7,Sample entry
2024-0002,5,
2024-0003,9,

Instructions:
1. Control Number: Enter the applicant's control number
2. Stanine Score: Enter a score from 1 to 9
3. Remarks: Optional notes about the score
4. Do not modify the column headers
5. Remove sample data before uploading
`

func TestWriter_Contract(t *testing.T) {
	tests.TemplateWriterContractTest(t, csv.NewWriter())
}

func TestWriter_Output(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter()

	require.NoError(t, w.Write(&buf, domain.NewScoreTemplate()))
	assert.Equal(t, domain.FormatCSV, w.Format())
	assert.Equal(t, expectedTemplate, buf.String())
}

func TestWriter_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csv.NewWriter().Write(&buf, domain.NewScoreTemplate()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+3+1+6)

	assert.Equal(t, "Control Number,Stanine Score,Remarks", lines[0])
	assert.Equal(t, "", lines[4], "sample rows must be followed by exactly one blank row")
	assert.Equal(t, "Instructions:", lines[5])
	for _, line := range lines[1:4] {
		assert.Len(t, strings.Split(line, ","), 3)
	}
}

func TestWriter_QuotesSpecialFields(t *testing.T) {
	tpl := domain.NewScoreTemplate()
	tpl.Samples = []domain.SampleRow{{ControlNumber: "2024-0009", Score: 3, Remarks: "late, re-check"}}

	var buf bytes.Buffer
	require.NoError(t, csv.NewWriter().Write(&buf, tpl))
	assert.Contains(t, buf.String(), "2024-0009,3,\"late, re-check\"\n")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter_PropagatesIOError(t *testing.T) {
	err := csv.NewWriter().Write(failingWriter{}, domain.NewScoreTemplate())
	assert.ErrorContains(t, err, "disk full")
}
