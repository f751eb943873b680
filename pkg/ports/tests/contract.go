package tests

import (
	"bytes"
	"testing"

	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/ports"
)

// TemplateWriterContractTest is a reusable test suite that verifies if an adapter complies with ports.TemplateWriter.
func TemplateWriterContractTest(t *testing.T, writer ports.TemplateWriter) {
	t.Helper()

	t.Run("Format", func(t *testing.T) {
		switch writer.Format() {
		case domain.FormatCSV, domain.FormatXLSX:
		default:
			t.Errorf("unexpected format %q", writer.Format())
		}
	})

	t.Run("Write_NonEmpty", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writer.Write(&buf, domain.NewScoreTemplate()); err != nil {
			t.Fatalf("unexpected error writing template: %v", err)
		}
		if buf.Len() == 0 {
			t.Error("expected output, got empty body")
		}
	})

	t.Run("Write_Deterministic", func(t *testing.T) {
		var first, second bytes.Buffer
		if err := writer.Write(&first, domain.NewScoreTemplate()); err != nil {
			t.Fatalf("first write failed: %v", err)
		}
		if err := writer.Write(&second, domain.NewScoreTemplate()); err != nil {
			t.Fatalf("second write failed: %v", err)
		}
		if !bytes.Equal(first.Bytes(), second.Bytes()) {
			t.Errorf("output differs between invocations (%d vs %d bytes)", first.Len(), second.Len())
		}
	})
}
