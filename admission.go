package admission

import (
	"github.com/aretw0/admission/pkg/adapters/csv"
	"github.com/aretw0/admission/pkg/generator"
	"github.com/aretw0/admission/pkg/ports"
)

// Version is the release of the admission service.
const Version = "0.3.1"

// SpreadsheetWriter returns the rich spreadsheet writer compiled into this binary,
// or nil when it was built without one (tag noxlsx).
func SpreadsheetWriter() ports.TemplateWriter {
	if newSpreadsheetWriter == nil {
		return nil
	}
	return newSpreadsheetWriter()
}

// NewGenerator returns a generator with the CSV fallback and the compiled-in
// spreadsheet capability. Options are applied after detection, so
// generator.WithSpreadsheet(nil) forces the fallback.
func NewGenerator(opts ...generator.Option) *generator.Generator {
	base := []generator.Option{}
	if w := SpreadsheetWriter(); w != nil {
		base = append(base, generator.WithSpreadsheet(w))
	}
	return generator.New(csv.NewWriter(), append(base, opts...)...)
}
