package ports

import (
	"io"

	"github.com/aretw0/admission/pkg/domain"
)

// TemplateWriter renders a template into a single output format.
type TemplateWriter interface {
	// Format reports the format produced by Write.
	Format() domain.Format

	// Write renders the template to w. Output must be deterministic for a given template.
	Write(w io.Writer, tpl domain.ScoreTemplate) error
}
