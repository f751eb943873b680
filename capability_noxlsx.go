//go:build noxlsx

package admission

import "github.com/aretw0/admission/pkg/ports"

var newSpreadsheetWriter func() ports.TemplateWriter
