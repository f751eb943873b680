package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/generator"
	"golang.org/x/term"
)

// StdoutPath selects standard output as the template destination.
const StdoutPath = "-"

// ErrTerminalOutput is returned when a binary template would be written to a terminal.
var ErrTerminalOutput = errors.New("refusing to write binary template to a terminal; use --out")

// WriteTemplate renders the template and writes it to path. An empty path uses the
// format's default filename and StdoutPath writes to stdout. It returns the destination.
func WriteTemplate(ctx context.Context, gen *generator.Generator, path string, stdout io.Writer) (string, error) {
	doc, err := gen.Generate(ctx)
	if err != nil {
		return "", err
	}

	if path == StdoutPath {
		if doc.Format != domain.FormatCSV && isTerminal(stdout) {
			return "", ErrTerminalOutput
		}
		if _, err := stdout.Write(doc.Body); err != nil {
			return "", fmt.Errorf("failed to write template: %w", err)
		}
		return "stdout", nil
	}

	if path == "" {
		path = doc.FileName()
	}
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write template to %s: %w", path, err)
	}
	return path, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
