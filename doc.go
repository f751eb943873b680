/*
Package admission serves the downloadable template used to bulk-upload entrance
exam stanine scores.

The template is rendered as a styled XLSX workbook when the spreadsheet capability
is compiled in, and as a plain CSV document otherwise. Building with the noxlsx
tag removes the capability, which exercises the CSV fallback end to end.

# Concept

The generator is a pure function of the fixed ScoreTemplate: column headers, three
sample rows, an instruction block and a 1..9 validation rule on the score column.
Delivery (HTTP, CLI file output) and access control (the admin gate) are adapters
around it, following Hexagonal Architecture.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/admission"
	)

	func main() {
		gen := admission.NewGenerator()

		doc, err := gen.Generate(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(doc.FileName(), doc.Body, 0644); err != nil {
			log.Fatal(err)
		}
	}

# Serving

The admission command wires the generator behind the admin gate:

	admission serve --config admission.yaml

See pkg/adapters/http for the routes and pkg/auth for the gate.
*/
package admission
