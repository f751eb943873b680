/*
Package generator produces the downloadable score upload template.

The Generator renders the fixed ScoreTemplate with the rich spreadsheet writer when
one was injected, and falls back to the plain CSV writer otherwise. The result is
returned as an in-memory Document so the caller decides how to deliver it.

	gen := generator.New(csv.NewWriter(), generator.WithSpreadsheet(xlsx.NewWriter()))
	doc, err := gen.Generate(ctx)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", doc.ContentType())
	w.Write(doc.Body)
*/
package generator
