package domain

// Format identifies a rendered template representation.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const templateBaseName = "score_upload_template"

// ContentType returns the media type sent with the download.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// FileName returns the suggested download filename.
func (f Format) FileName() string {
	return templateBaseName + "." + string(f)
}

// Document is a rendered template.
type Document struct {
	Format Format
	Body   []byte
}

// FileName is a shortcut for Format.FileName.
func (d *Document) FileName() string {
	return d.Format.FileName()
}

// ContentType is a shortcut for Format.ContentType.
func (d *Document) ContentType() string {
	return d.Format.ContentType()
}
