/*
Package domain contains the core models of the admission score template service.

It defines the fixed upload template (column schema, sample rows, instruction block
and the stanine validation rule), the output formats the template can be rendered
into, and the admin session used by the authentication gate. This package is kept
pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - ScoreTemplate: The immutable template aggregate, built fresh per request.
  - ValidationRule: The whole-number 1..9 constraint on the score column.
  - Format: An output format (CSV fallback or XLSX) with its media type and filename.
  - Document: A rendered template ready to be flushed to a client.
  - Session: An authenticated user session consulted by the admin gate.
*/
package domain
