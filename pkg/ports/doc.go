/*
Package ports defines the driven ports (interfaces) of the admission service.

These interfaces decouple the template generator and the authentication gate from
concrete implementations, so the rich spreadsheet capability and the session
backend can be swapped or omitted.

# Key Interfaces

  - TemplateWriter: Renders a ScoreTemplate into one output format (CSV, XLSX).
  - SessionStore: Persists and loads admin sessions (memory, Redis).
*/
package ports
