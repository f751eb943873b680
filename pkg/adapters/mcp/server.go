// Package mcp exposes template generation as Model Context Protocol tools,
// so agents can fetch the score upload template and its instructions.
package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/admission/internal/logging"
	"github.com/aretw0/admission/pkg/domain"
)

// Tool names.
const (
	ToolGenerateTemplate     = "generate_template"
	ToolTemplateInstructions = "template_instructions"
)

// ResourceURIPrefix prefixes the URI of every returned template.
const ResourceURIPrefix = "admission://templates/"

// Generator defines what the MCP server needs from the template generator.
type Generator interface {
	Generate(ctx context.Context) (*domain.Document, error)
	Format() domain.Format
}

// Server wraps the generator and exposes it as an MCP Server.
type Server struct {
	generator Generator
	template  func() domain.ScoreTemplate
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTemplate overrides the template the instructions are read from.
func WithTemplate(fn func() domain.ScoreTemplate) Option {
	return func(s *Server) {
		s.template = fn
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(gen Generator, version string, opts ...Option) *Server {
	s := &Server{
		generator: gen,
		template:  domain.NewScoreTemplate,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("admission-mcp", strings.TrimSpace(version),
			server.WithToolCapabilities(false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// SSEHandler serves the SSE transport (/sse and /message) announcing baseURL to clients.
func (s *Server) SSEHandler(baseURL string) http.Handler {
	return server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))
}

func (s *Server) registerTools() {
	// TOOL: generate_template
	s.mcpServer.AddTool(mcp.NewTool(ToolGenerateTemplate,
		mcp.WithDescription("Generate the entrance exam score upload template. "+
			"Returns CSV text, or the XLSX workbook base64-encoded with its media type."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	), s.handleGenerateTemplate)

	// TOOL: template_instructions
	s.mcpServer.AddTool(mcp.NewTool(ToolTemplateInstructions,
		mcp.WithDescription("Explain how to fill in the score upload template, as markdown."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	), s.handleTemplateInstructions)
}

func (s *Server) handleGenerateTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.generator.Generate(ctx)
	if err != nil {
		s.logger.Error("MCP: template generation failed", "error", err)
		return mcp.NewToolResultErrorFromErr("template generation failed", err), nil
	}

	uri := ResourceURIPrefix + doc.FileName()
	summary := fmt.Sprintf("%s (%s, %d bytes)", doc.FileName(), doc.ContentType(), len(doc.Body))
	s.logger.Info("MCP: template generated", "format", doc.Format, "bytes", len(doc.Body))

	if doc.Format == domain.FormatCSV {
		return mcp.NewToolResultResource(summary, mcp.TextResourceContents{
			URI:      uri,
			MIMEType: doc.ContentType(),
			Text:     string(doc.Body),
		}), nil
	}
	return mcp.NewToolResultResource(summary, mcp.BlobResourceContents{
		URI:      uri,
		MIMEType: doc.ContentType(),
		Blob:     base64.StdEncoding.EncodeToString(doc.Body),
	}), nil
}

func (s *Server) handleTemplateInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.template().InstructionsMarkdown()), nil
}
