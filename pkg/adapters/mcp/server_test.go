package mcp_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aretw0/admission/pkg/adapters/csv"
	mcpAdapter "github.com/aretw0/admission/pkg/adapters/mcp"
	"github.com/aretw0/admission/pkg/adapters/xlsx"
	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/generator"
)

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context) (*domain.Document, error) {
	return nil, errors.New("disk full")
}

func (failingGenerator) Format() domain.Format { return domain.FormatCSV }

func connect(t *testing.T, gen mcpAdapter.Generator) *client.Client {
	t.Helper()
	ctx := context.Background()

	srv := mcpAdapter.NewServer(gen, "1.2.3")
	c, err := client.NewInProcessClient(srv.MCPServer())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Start(ctx))

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0.0"}
	result, err := c.Initialize(ctx, initRequest)
	require.NoError(t, err)
	assert.Equal(t, "admission-mcp", result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", result.ServerInfo.Version)
	return c
}

func callTool(t *testing.T, c *client.Client, name string) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	return result
}

func TestServer_ListTools(t *testing.T) {
	c := connect(t, generator.New(csv.NewWriter()))

	result, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		require.NotNil(t, tool.Annotations.ReadOnlyHint)
		assert.True(t, *tool.Annotations.ReadOnlyHint)
	}
	sort.Strings(names)
	assert.Equal(t, []string{mcpAdapter.ToolGenerateTemplate, mcpAdapter.ToolTemplateInstructions}, names)
}

func TestServer_GenerateTemplate_CSV(t *testing.T) {
	c := connect(t, generator.New(csv.NewWriter()))

	result := callTool(t, c, mcpAdapter.ToolGenerateTemplate)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 2)

	summary, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, summary.Text, "score_upload_template.csv")

	embedded, ok := mcp.AsEmbeddedResource(result.Content[1])
	require.True(t, ok)
	resource, ok := mcp.AsTextResourceContents(embedded.Resource)
	require.True(t, ok)
	assert.Equal(t, "text/csv", resource.MIMEType)
	assert.Equal(t, mcpAdapter.ResourceURIPrefix+"score_upload_template.csv", resource.URI)
	assert.True(t, strings.HasPrefix(resource.Text, "Control Number,Stanine Score,Remarks\n"))
}

func TestServer_GenerateTemplate_XLSX(t *testing.T) {
	gen := generator.New(csv.NewWriter(), generator.WithSpreadsheet(xlsx.NewWriter()))
	c := connect(t, gen)

	result := callTool(t, c, mcpAdapter.ToolGenerateTemplate)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 2)

	embedded, ok := mcp.AsEmbeddedResource(result.Content[1])
	require.True(t, ok)
	resource, ok := mcp.AsBlobResourceContents(embedded.Resource)
	require.True(t, ok)
	assert.Equal(t, domain.FormatXLSX.ContentType(), resource.MIMEType)

	body, err := base64.StdEncoding.DecodeString(resource.Blob)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	header, err := f.GetCellValue(xlsx.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Control Number", header)
}

func TestServer_GenerateTemplate_Failure(t *testing.T) {
	c := connect(t, failingGenerator{})

	result := callTool(t, c, mcpAdapter.ToolGenerateTemplate)
	assert.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "disk full")
}

func TestServer_TemplateInstructions(t *testing.T) {
	c := connect(t, generator.New(csv.NewWriter()))

	result := callTool(t, c, mcpAdapter.ToolTemplateInstructions)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, domain.NewScoreTemplate().InstructionsMarkdown(), text.Text)
}
