package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/admission"
	"github.com/aretw0/admission/internal/cli"
	"github.com/aretw0/admission/pkg/adapters/mcp"
	"github.com/aretw0/admission/pkg/generator"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes template generation as MCP tools (generate_template, template_instructions)
so agents can fetch the score upload template.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		gen := admission.NewGenerator(generator.WithLogger(logger))
		srv := mcp.NewServer(gen, admission.Version, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Stdout carries JSON-RPC; logs stay on Stderr.
			logger.Info("starting MCP server", "transport", transport, "format", gen.Format())
			return srv.ServeStdio()
		case "sse":
			logger.Info("starting MCP server", "transport", transport, "addr", addr, "format", gen.Format())

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if err := cli.Serve(ctx, addr, srv.SSEHandler(baseURL(addr)), cfg.Server.ShutdownTimeout, logger); err != nil {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
		}
	},
}

// baseURL turns a listen address into the URL announced to SSE clients.
func baseURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport to use (stdio, sse)")
	mcpCmd.Flags().StringP("addr", "a", ":8081", "Address to listen on for the sse transport")
}
