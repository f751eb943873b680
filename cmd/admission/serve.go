package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/admission"
	"github.com/aretw0/admission/internal/cli"
	"github.com/aretw0/admission/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the HTTP server exposing the score upload template download behind
the administrator session gate, plus health, info, OpenAPI and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		store, closer, err := cli.CreateStore(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		grantAdmin, _ := cmd.Flags().GetString("grant-admin")
		if _, err := cli.BootstrapAdmin(cmd.Context(), cfg, store, cmd.OutOrStdout(), grantAdmin); err != nil {
			return err
		}

		components := cli.CreateComponents(cfg, store, logger)

		tui.PrintBanner(cmd.OutOrStdout(), admission.Version)
		logger.Info("starting admission server",
			"addr", cfg.Server.Addr,
			"format", components.Generator.Format(),
			"session_store", cfg.Session.Store,
		)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := cli.Serve(ctx, cfg.Server.Addr, components.Handler, cfg.Server.ShutdownTimeout, logger); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			logger.Info("stopped by signal", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().String("grant-admin", "", "Issue an admin session for this user at startup and print its cookie")
}
