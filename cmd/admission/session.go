package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/admission/internal/cli"
	"github.com/aretw0/admission/internal/config"
	"github.com/aretw0/admission/pkg/ports"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage administrator sessions",
	Long:  `Grant, list, inspect, and revoke sessions held in the shared redis store.`,
}

var sessionGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Issue a session and print its ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, closer, err := getStore(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		user, _ := cmd.Flags().GetString("user")
		role, _ := cmd.Flags().GetString("role")
		ttl := cfg.Session.TTL
		if cmd.Flags().Changed("ttl") {
			ttl, _ = cmd.Flags().GetDuration("ttl")
		}

		_, err = cli.GrantSession(cmd.Context(), store, cmd.OutOrStdout(), user, role, ttl)
		return err
	},
}

var sessionLsCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all active sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, closer, err := getStore(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()
		return cli.ListSessions(cmd.Context(), store, cmd.OutOrStdout())
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, closer, err := getStore(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		session, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", args[0], err)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRevokeCmd = &cobra.Command{
	Use:     "revoke <session-id>...",
	Aliases: []string{"rm"},
	Short:   "Revoke one or more sessions",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, closer, err := getStore(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		var failed int
		for _, id := range args {
			if err := cli.RevokeSession(cmd.Context(), store, cmd.OutOrStdout(), id); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sessions could not be revoked", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionGrantCmd, sessionLsCmd, sessionInspectCmd, sessionRevokeCmd)

	sessionGrantCmd.Flags().String("user", "", "User ID the session belongs to")
	sessionGrantCmd.Flags().String("role", "admin", "Session role (admin, staff)")
	sessionGrantCmd.Flags().Duration("ttl", 0, "Session lifetime (default session.ttl)")
	_ = sessionGrantCmd.MarkFlagRequired("user")
}

func getStore(cmd *cobra.Command) (config.Config, ports.SessionStore, io.Closer, error) {
	cfg, _, err := loadRuntime(cmd)
	if err != nil {
		return cfg, nil, nil, err
	}
	if err := cli.RequirePersistentStore(cfg); err != nil {
		return cfg, nil, nil, err
	}
	store, closer, err := cli.CreateStore(cfg)
	return cfg, store, closer, err
}
