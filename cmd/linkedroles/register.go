package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRegisterCommand(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "register SCHEMA_FILE",
		Short: "Replace the application's role connection metadata with a schema file",
		Long: `Register reads a schema file, validates it and PUTs the registration payload
to /applications/{client_id}/role-connections/metadata using DISCORD_TOKEN.
Run it once per schema change, not per user.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			s, err := loadSchema(w, args[0])
			if err != nil {
				return err
			}
			if dryRun {
				return writeJSON(w, s.ToSchema())
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			c, log, err := a.newClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			records, err := c.RegisterMetadataSchema(cmd.Context(), s.ToSchema())
			if err != nil {
				return err
			}
			log.Info("metadata schema registered", zap.String("client_id", c.ClientID()), zap.Int("records", len(records)))

			color.New(color.FgGreen, color.Bold).Fprintf(w, "✓ registered %d metadata record(s) for application %s\n", len(records), c.ClientID())
			for _, r := range records {
				fmt.Fprintf(w, "  %-24s %-14s %s\n", r.Key, r.Type, r.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the payload instead of sending it")
	return cmd
}

func newRemoteSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get-schema",
		Short: "Print the metadata records currently registered for the application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			c, log, err := a.newClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			records, err := c.GetMetadataSchema(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
}

func newOAuthURLCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "oauth-url",
		Short: "Print an authorization URL and its state token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			c, _, err := a.newClient(cfg)
			if err != nil {
				return err
			}
			u, state, err := c.OAuthURL()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, u)
			color.New(color.FgCyan).Fprint(w, "state: ")
			fmt.Fprintln(w, state)
			return nil
		},
	}
}
