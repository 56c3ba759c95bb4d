package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/linkedroles/client"
	"github.com/reoring/linkedroles/internal/config"
	"github.com/reoring/linkedroles/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app carries the global flags into subcommands.
type app struct {
	configFile string
	logLevel   string
}

// loadConfig reads configuration; --log-level overrides the configured level.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	return cfg, nil
}

func (a *app) newClient(cfg *config.Config) (*client.Client, *zap.Logger, error) {
	log := logging.New(logging.Config{Environment: cfg.Environment, LogLevel: cfg.LogLevel, ServiceName: "linkedroles"})
	opts := append(cfg.ClientOptions(), client.WithLogger(log))
	c, err := client.New(cfg.ClientConfig(), opts...)
	if err != nil {
		return nil, log, err
	}
	return c, log, nil
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "linkedroles",
		Short: "Discord Linked Roles metadata tooling",
		Long: color.CyanString(`linkedroles - Discord Linked Roles metadata tooling

Declare role connection metadata in a YAML schema file, validate it,
register it for your application and build OAuth2 authorization URLs.

Configuration comes from linkedroles.yaml and the environment
(CLIENT_ID, CLIENT_SECRET, REDIRECT_URI, DISCORD_TOKEN).`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./linkedroles.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newRegisterCommand(a))
	rootCmd.AddCommand(newRemoteSchemaCommand(a))
	rootCmd.AddCommand(newOAuthURLCommand(a))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(w, "linkedroles version: ")
			fmt.Fprintln(w, Version)
			titleColor.Fprint(w, "Git commit: ")
			fmt.Fprintln(w, GitCommit)
			titleColor.Fprint(w, "Build date: ")
			fmt.Fprintln(w, BuildDate)
			titleColor.Fprint(w, "Go version: ")
			fmt.Fprintln(w, runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
