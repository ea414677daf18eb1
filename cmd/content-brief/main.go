// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the content-brief CLI.
//
// With no subcommand it starts the interactive menu. The serve subcommand
// runs the web UI, generate produces one brief non-interactively, and
// profile manages client profiles from scripts.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-brief/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the content-brief CLI.
var rootCmd = &cobra.Command{
	Use:   "content-brief",
	Short: "Generate SEO content briefs for client websites",
	Long: `content-brief turns a client profile, a topic and a set of keywords into a
structured SEO content brief and exports it as a Word document.

Client profiles live in the clients/ directory or in a database. Provider
API keys come from the environment, a .env file, .secrets/<provider>-api-key
files or the config file.

Run without a subcommand to start the interactive menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(viper.GetString("log_level"))

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	RunE: runMenu,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./content-brief.yaml or ~/.config/content-brief/content-brief.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("store", "", "profile store backend: file or database")
	rootCmd.PersistentFlags().String("clients-dir", "", "directory of client profile files (default clients)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for generated briefs (default output_briefs)")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("store.clients_dir", rootCmd.PersistentFlags().Lookup("clients-dir"))
	_ = viper.BindPFlag("export.output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if err := configure(viper.GetViper(), cfgFile); err == nil && viper.ConfigFileUsed() != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "Reading config:", err)
	}
}

// setupLogging installs a text handler on stderr at the named level.
func setupLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		l = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// homeConfigDir returns ~/.config/content-brief, or "" without a home.
func homeConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "content-brief")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
