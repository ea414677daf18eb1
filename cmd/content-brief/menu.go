// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-brief/internal/menu"
	"github.com/pdiddy/content-brief/internal/provider"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu (default)",
	Long: `Menu creates briefs and manages client profiles through numbered prompts
on the terminal. Generated briefs are written to the output directory.`,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg := appConfig()

	kinds := availableProviders(cfg.Provider)
	if len(kinds) == 0 {
		return fmt.Errorf("%w: set at least one of %s", provider.ErrMissingCredential, credentialHint())
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	m := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), menu.Config{
		Store:     store,
		Providers: kinds,
		NewGenerator: func(kind provider.Kind, w io.Writer) (menu.BriefGenerator, error) {
			g, err := newGenerator(cfg.Provider, kind, w)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
		Exporter:   newExporter(cfg.Export),
		OutputDir:  cfg.Export.OutputDir,
		OnExported: recordSaver(cfg.Export),
	})
	return m.Run(cmd.Context())
}
