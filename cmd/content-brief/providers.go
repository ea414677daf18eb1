// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List AI providers and whether each has an API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProviders(cmd, appConfig().Provider)
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func printProviders(cmd *cobra.Command, cfg types.ProviderConfig) error {
	available := map[provider.Kind]bool{}
	for _, k := range availableProviders(cfg) {
		available[k] = true
	}
	// The default is the provider generate uses without --provider, key or not.
	def, _ := provider.Resolve(cfg, "")

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROVIDER\tMODEL\tKEY\tSTATUS")
	for _, k := range provider.Kinds {
		model := k.DefaultModel()
		if m := cfg.Models[string(k)]; m != "" {
			model = m
		}
		status := "missing"
		if available[k] {
			status = "available"
		}
		if k == def {
			status += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Label(), model, k.EnvVar(), status)
	}
	return tw.Flush()
}
