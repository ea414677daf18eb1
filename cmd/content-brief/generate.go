// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one content brief without prompts",
	Long: `Generate loads a client profile, asks the selected provider for each brief
section in turn, and writes the finished brief as a Word document. The
document path is printed on stdout; progress goes to stderr.`,
	Example: `  content-brief generate --client "Acme Corp" --topic "Choosing industrial pumps" \
    --primary "industrial pumps" --secondary "pump sizing,pump maintenance"`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("client", "", "client profile name (required)")
	generateCmd.Flags().String("topic", "", "brief topic (required)")
	generateCmd.Flags().String("primary", "", "primary keyword (required)")
	generateCmd.Flags().StringSlice("secondary", nil, "secondary keywords, comma-separated (at least one)")
	generateCmd.Flags().String("provider", "", "AI provider: openai, claude, grok, perplexity, mistral (default DEFAULT_AI_PROVIDER, else openai)")
	_ = generateCmd.MarkFlagRequired("client")
	_ = generateCmd.MarkFlagRequired("topic")
	_ = generateCmd.MarkFlagRequired("primary")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	client, _ := cmd.Flags().GetString("client")
	topic, _ := cmd.Flags().GetString("topic")
	primary, _ := cmd.Flags().GetString("primary")
	secondary, _ := cmd.Flags().GetStringSlice("secondary")
	override, _ := cmd.Flags().GetString("provider")

	cfg := appConfig()
	kind, err := provider.Resolve(cfg.Provider, override)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg.Provider, kind, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Get(cmd.Context(), client)
	if err != nil {
		return err
	}

	var keywords []string
	for _, kw := range secondary {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating content brief for %s with %s...\n", p.ClientName, strings.ToUpper(string(kind)))
	rec, err := gen.Generate(cmd.Context(), types.BriefRequest{
		Profile:           *p,
		Topic:             strings.TrimSpace(topic),
		PrimaryKeyword:    strings.TrimSpace(primary),
		SecondaryKeywords: keywords,
	})
	if err != nil {
		return fmt.Errorf("generating brief: %w", err)
	}

	path, err := newExporter(cfg.Export).WriteFile(cfg.Export.OutputDir, rec)
	if err != nil {
		return err
	}
	if save := recordSaver(cfg.Export); save != nil {
		if err := save(path, rec); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
