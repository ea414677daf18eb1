// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	Long: `Serve starts the browser front end. Briefs generated there are returned
as .docx downloads; nothing is kept between requests except client profiles.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig()

	kinds := availableProviders(cfg.Provider)
	if len(kinds) == 0 {
		slog.Warn("no provider credentials configured; brief generation is disabled", "variables", credentialHint())
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := web.New(web.Config{
		Store:     store,
		Providers: kinds,
		NewGenerator: func(kind provider.Kind) (web.BriefGenerator, error) {
			g, err := newGenerator(cfg.Provider, kind, nil)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
		Exporter:   newExporter(cfg.Export),
		OnExported: downloadSaver(cfg.Export),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if addr == "" {
		addr = defaultAddr
	}
	cmd.Printf("Serving content-brief on %s\n", addr)
	return srv.Run(ctx, addr)
}
