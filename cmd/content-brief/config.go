// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/content-brief/internal/export"
	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/internal/secrets"
	"github.com/pdiddy/content-brief/pkg/types"
)

const defaultAddr = ":8080"

// configure sets defaults and environment bindings on v and reads the
// config file. A missing default config file is not an error.
func configure(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("content-brief")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := homeConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("log_level", "warn")
	v.SetDefault("store.backend", string(types.StoreFile))
	v.SetDefault("store.clients_dir", "clients")
	v.SetDefault("export.output_dir", export.DefaultOutputDir)
	v.SetDefault("export.font_name", export.DefaultOptions().FontName)
	v.SetDefault("export.body_size", export.DefaultOptions().BodySize)
	v.SetDefault("export.heading_size", export.DefaultOptions().HeadingSize)
	v.SetDefault("server.addr", defaultAddr)

	v.SetEnvPrefix("CONTENT_BRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider variables keep their conventional unprefixed names.
	_ = v.BindEnv("provider.default", "DEFAULT_AI_PROVIDER", "CONTENT_BRIEF_PROVIDER_DEFAULT")
	for _, k := range provider.Kinds {
		_ = v.BindEnv("provider.credentials."+string(k), k.EnvVar())
	}
	_ = v.BindEnv("store.backend", "CONTENT_BRIEF_STORE", "CONTENT_BRIEF_STORE_BACKEND")
	_ = v.BindEnv("store.clients_dir", "CONTENT_BRIEF_CLIENTS_DIR", "CONTENT_BRIEF_STORE_CLIENTS_DIR")
	_ = v.BindEnv("store.database_url", "DATABASE_URL", "CONTENT_BRIEF_DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// loadConfig resolves the application configuration from v. Values in the
// environment or config file take precedence over .secrets/ files.
func loadConfig(v *viper.Viper, s map[string]string) types.AppConfig {
	names := make([]string, len(provider.Kinds))
	for i, k := range provider.Kinds {
		names[i] = string(k)
	}
	creds := secrets.Credentials(s, names)
	for _, name := range names {
		if key := strings.TrimSpace(v.GetString("provider.credentials." + name)); key != "" {
			creds[name] = key
		}
	}

	dbURL := strings.TrimSpace(v.GetString("store.database_url"))
	if dbURL == "" {
		dbURL = s[secrets.DatabaseURLKey]
	}

	return types.AppConfig{
		Provider: types.ProviderConfig{
			Default:     strings.TrimSpace(v.GetString("provider.default")),
			Credentials: creds,
			Models:      v.GetStringMapString("provider.models"),
			BaseURLs:    v.GetStringMapString("provider.base_urls"),
			HTTPTimeout: v.GetDuration("provider.http_timeout"),
		},
		Store: types.StoreConfig{
			Backend:     types.StoreBackend(strings.ToLower(strings.TrimSpace(v.GetString("store.backend")))),
			ClientsDir:  v.GetString("store.clients_dir"),
			DatabaseURL: dbURL,
		},
		Export: types.ExportConfig{
			OutputDir:   v.GetString("export.output_dir"),
			FontName:    v.GetString("export.font_name"),
			BodySize:    v.GetInt("export.body_size"),
			HeadingSize: v.GetInt("export.heading_size"),
			WriteRecord: v.GetBool("export.write_record"),
		},
		Server:   types.ServerConfig{Addr: v.GetString("server.addr")},
		LogLevel: v.GetString("log_level"),
	}
}

// appConfig resolves the configuration of the running command.
func appConfig() types.AppConfig {
	return loadConfig(viper.GetViper(), loadedSecrets)
}
