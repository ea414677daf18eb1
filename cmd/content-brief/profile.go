// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-brief/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage client profiles",
	Long: `Profile lists, shows, creates, updates, deletes and imports client
profiles in the configured store. Create and update take one flag per field;
update changes only the flags given.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List client names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context(), appConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one profile as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openStore(cmd.Context(), appConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var data []byte
		switch strings.ToLower(format) {
		case "json":
			data, err = json.MarshalIndent(p, "", "  ")
			data = append(data, '\n')
		case "yaml", "yml":
			data, err = yaml.Marshal(p)
		default:
			return fmt.Errorf("unknown format %q: use json or yaml", format)
		}
		if err != nil {
			return fmt.Errorf("formatting profile: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a profile from defaults and the given fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := partialFromFlags(cmd)
		if err != nil {
			return err
		}
		store, err := openStore(cmd.Context(), appConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Create(cmd.Context(), args[0], data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client '%s' created successfully.\n", strings.TrimSpace(args[0]))
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Change the given fields of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		partial, err := partialFromFlags(cmd)
		if err != nil {
			return err
		}
		if len(partial) == 0 {
			return fmt.Errorf("no fields to update: pass at least one field flag")
		}
		store, err := openStore(cmd.Context(), appConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Update(cmd.Context(), args[0], partial); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client '%s' updated successfully.\n", args[0])
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete %q without --yes", args[0])
		}
		store, err := openStore(cmd.Context(), appConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("%w: %s", profile.ErrNotFound, args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client '%s' deleted successfully.\n", args[0])
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Create profiles from JSON or YAML files",
	Long: `Import reads each file as one profile document. The file must carry a
client_name; the remaining fields are merged over the defaults.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context(), appConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			name, err := profile.Import(cmd.Context(), store, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported '%s' from %s\n", name, path)
		}
		return nil
	},
}

type fieldKind int

const (
	fieldString fieldKind = iota
	fieldList
	fieldBool
	fieldInt
)

// fieldFlag maps one command-line flag to a profile field path.
type fieldFlag struct {
	name  string
	path  []string
	kind  fieldKind
	usage string
}

var profileFields = []fieldFlag{
	{"site", []string{"site"}, fieldString, "website URL"},
	{"industry", []string{"industry"}, fieldString, "industry"},
	{"audience", []string{"target_audience"}, fieldString, "target audience"},
	{"voice", []string{"brand_voice"}, fieldString, "brand voice"},
	{"goals", []string{"content_goals"}, fieldString, "content goals"},
	{"info", []string{"information"}, fieldList, "background information (repeatable)"},
	{"legal", []string{"restrictions", "legal"}, fieldList, "legal restriction (repeatable)"},
	{"brand", []string{"restrictions", "brand"}, fieldList, "brand restriction (repeatable)"},
	{"seo", []string{"restrictions", "seo"}, fieldList, "SEO restriction (repeatable)"},
	{"integrity", []string{"restrictions", "content_integrity"}, fieldList, "content integrity restriction (repeatable)"},
	{"word-count", []string{"requirements", "word_count"}, fieldString, "word count range, e.g. 800-1200"},
	{"readability", []string{"requirements", "readability_score"}, fieldString, "readability target"},
	{"tone", []string{"requirements", "tone"}, fieldString, "tone of voice"},
	{"mention", []string{"requirements", "mandatory_mentions"}, fieldList, "mandatory mention (repeatable)"},
	{"schema", []string{"requirements", "schema_required"}, fieldBool, "schema markup required"},
	{"images", []string{"requirements", "images_required"}, fieldInt, "minimum number of images"},
	{"cta", []string{"requirements", "cta_required"}, fieldBool, "call to action required"},
	{"links", []string{"requirements", "internal_links_min"}, fieldInt, "minimum number of internal links"},
}

func addProfileFlags(cmd *cobra.Command) {
	for _, f := range profileFields {
		switch f.kind {
		case fieldString:
			cmd.Flags().String(f.name, "", f.usage)
		case fieldList:
			cmd.Flags().StringArray(f.name, nil, f.usage)
		case fieldBool:
			cmd.Flags().Bool(f.name, false, f.usage)
		case fieldInt:
			cmd.Flags().Int(f.name, 0, f.usage)
		}
	}
}

// partialFromFlags builds a nested profile map from the flags that were set
// on the command line. Unset flags are left out.
func partialFromFlags(cmd *cobra.Command) (map[string]any, error) {
	flags := cmd.Flags()
	out := map[string]any{}
	for _, f := range profileFields {
		if !flags.Changed(f.name) {
			continue
		}
		var (
			v   any
			err error
		)
		switch f.kind {
		case fieldString:
			v, err = flags.GetString(f.name)
		case fieldList:
			v, err = flags.GetStringArray(f.name)
		case fieldBool:
			v, err = flags.GetBool(f.name)
		case fieldInt:
			var n int
			n, err = flags.GetInt(f.name)
			if err == nil && n < 0 {
				err = fmt.Errorf("%w: --%s must not be negative", profile.ErrInvalidField, f.name)
			}
			v = n
		}
		if err != nil {
			return nil, err
		}
		setPath(out, f.path, v)
	}
	return out, nil
}

func setPath(m map[string]any, path []string, v any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

func init() {
	profileShowCmd.Flags().String("format", "json", "output format: json or yaml")
	profileDeleteCmd.Flags().Bool("yes", false, "confirm deletion")
	addProfileFlags(profileCreateCmd)
	addProfileFlags(profileUpdateCmd)

	profileCmd.AddCommand(profileListCmd, profileShowCmd, profileCreateCmd,
		profileUpdateCmd, profileDeleteCmd, profileImportCmd)
	rootCmd.AddCommand(profileCmd)
}
