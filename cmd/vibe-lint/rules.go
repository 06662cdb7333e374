package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-lint/internal/config"
)

func newRulesCmd() *cobra.Command {
	var (
		configPath string
		lang       string
		dump       bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the validation rules and their settings",
		Example: `  vibe-lint rules
  vibe-lint rules -c rules.yaml
  vibe-lint rules --dump > rules.yaml    # starting point for a custom config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := config.MatchLanguage(lang)
			cfg := config.Default(l)
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath, l)
				if err != nil {
					return failErr(err)
				}
			}

			if dump {
				if err := config.Dump(cmd.OutOrStdout(), cfg); err != nil {
					return failErr(err)
				}
				return nil
			}
			return failErrOrNil(writeRules(cmd.OutOrStdout(), cfg))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Rule configuration YAML (default: built-in rules)")
	cmd.Flags().StringVar(&lang, "lang", "en", "Message language: en, ja")
	cmd.Flags().BoolVar(&dump, "dump", false, "Write the effective configuration as YAML")

	return cmd
}

func writeRules(w io.Writer, cfg *config.Config) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tRULE\tLEVEL\tENABLED")
	for _, e := range cfg.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", e.Identity.Code, e.Identity.Name, e.Settings.Level, e.Settings.Enabled)
	}
	return tw.Flush()
}

func failErrOrNil(err error) error {
	if err == nil {
		return nil
	}
	return failErr(err)
}
