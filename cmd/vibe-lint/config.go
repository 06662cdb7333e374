package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configName = ".vibe-lint"
	envPrefix  = "VIBE_LINT"
)

// initConfig loads ~/.vibe-lint.yaml and VIBE_LINT_* environment variables.
// A missing config file is not an error.
func initConfig() error {
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// configKeys lists every key the config command accepts.
func configKeys() []string {
	return append(append([]string(nil), validateKeys...), "verbose")
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-lint configuration",
		Long: "Show, get, or set configuration values. Config is stored in ~/.vibe-lint.yaml\n" +
			"and each key can be overridden by VIBE_LINT_<KEY> or the flag of the same name.\n\n" +
			"Keys: " + strings.Join(configKeys(), ", "),
		Example: `  vibe-lint config                        # show all config
  vibe-lint config set lang ja            # Japanese messages by default
  vibe-lint config set fail-on warning    # non-zero exit on warnings
  vibe-lint config set report-type json   # JSON reports by default
  vibe-lint config set db ~/runs.duckdb   # record every run
  vibe-lint config set disable Record/MultipleAlternateAlleles
  vibe-lint config get report-type        # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func runConfigShow(w io.Writer) error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Fprintln(w, "# No configuration set. Config file: ~/.vibe-lint.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return failErr(fmt.Errorf("marshaling config: %w", err))
	}
	fmt.Fprint(w, string(out))
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	if !slices.Contains(configKeys(), key) {
		return usageErr("unknown config key %q (known: %s)", key, strings.Join(configKeys(), ", "))
	}

	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	// Ensure config file exists
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return failErr(fmt.Errorf("cannot determine home directory: %w", err))
		}
		cfgFile = filepath.Join(home, configName+".yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return failErr(fmt.Errorf("writing config: %w", err))
	}

	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, val)
	return nil
}
