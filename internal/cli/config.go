package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/xmrkit/internal/config"
	"github.com/mrz1836/xmrkit/internal/fileutil"
	"github.com/mrz1836/xmrkit/internal/output"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and create the xmrkit configuration file.`,
}

// configInitCmd writes a default configuration file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at <home>/config.yaml.

An existing file is only replaced with --force.

Example:
  xmrkit config init
  xmrkit config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// configShowCmd prints the effective configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after the config file, XMRKIT_* environment
variables and flags have been applied.

Example:
  xmrkit config show
  xmrkit config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configPathCmd prints the config file location.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := config.Path(cfg.Home)
	exists, err := fileutil.Exists(path)
	if err != nil {
		return err
	}
	if exists && !configForce {
		return kiterr.WithSuggestion(
			kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"path": path}),
			"configuration already exists. Use --force to overwrite.",
		)
	}

	defaults := config.Defaults()
	defaults.Home = cfg.Home
	if err := config.Save(defaults, path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	logger.Info().Str("path", path).Msg("config initialized")

	return output.FormatSuccess(formatter.Writer(), "Configuration initialized at "+path, formatter.Format())
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if !formatter.IsJSON() {
		_, err = formatter.Writer().Write(data)
		return err
	}

	// Round trip through yaml so JSON keys match the file.
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	return formatter.Print(tree)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	path := config.Path(cfg.Home)
	return formatter.Record(map[string]string{"path": path}, []output.Field{{Key: "Path", Value: path}})
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
