// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/l3montree-dev/sbomparser/cmd/sbom-inspect/config"
	"github.com/l3montree-dev/sbomparser/parser"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

const (
	defaultConfigFilename = ".sbom-inspect"
)

var RootCmd = &cobra.Command{
	SilenceUsage:      true,
	Use:               "sbom-inspect",
	Short:             "Validate and query CycloneDX SBOMs",
	Version:           version,
	DisableAutoGenTag: true,
	Long: `Validate and query CycloneDX SBOMs

sbom-inspect parses CycloneDX JSON documents (spec version 1.4 to 1.6), reports
every problem it finds and lets you query the component tree. Configuration can
be provided via a ./.sbom-inspect config file or environment variables
(prefix SBOM_INSPECT_). Use - as file to read from stdin.`,
	Example: `  # Validate several SBOMs at once
  sbom-inspect validate sbom.json other.cdx.json

  # List all libraries as json
  sbom-inspect components sbom.json --type library --output json

  # Look up a single package
  sbom-inspect find sbom.json "pkg:npm/express@4.18.2"

  # Show the vulnerabilities of a generated SBOM
  trivy image alpine -f cyclonedx | sbom-inspect vulns -`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}

		switch level {
		case "debug":
			initLogger(slog.LevelDebug)
		case "info":
			initLogger(slog.LevelInfo)
		case "warn":
			initLogger(slog.LevelWarn)
		case "error":
			initLogger(slog.LevelError)
		default:
			initLogger(slog.LevelInfo)
		}

		return initializeConfig(cmd)
	},
}

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sbom-inspect\n")
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", commit)
			fmt.Fprintf(out, "Built:      %s\n", date)
			fmt.Fprintf(out, "Built by:   %s\n", builtBy)
			fmt.Fprintf(out, "CycloneDX:  %s\n", strings.Join(parser.SupportedSpecVersions(), ", "))
		},
	}

	RootCmd.AddCommand(
		versionCmd,
		NewValidateCommand(),
		NewComponentsCommand(),
		NewFindCommand(),
		NewVulnsCommand(),
	)

	RootCmd.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	RootCmd.PersistentFlags().StringP("output", "o", config.OutputTable, "Output format. Options: table, json, yaml")
	RootCmd.PersistentFlags().Int64("maxFileSize", parser.DefaultMaxFileSize, "Maximum size of an SBOM file in bytes")
	RootCmd.PersistentFlags().Int("maxDepth", parser.DefaultMaxDepth, "Maximum nesting depth of the JSON document")
	RootCmd.PersistentFlags().Int("timeout", 300, "Timeout in seconds")
}

// initLogger installs a tint handler as the default logger.
func initLogger(level slog.Leveler) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	))
}

func initializeConfig(cmd *cobra.Command) error {
	viper.SetConfigName(defaultConfigFilename)
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/sbom-inspect/")

	// a missing config file is fine, a broken one is not
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	viper.SetEnvPrefix("SBOM_INSPECT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)

	return config.ParseBaseConfig()
}

// bindFlags binds each cobra flag to its viper key, so config file and
// environment values apply to flags the user did not set.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := viper.BindPFlag(configName, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}
