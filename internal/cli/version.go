package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xmrkit/internal/output"
	"github.com/mrz1836/xmrkit/internal/version"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var versionCheck bool

// releaseClientFn builds the release checker, replaced in tests.
//
//nolint:gochecknoglobals // Swappable release client for tests
var releaseClientFn = version.NewClient

// versionCmd prints build information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

// versionResult is the JSON shape of version.
type versionResult struct {
	version.Info

	Latest          string `json:"latest,omitempty"`
	UpdateAvailable bool   `json:"update_available,omitempty"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	res := versionResult{Info: version.Get()}

	if versionCheck {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		rel, err := releaseClientFn().LatestRelease(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("release check failed")
		} else {
			res.Latest = rel.TagName
			res.UpdateAvailable = version.IsNewer(res.Version, rel.TagName)
		}
	}

	fields := []output.Field{
		{Key: "Version", Value: res.Version},
		{Key: "Commit", Value: orDash(res.Commit)},
		{Key: "Built", Value: orDash(res.BuildDate)},
		{Key: "Go", Value: res.GoVersion},
		{Key: "Platform", Value: res.Platform},
	}
	if res.Latest != "" {
		fields = append(fields, output.Field{Key: "Latest", Value: res.Latest})
	}
	return formatter.Record(res, fields)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
