package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// updateRepo is the GitHub repository releases are published to.
const updateRepo = "al26p/statusctl"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("statusctl %s (built %s)\n", appVersion, appBuildTime)
	},
}

// selfupdateCmd represents the selfupdate command
var selfupdateCmd = &cobra.Command{
	Use:   "selfupdate",
	Short: "Update statusctl to the latest release",
	RunE:  runSelfupdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(selfupdateCmd)
}

func runSelfupdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	current, err := semver.ParseTolerant(appVersion)
	if err != nil {
		return fmt.Errorf("cannot update a non-release build (version %q): %w", appVersion, err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepo)
	}

	latestVersion, err := semver.ParseTolerant(latest.Version())
	if err != nil {
		return fmt.Errorf("invalid release version %q: %w", latest.Version(), err)
	}
	if !latestVersion.GT(current) {
		fmt.Printf("statusctl %s is already up to date.\n", appVersion)
		return nil
	}

	fmt.Printf("Updating statusctl %s -> %s...\n", appVersion, latest.Version())

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}

	fmt.Printf("✓ Updated to %s\n", latest.Version())
	return nil
}
