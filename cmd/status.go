package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show an overview of the page",
	Long: `Show the page profile, component health and any unresolved incidents.
The three API calls are issued concurrently.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	summary, err := client.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch page summary: %w", err)
	}

	fmt.Printf("\n%s", summary.Page.Name)
	if summary.Page.URL != "" {
		fmt.Printf(" (%s)", summary.Page.URL)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 80))

	degraded := summary.DegradedComponents()
	if len(degraded) == 0 {
		fmt.Printf("✓ All %d components operational\n", len(summary.Components))
	} else {
		fmt.Printf("⚠ %d of %d components degraded:\n", len(degraded), len(summary.Components))
		for _, component := range degraded {
			fmt.Printf("  • %s [%s]\n", component.Name, component.Status)
		}
	}

	if len(summary.Unresolved) == 0 {
		fmt.Println("✓ No unresolved incidents")
		return nil
	}

	fmt.Printf("\n%d unresolved incidents:\n", len(summary.Unresolved))
	for _, incident := range summary.Unresolved {
		fmt.Printf("  • %s [%s]", incident.Name, incident.Status)
		if incident.Shortlink != "" {
			fmt.Printf(" %s", incident.Shortlink)
		}
		fmt.Println()
	}

	return nil
}
