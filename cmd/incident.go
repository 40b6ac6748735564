package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/al26p/statusctl/filter"
	"github.com/al26p/statusctl/statuspage"
)

var (
	incidentFilter     string
	incidentUnresolved bool
	incidentScheduled  bool
	incidentName       string
	incidentStatus     string
	incidentImpact     string
	incidentBody       string
	incidentComponents []string
)

// incidentCmd groups the incident management subcommands
var incidentCmd = &cobra.Command{
	Use:   "incident",
	Short: "Manage page incidents",
}

var incidentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List incidents on the page",
	RunE:  runIncidentList,
}

var incidentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new incident",
	RunE:  runIncidentCreate,
}

var incidentUpdateCmd = &cobra.Command{
	Use:   "update <incident-id>",
	Short: "Update an existing incident",
	Long: `Update an existing incident, typically to advance its status and
append a progress update to its history.`,
	Args: cobra.ExactArgs(1),
	RunE: runIncidentUpdate,
}

var incidentDeleteCmd = &cobra.Command{
	Use:   "delete <incident-id>",
	Short: "Delete an incident",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncidentDelete,
}

func init() {
	rootCmd.AddCommand(incidentCmd)
	incidentCmd.AddCommand(incidentListCmd, incidentCreateCmd, incidentUpdateCmd, incidentDeleteCmd)

	incidentListCmd.Flags().StringVarP(&incidentFilter, "filter", "f", "", "filter expression, e.g. 'Incident.Impact == \"major\"'")
	incidentListCmd.Flags().BoolVar(&incidentUnresolved, "unresolved", false, "only list unresolved incidents")
	incidentListCmd.Flags().BoolVar(&incidentScheduled, "scheduled", false, "only list scheduled maintenances")
	incidentListCmd.MarkFlagsMutuallyExclusive("unresolved", "scheduled")

	incidentCreateCmd.Flags().StringVar(&incidentName, "name", "", "incident name (required)")
	incidentCreateCmd.Flags().StringVar(&incidentStatus, "status", "investigating", "incident status")
	incidentCreateCmd.Flags().StringVar(&incidentImpact, "impact", "", "impact override (none/minor/major/critical)")
	incidentCreateCmd.Flags().StringVar(&incidentBody, "body", "", "initial update body")
	incidentCreateCmd.Flags().StringSliceVar(&incidentComponents, "components", nil, "affected component IDs")
	incidentCreateCmd.MarkFlagRequired("name")

	incidentUpdateCmd.Flags().StringVar(&incidentStatus, "status", "", "new incident status")
	incidentUpdateCmd.Flags().StringVar(&incidentBody, "body", "", "update body")
}

func runIncidentList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var incidents []statuspage.Incident
	var err error
	switch {
	case incidentUnresolved:
		incidents, err = client.ListUnresolvedIncidents(ctx)
	case incidentScheduled:
		incidents, err = client.ListScheduledIncidents(ctx)
	default:
		incidents, err = client.ListIncidents(ctx)
	}
	if err != nil {
		return err
	}

	if incidentFilter != "" {
		f, err := filter.Compile(incidentFilter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		incidents, err = filterIncidents(incidents, f)
		if err != nil {
			return err
		}
	}

	if len(incidents) == 0 {
		fmt.Println("No incidents found.")
		return nil
	}

	fmt.Printf("\nFound %d incidents:\n", len(incidents))
	fmt.Println(strings.Repeat("-", 80))

	for _, incident := range incidents {
		fmt.Printf("• %s [%s]", incident.Name, incident.Status)
		if incident.Impact != "" && incident.Impact != statuspage.ImpactNone {
			fmt.Printf(" (%s impact)", incident.Impact)
		}
		fmt.Println()
		fmt.Printf("  ID: %s\n", incident.ID)
		fmt.Printf("  Created: %s\n", incident.CreatedAt.Format("2006-01-02 15:04"))
		if len(incident.IncidentUpdates) > 0 {
			latest := incident.IncidentUpdates[0]
			fmt.Printf("  Latest update: %s\n", latest.Body)
		}
	}

	return nil
}

func filterIncidents(incidents []statuspage.Incident, f *filter.Filter) ([]statuspage.Incident, error) {
	var matched []statuspage.Incident
	for _, incident := range incidents {
		ok, err := f.Match("Incident", incident)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, incident)
		}
	}
	return matched, nil
}

func runIncidentCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	incident, err := client.CreateIncident(ctx, statuspage.IncidentParams{
		Name:           incidentName,
		Status:         statuspage.IncidentStatus(incidentStatus),
		ImpactOverride: statuspage.IncidentImpact(incidentImpact),
		Body:           incidentBody,
		ComponentIDs:   incidentComponents,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Opened incident %s (ID: %s)\n", incident.Name, incident.ID)
	if incident.Shortlink != "" {
		fmt.Printf("  %s\n", incident.Shortlink)
	}
	return nil
}

func runIncidentUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	incident, err := client.UpdateIncident(ctx, args[0], statuspage.IncidentParams{
		Status: statuspage.IncidentStatus(incidentStatus),
		Body:   incidentBody,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Updated incident %s [%s]\n", incident.Name, incident.Status)
	return nil
}

func runIncidentDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := client.DeleteIncident(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted incident %s\n", args[0])
	return nil
}
