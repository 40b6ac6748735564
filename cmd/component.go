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
	componentFilter      string
	componentName        string
	componentDescription string
	componentStatus      string
	componentGroupID     string
)

// componentCmd groups the component management subcommands
var componentCmd = &cobra.Command{
	Use:   "component",
	Short: "Manage page components",
}

var componentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List components on the page",
	RunE:  runComponentList,
}

var componentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new component",
	RunE:  runComponentCreate,
}

var componentUpdateCmd = &cobra.Command{
	Use:   "update <component-id>",
	Short: "Update an existing component",
	Args:  cobra.ExactArgs(1),
	RunE:  runComponentUpdate,
}

var componentDeleteCmd = &cobra.Command{
	Use:   "delete <component-id>",
	Short: "Delete a component",
	Args:  cobra.ExactArgs(1),
	RunE:  runComponentDelete,
}

func init() {
	rootCmd.AddCommand(componentCmd)
	componentCmd.AddCommand(componentListCmd, componentCreateCmd, componentUpdateCmd, componentDeleteCmd)

	componentListCmd.Flags().StringVarP(&componentFilter, "filter", "f", "", "filter expression, e.g. 'Component.Status != \"operational\"'")

	componentCreateCmd.Flags().StringVar(&componentName, "name", "", "component name (required)")
	componentCreateCmd.Flags().StringVar(&componentDescription, "description", "", "component description")
	componentCreateCmd.Flags().StringVar(&componentStatus, "status", "operational", "component status")
	componentCreateCmd.Flags().StringVar(&componentGroupID, "group", "", "component group ID")
	componentCreateCmd.MarkFlagRequired("name")

	componentUpdateCmd.Flags().StringVar(&componentName, "name", "", "new component name")
	componentUpdateCmd.Flags().StringVar(&componentDescription, "description", "", "new component description")
	componentUpdateCmd.Flags().StringVar(&componentStatus, "status", "", "new component status")
}

func runComponentList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	components, err := client.ListComponents(ctx)
	if err != nil {
		return err
	}

	if componentFilter != "" {
		f, err := filter.Compile(componentFilter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		components, err = filterComponents(components, f)
		if err != nil {
			return err
		}
	}

	if len(components) == 0 {
		fmt.Println("No components found.")
		return nil
	}

	fmt.Printf("\nFound %d components:\n", len(components))
	fmt.Println(strings.Repeat("-", 80))

	for _, component := range components {
		fmt.Printf("• %s [%s]\n", component.Name, component.Status)
		fmt.Printf("  ID: %s\n", component.ID)
		if component.Description != "" {
			fmt.Printf("  Description: %s\n", component.Description)
		}
	}

	return nil
}

func filterComponents(components []statuspage.Component, f *filter.Filter) ([]statuspage.Component, error) {
	var matched []statuspage.Component
	for _, component := range components {
		ok, err := f.Match("Component", component)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, component)
		}
	}
	return matched, nil
}

func runComponentCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	component, err := client.CreateComponent(ctx, statuspage.ComponentParams{
		Name:        componentName,
		Description: componentDescription,
		Status:      statuspage.ComponentStatus(componentStatus),
		GroupID:     componentGroupID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created component %s (ID: %s)\n", component.Name, component.ID)
	return nil
}

func runComponentUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	component, err := client.UpdateComponent(ctx, args[0], statuspage.ComponentParams{
		Name:        componentName,
		Description: componentDescription,
		Status:      statuspage.ComponentStatus(componentStatus),
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Updated component %s [%s]\n", component.Name, component.Status)
	return nil
}

func runComponentDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := client.DeleteComponent(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted component %s\n", args[0])
	return nil
}
