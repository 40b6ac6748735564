package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/al26p/statusctl/statuspage"
)

var (
	subscriberEmail    string
	subscriberPhone    string
	subscriberCountry  string
	subscriberEndpoint string
)

// subscriberCmd groups the subscriber management subcommands
var subscriberCmd = &cobra.Command{
	Use:   "subscriber",
	Short: "Manage page subscribers",
}

var subscriberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribers on the page",
	RunE:  runSubscriberList,
}

var subscriberCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Subscribe an email, phone number or webhook endpoint",
	RunE:  runSubscriberCreate,
}

var subscriberDeleteCmd = &cobra.Command{
	Use:   "delete <subscriber-id>",
	Short: "Remove a subscriber",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscriberDelete,
}

func init() {
	rootCmd.AddCommand(subscriberCmd)
	subscriberCmd.AddCommand(subscriberListCmd, subscriberCreateCmd, subscriberDeleteCmd)

	subscriberCreateCmd.Flags().StringVar(&subscriberEmail, "email", "", "email address to subscribe")
	subscriberCreateCmd.Flags().StringVar(&subscriberPhone, "phone", "", "phone number to subscribe")
	subscriberCreateCmd.Flags().StringVar(&subscriberCountry, "country", "us", "phone country code")
	subscriberCreateCmd.Flags().StringVar(&subscriberEndpoint, "endpoint", "", "webhook endpoint to subscribe")
	subscriberCreateCmd.MarkFlagsOneRequired("email", "phone", "endpoint")
	subscriberCreateCmd.MarkFlagsMutuallyExclusive("email", "phone", "endpoint")
}

func runSubscriberList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	subscribers, err := client.ListSubscribers(ctx)
	if err != nil {
		return err
	}

	if len(subscribers) == 0 {
		fmt.Println("No subscribers found.")
		return nil
	}

	fmt.Printf("\nFound %d subscribers:\n", len(subscribers))
	fmt.Println(strings.Repeat("-", 80))

	for _, subscriber := range subscribers {
		fmt.Printf("• %s", subscriber.Address())
		if subscriber.QuarantinedAt != nil {
			fmt.Printf(" [QUARANTINED]")
		}
		fmt.Println()
		fmt.Printf("  ID: %s\n", subscriber.ID)
	}

	return nil
}

func runSubscriberCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	params := statuspage.SubscriberParams{
		Email:    subscriberEmail,
		Endpoint: subscriberEndpoint,
	}
	if subscriberPhone != "" {
		params.PhoneNumber = subscriberPhone
		params.PhoneCountry = subscriberCountry
	}

	subscriber, err := client.CreateSubscriber(ctx, params)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Subscribed %s (ID: %s)\n", subscriber.Address(), subscriber.ID)
	return nil
}

func runSubscriberDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := client.DeleteSubscriber(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted subscriber %s\n", args[0])
	return nil
}
