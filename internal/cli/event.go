package cli

import (
	"github.com/spf13/cobra"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Fixture commands",
	}

	cmd.AddCommand(newEventListCmd())
	cmd.AddCommand(newEventAddCmd())

	return cmd
}

func newEventListCmd() *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fixtures with attendance counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			if admin {
				var result EventsResult
				if err := client.Get("/api/admin/events", &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result EventSummariesResult
			if err := client.Get("/api/events", &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&admin, "admin", false, "Use the admin listing without counts")

	return cmd
}

func newEventAddCmd() *cobra.Command {
	var title, category, start, location, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a fixture (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"title":     title,
				"category":  category,
				"startTime": start,
				"location":  location,
			}
			if notes != "" {
				req["notes"] = notes
			}

			var result EventResult
			if err := client.Post("/api/admin/events", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&category, "category", "training", "Category: training, match, tournament, event")
	cmd.Flags().StringVar(&start, "start", "", "Start time, RFC 3339 or YYYY-MM-DDTHH:MM in UTC (required)")
	cmd.Flags().StringVar(&location, "location", "", "Location (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}
