package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance commands (admin)",
	}

	cmd.AddCommand(newAttendanceShowCmd())
	cmd.AddCommand(newAttendanceRecordCmd())

	return cmd
}

func newAttendanceShowCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recorded attendance for a fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AttendanceResult

			path := "/api/admin/attendance?eventId=" + url.QueryEscape(eventID)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Event ID (required)")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func newAttendanceRecordCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "record <player-id>=<status>...",
		Short: "Record present, absent or late for several players at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := parseAttendanceArgs(args)
			if err != nil {
				return err
			}

			req := map[string]any{
				"eventId": eventID,
				"records": records,
			}

			var result RecordResult
			if err := client.Post("/api/admin/attendance", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Event ID (required)")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

// parseAttendanceArgs turns player=status pairs into request records.
// Statuses are passed through as given; the server drops invalid ones.
func parseAttendanceArgs(pairs []string) ([]map[string]string, error) {
	records := make([]map[string]string, 0, len(pairs))
	for _, pair := range pairs {
		playerID, status, ok := strings.Cut(pair, "=")
		if !ok || playerID == "" || status == "" {
			return nil, fmt.Errorf("invalid attendance %q, expected <player-id>=<status>", pair)
		}
		records = append(records, map[string]string{
			"playerId": playerID,
			"status":   strings.ToLower(status),
		})
	}
	return records, nil
}
