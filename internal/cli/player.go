package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Roster management commands (admin)",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerDeleteCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayersResult

			if err := client.Get("/api/admin/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerAddCmd() *cobra.Command {
	var name, email, position, username string
	var admin bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player and print their temporary password",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"fullName": name,
				"email":    email,
				"position": position,
			}
			if username != "" {
				req["username"] = username
			}
			if admin {
				req["isAdmin"] = true
			}

			var result CreatePlayerResult
			if err := client.Post("/api/admin/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&position, "position", "", "Playing position (required)")
	cmd.Flags().StringVar(&username, "username", "", "Username (derived from the name if omitted)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant administrator access")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("position")

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a player and their attendance records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/admin/players/"+url.PathEscape(args[0]), nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Player %s removed", args[0]))
			return nil
		},
	}
}
