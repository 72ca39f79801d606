package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an email address or username",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, result, err := client.Login(identifier, password)
			if err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(*result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "identifier", "u", "", "Email or username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = cmd.MarkFlagRequired("identifier")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/auth/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Signed out")
			return nil
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your profile and attendance history",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MeResult

			if err := client.Get("/api/auth/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
