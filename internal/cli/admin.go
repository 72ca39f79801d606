package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/clubroster/internal/config"
	"github.com/mcoot/clubroster/internal/factory"
	"github.com/mcoot/clubroster/internal/services/auth"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Offline administration against the configured storage",
	}

	cmd.AddCommand(newAdminBootstrapCmd())

	return cmd
}

func newAdminBootstrapCmd() *cobra.Command {
	var envFiles []string
	var email, name, password, username string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the first administrator if none exists",
		Long: `bootstrap opens the storage named by the server configuration
(STORAGE_TYPE and friends, read from the environment and --env-file) and
creates an administrator account. It does nothing once any administrator
exists. Flags override the BOOTSTRAP_ADMIN_* variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}

			req := auth.BootstrapRequest{
				Email:    firstNonEmpty(email, appCfg.BootstrapAdmin.Email),
				FullName: firstNonEmpty(name, appCfg.BootstrapAdmin.Name),
				Password: firstNonEmpty(password, appCfg.BootstrapAdmin.Password),
				Username: firstNonEmpty(username, appCfg.BootstrapAdmin.Username),
			}

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: appCfg.LogLevel,
			}))

			app, err := factory.New(factory.ConfigFrom(appCfg, logger))
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer func() { _ = app.Close() }()

			player, created, err := app.AuthService.BootstrapAdmin(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if !created {
				out.PrintMessage("An administrator already exists; nothing to do")
				return nil
			}
			out.PrintMessage(fmt.Sprintf("Administrator %s created (username %s)", player.Email, player.Username))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Env files to read; missing files are skipped")
	cmd.Flags().StringVar(&email, "email", "", "Administrator email (env: BOOTSTRAP_ADMIN_EMAIL)")
	cmd.Flags().StringVar(&name, "name", "", "Administrator full name (env: BOOTSTRAP_ADMIN_NAME)")
	cmd.Flags().StringVar(&password, "password", "", "Administrator password (env: BOOTSTRAP_ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&username, "username", "", "Administrator username (env: BOOTSTRAP_ADMIN_USERNAME)")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
