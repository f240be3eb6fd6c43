package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/quizbingo/internal/api/request"
	"github.com/mcoot/quizbingo/internal/api/response"
)

func newHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Host authentication commands",
	}

	cmd.AddCommand(newHostLoginCmd())
	cmd.AddCommand(newHostLogoutCmd())

	return cmd
}

func newHostLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as host and save the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("QBINGO_HOST_PASSWORD")
			}
			if password == "" {
				return fmt.Errorf("--password is required")
			}

			var result response.HostSession

			if err := client.Post("/api/v1/host/login", request.HostLoginRequest{Password: password}, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Host password (env: QBINGO_HOST_PASSWORD)")

	return cmd
}

func newHostLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the host session and forget the saved token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Message

			if err := client.Post("/api/v1/host/logout", nil, &result); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
