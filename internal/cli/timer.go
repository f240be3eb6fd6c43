package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/quizbingo/internal/api/response"
)

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Countdown timer commands",
	}

	cmd.AddCommand(newTimerRequestCmd("get", "Show the countdown", false))
	cmd.AddCommand(newTimerRequestCmd("start", "Restart the countdown from its full duration", true))
	cmd.AddCommand(newTimerRequestCmd("stop", "Stop the countdown", true))

	return cmd
}

func newTimerRequestCmd(action, short string, post bool) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Timer

			var err error
			if post {
				err = client.Post("/api/v1/timer/"+action, nil, &result)
			} else {
				err = client.Get("/api/v1/timer", &result)
			}
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
