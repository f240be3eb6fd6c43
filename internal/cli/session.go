package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/quizbingo/internal/api/request"
	"github.com/mcoot/quizbingo/internal/api/response"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Game session commands",
	}

	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionSelectCmd())
	cmd.AddCommand(newSessionAnswerCmd())
	cmd.AddCommand(newSessionActionCmd("close", "Close the presented quiz without answering"))
	cmd.AddCommand(newSessionActionCmd("dismiss", "Clear the bingo or reach announcement"))
	cmd.AddCommand(newSessionActionCmd("reset", "Start a new game (host only)"))

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the board, scores and current turn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <panel>",
		Short: "Present the quiz behind a panel to the current team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := strconv.Atoi(args[0])
			if err != nil || panel < 0 {
				return fmt.Errorf("panel must be a non-negative number")
			}

			var result response.ActionResponse

			if err := client.Post(fmt.Sprintf("/api/v1/session/panels/%d/select", panel), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <choice>",
		Short: "Submit the current team's answer to the presented quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("choice must be a number")
			}

			var result response.ActionResponse

			if err := client.Post("/api/v1/session/answer", request.AnswerRequest{Choice: &choice}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

// newSessionActionCmd builds a command for a body-less session action
func newSessionActionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ActionResponse

			if err := client.Post("/api/v1/session/"+action, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
