package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Lobby session commands",
	}

	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionJoinCmd())
	cmd.AddCommand(newSessionLeaveCmd())
	cmd.AddCommand(newSessionLaunchCmd())

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Session

			if err := client.Get(apiPath("sessions"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <gameservice>",
		Short: "Create a session and join it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"gameServer": args[0]}
			var result Session

			if err := client.Post(apiPath("sessions"), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get(apiPath("sessions", args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newSessionJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := whoami()
			if err != nil {
				return err
			}

			if err := client.Put(apiPath("sessions", args[0], "players", name), nil, nil); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Joined session %s", args[0]))
			return nil
		},
	}
}

func newSessionLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <id>",
		Short: "Leave a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := whoami()
			if err != nil {
				return err
			}

			if err := client.Delete(apiPath("sessions", args[0], "players", name)); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Left session %s", args[0]))
			return nil
		},
	}
}

func newSessionLaunchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch <id>",
		Short: "Launch a session you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(apiPath("sessions", args[0], "launch"), nil, nil); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Launched session %s", args[0]))
			return nil
		},
	}
}

// whoami resolves the name behind the current token
func whoami() (string, error) {
	var roles Roles
	if err := client.Get(apiPath("tokens", "role"), &roles); err != nil {
		return "", err
	}
	return roles.Name, nil
}
