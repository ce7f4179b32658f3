package cli

import (
	"github.com/spf13/cobra"
)

func newGameServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gameservice",
		Aliases: []string{"gs"},
		Short:   "Game server registry commands",
	}

	cmd.AddCommand(newGameServiceListCmd())
	cmd.AddCommand(newGameServiceGetCmd())
	cmd.AddCommand(newGameServiceRegisterCmd())
	cmd.AddCommand(newGameServiceUnregisterCmd())

	return cmd
}

func newGameServiceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered game servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameServer

			if err := client.Get(apiPath("gameservices"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGameServiceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a game server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameServer

			if err := client.Get(apiPath("gameservices", args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGameServiceRegisterCmd() *cobra.Command {
	var req GameServer

	cmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Register a game server owned by the caller (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name = args[0]
			var result GameServer

			if err := client.Put(apiPath("gameservices", args[0]), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Location, "location", "", "Base URL of the game server (required)")
	cmd.Flags().StringVar(&req.DisplayName, "display-name", "", "Human readable name")
	cmd.Flags().IntVar(&req.MinPlayers, "min-players", 1, "Players needed to launch")
	cmd.Flags().IntVar(&req.MaxPlayers, "max-players", 4, "Players allowed per session")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

func newGameServiceUnregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <name>",
		Short: "Unregister a game server and drop its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(apiPath("gameservices", args[0])); err != nil {
				return err
			}

			output(cmd).PrintMessage("Unregistered " + args[0])
			return nil
		},
	}
}
