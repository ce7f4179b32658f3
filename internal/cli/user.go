package cli

import (
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account management commands",
	}

	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserGetCmd())
	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserDeleteCmd())
	cmd.AddCommand(newUserPasswordCmd())
	cmd.AddCommand(newUserColourCmd())
	cmd.AddCommand(newUserGetColourCmd())

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get(apiPath("users"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show account details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get(apiPath("users", args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newUserCreateCmd() *cobra.Command {
	var password, colour, role string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":            args[0],
				"password":        password,
				"preferredColour": colour,
				"role":            role,
			}
			var msg string

			if err := client.Put(apiPath("users", args[0]), req, &msg); err != nil {
				return err
			}

			output(cmd).PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Initial password (required)")
	cmd.Flags().StringVar(&colour, "colour", "#FFFFFF", "Preferred colour as hex string")
	cmd.Flags().StringVar(&role, "role", "ROLE_PLAYER", "Role: ROLE_PLAYER or ROLE_ADMIN")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an account with its tokens, game servers and sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(apiPath("users", args[0])); err != nil {
				return err
			}

			output(cmd).PrintMessage("Deleted " + args[0])
			return nil
		},
	}
}

func newUserPasswordCmd() *cobra.Command {
	var oldPassword, nextPassword string

	cmd := &cobra.Command{
		Use:   "password <name>",
		Short: "Change an account password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"oldPassword":  oldPassword,
				"nextPassword": nextPassword,
			}

			if err := client.Post(apiPath("users", args[0], "password"), req, nil); err != nil {
				return err
			}

			output(cmd).PrintMessage("Password updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "Current password (required)")
	cmd.Flags().StringVar(&nextPassword, "new", "", "New password (required)")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func newUserColourCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colour <name> <hex>",
		Short: "Set the preferred colour",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := Colour{Colour: args[1]}

			if err := client.Post(apiPath("users", args[0], "colour"), req, nil); err != nil {
				return err
			}

			output(cmd).PrintMessage("Colour updated")
			return nil
		},
	}
}

func newUserGetColourCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-colour <name>",
		Short: "Show the preferred colour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Colour

			if err := client.Get(apiPath("users", args[0], "colour"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
