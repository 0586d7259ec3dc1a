package commands

import (
	"fmt"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/spf13/cobra"
)

// NewConfirmCmd creates the confirm command
func NewConfirmCmd() *cobra.Command {
	var role, serverAlias string

	cmd := &cobra.Command{
		Use:   "confirm <token>",
		Short: "Confirm a new account with the emailed token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer(serverAlias)
			if err != nil {
				return err
			}

			apiClient := client.New(server.URL)
			if err := apiClient.ConfirmAccount(cmd.Context(), models.ParseRole(role), args[0]); err != nil {
				return err
			}

			fmt.Println("✓ Account confirmed! Run 'agreenbyte login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Account role: admin or agricultor (defaults to admin)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	return cmd
}
