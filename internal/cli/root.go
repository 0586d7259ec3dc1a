package cli

import (
	"fmt"
	"os"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/commands"
	"github.com/ArdannyR/agreenbyte-cli/internal/logger"
	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "agreenbyte",
	Short: "Agreenbyte - Smart monitoring for high-yield crops",
	Long: `Agreenbyte CLI - Manage your gardens and sensor dashboards from the terminal.

Administrators manage gardens (huertos) and farmer accounts; farmers view
sensor dashboards for the gardens assigned to them. The prediction module
queries the frost-risk prediction service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitFromEnv()
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agreenbyte version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewConfirmCmd())
	rootCmd.AddCommand(commands.NewForgotPasswordCmd())
	rootCmd.AddCommand(commands.NewResetPasswordCmd())
	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
	rootCmd.AddCommand(commands.NewDashboardCmd())
	rootCmd.AddCommand(commands.NewHuertosCmd())
	rootCmd.AddCommand(commands.NewAgricultoresCmd())
	rootCmd.AddCommand(commands.NewPredictCmd())
	rootCmd.AddCommand(commands.NewPlantsCmd())
	rootCmd.AddCommand(commands.NewSelectServerCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
