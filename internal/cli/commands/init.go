package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <backend-url>",
		Short: "Register an Agreenbyte backend in the project config",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	serverURL := config.NormalizeServerURL(args[0])
	if serverURL == "" {
		return fmt.Errorf("backend URL is empty")
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		// Load existing config
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Println("Found existing agreenbyte.json")
	} else {
		// Create new config
		cfg = &config.Config{
			Servers:       []config.Server{},
			PredictionURL: config.DefaultPredictionURL,
		}
		isNewConfig = true
	}

	// Check if server already exists
	serverExists := false
	for _, server := range cfg.Servers {
		if server.URL == serverURL {
			serverExists = true
			break
		}
	}

	if serverExists {
		fmt.Printf("Server %s already exists in agreenbyte.json\n", serverURL)
	} else {
		// Add new server
		alias := "production"
		if len(cfg.Servers) > 0 {
			alias = fmt.Sprintf("server-%d", len(cfg.Servers)+1)
		}

		cfg.Servers = append(cfg.Servers, config.Server{
			URL:   serverURL,
			Alias: alias,
		})

		// Save to file
		if err := config.Save(configPath, cfg); err != nil {
			return err
		}

		if isNewConfig {
			fmt.Printf("✓ Created ./agreenbyte.json with server %s (%s)\n", serverURL, alias)
		} else {
			fmt.Printf("✓ Added server %s (%s) to ./agreenbyte.json\n", serverURL, alias)
		}
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'agreenbyte register' to create an administrator account,")
	fmt.Println("     or 'agreenbyte login' if you already have one")
	fmt.Println("  2. Run 'agreenbyte dashboard' to see your overview")

	return nil
}
