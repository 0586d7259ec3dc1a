package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/spf13/cobra"
)

// PlantsAPI is the plant species search client
type PlantsAPI interface {
	SearchPlants(ctx context.Context, query string) ([]client.Plant, error)
}

type plantsOptions struct {
	api PlantsAPI
	out io.Writer
}

// PlantsOption overrides a plant search dependency (used in tests)
type PlantsOption func(*plantsOptions)

// WithPlantsAPI injects the plant species client
func WithPlantsAPI(api PlantsAPI) PlantsOption {
	return func(o *plantsOptions) { o.api = api }
}

// WithPlantsOutput injects the output writer
func WithPlantsOutput(w io.Writer) PlantsOption {
	return func(o *plantsOptions) { o.out = w }
}

// NewPlantsCmd creates the plants command
func NewPlantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plants <query>",
		Short: "Search the plant species database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlantsSearch(cmd.Context(), strings.Join(args, " "))
		},
	}

	return cmd
}

func runPlantsSearch(ctx context.Context, query string, opts ...PlantsOption) error {
	o := plantsOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.api == nil {
		cfg, err := config.LoadFromCurrentDir()
		if err != nil {
			return fmt.Errorf("failed to load config: %w\nRun 'agreenbyte init' to create a configuration file", err)
		}
		if cfg.PlantAPIKey == "" {
			return fmt.Errorf("no plant API key configured. Add \"plantApiKey\" to agreenbyte.json")
		}
		o.api = client.NewPlants("", cfg.PlantAPIKey)
	}

	plants, err := o.api.SearchPlants(ctx, query)
	if err != nil {
		return err
	}

	if len(plants) == 0 {
		fmt.Fprintf(o.out, "No species found for '%s'.\n", query)
		return nil
	}

	fmt.Fprintf(o.out, "Species matching '%s':\n\n", query)

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMMON NAME\tSCIENTIFIC NAME\tCYCLE\tWATERING\tSUNLIGHT")
	fmt.Fprintln(w, "───────────\t───────────────\t─────\t────────\t────────")
	for _, p := range plants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.CommonName,
			strings.Join(p.ScientificName, ", "),
			p.Cycle,
			p.Watering,
			strings.Join(p.Sunlight, ", "),
		)
	}
	w.Flush()

	return nil
}
