package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"text/tabwriter"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/spf13/cobra"
)

// DashboardAPI is the slice of the API client the dashboard needs
type DashboardAPI interface {
	GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error)
	ListHuertos(ctx context.Context) ([]models.Huerto, error)
	ListAgricultores(ctx context.Context) ([]models.Agricultor, error)
	MyHuertos(ctx context.Context) ([]models.Huerto, error)
}

type dashboardOptions struct {
	api      DashboardAPI
	sessions auth.SessionStore
	server   *config.Server
	out      io.Writer
}

// DashboardOption overrides a dashboard dependency (used in tests)
type DashboardOption func(*dashboardOptions)

// WithDashboardAPI injects the API client
func WithDashboardAPI(api DashboardAPI) DashboardOption {
	return func(o *dashboardOptions) { o.api = api }
}

// WithDashboardSessionStore injects the session store
func WithDashboardSessionStore(store auth.SessionStore) DashboardOption {
	return func(o *dashboardOptions) { o.sessions = store }
}

// WithDashboardServer injects the resolved server
func WithDashboardServer(server *config.Server) DashboardOption {
	return func(o *dashboardOptions) { o.server = server }
}

// WithDashboardOutput injects the output writer
func WithDashboardOutput(w io.Writer) DashboardOption {
	return func(o *dashboardOptions) { o.out = w }
}

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	var serverAlias string
	var web bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show your dashboard (view depends on your role)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), serverAlias, web)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")
	cmd.Flags().BoolVar(&web, "web", false, "Open the web dashboard in the browser instead")

	return cmd
}

// runDashboard resolves the session, then dispatches on the stored role.
// Administrators get the management overview, farmers get their assigned
// gardens with live sensor readings.
func runDashboard(ctx context.Context, serverAlias string, web bool, opts ...DashboardOption) error {
	o := dashboardOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return err
		}
		o.server = server
	}

	if o.api == nil {
		c := client.New(o.server.URL)
		if o.sessions != nil {
			c.SetSessionStore(o.sessions)
		}
		o.api = c
	}

	user, err := requireUser(ctx, o.server, o.sessions, o.api)
	if err != nil {
		return err
	}

	if web {
		fmt.Fprintf(o.out, "Opening web dashboard for %s...\n", o.server.Alias)
		fmt.Fprintf(o.out, "URL: %s\n", o.server.URL)
		if err := openBrowser(o.server.URL); err != nil {
			return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, o.server.URL)
		}
		return nil
	}

	switch user.Role {
	case models.RoleAgricultor:
		return renderFarmerDashboard(ctx, &o, user)
	default:
		return renderAdminDashboard(ctx, &o, user)
	}
}

func renderAdminDashboard(ctx context.Context, o *dashboardOptions, user *models.Usuario) error {
	fmt.Fprintf(o.out, "Welcome back, %s (administrator)\n\n", user.Nombre)

	huertos, err := o.api.ListHuertos(ctx)
	if err != nil {
		return err
	}
	agricultores, err := o.api.ListAgricultores(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "Gardens: %d    Farmers: %d\n\n", len(huertos), len(agricultores))

	if len(huertos) == 0 {
		fmt.Fprintln(o.out, "No gardens yet. Create one with: agreenbyte huertos create")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GARDEN\tLOCATION\tCROP\tTEMP\tHUMIDITY\tFARMERS")
	fmt.Fprintln(w, "──────\t────────\t────\t────\t────────\t───────")
	for _, h := range huertos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			h.Nombre,
			h.Ubicacion,
			h.TipoCultivo,
			formatReading(h.Temperatura, "°C"),
			formatReading(h.Humedad, "%"),
			len(h.Agricultores),
		)
	}
	w.Flush()

	return nil
}

func renderFarmerDashboard(ctx context.Context, o *dashboardOptions, user *models.Usuario) error {
	fmt.Fprintf(o.out, "Welcome back, %s (farmer)\n\n", user.Nombre)

	huertos, err := o.api.MyHuertos(ctx)
	if err != nil {
		return err
	}

	if len(huertos) == 0 {
		fmt.Fprintln(o.out, "You have no gardens assigned yet. Ask your administrator to assign you.")
		return nil
	}

	fmt.Fprintf(o.out, "Your gardens (%d):\n\n", len(huertos))

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GARDEN\tLOCATION\tCROP\tTEMP\tHUMIDITY")
	fmt.Fprintln(w, "──────\t────────\t────\t────\t────────")
	for _, h := range huertos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			h.Nombre,
			h.Ubicacion,
			h.TipoCultivo,
			formatReading(h.Temperatura, "°C"),
			formatReading(h.Humedad, "%"),
		)
	}
	w.Flush()

	for _, h := range huertos {
		if hint := careHint(h); hint != "" {
			fmt.Fprintf(o.out, "\n⚠ %s: %s\n", h.Nombre, hint)
		}
	}

	return nil
}

// formatReading renders a sensor value; zero means no reading yet
func formatReading(v float64, unit string) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}

// careHint flags sensor readings that need attention
func careHint(h models.Huerto) string {
	if h.Temperatura != 0 && h.Temperatura <= 2 {
		return fmt.Sprintf("temperature at %.1f°C, frost risk for %s", h.Temperatura, h.TipoCultivo)
	}
	if h.Humedad != 0 && h.Humedad < 30 {
		return fmt.Sprintf("humidity at %.0f%%, consider watering", h.Humedad)
	}
	return ""
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
