package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/auth"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/forms"
	"github.com/ArdannyR/agreenbyte-cli/internal/models"
	"github.com/spf13/cobra"
)

// HuertosAPI is the slice of the API client the garden commands need
type HuertosAPI interface {
	GetProfile(ctx context.Context, role models.Role) (*models.Usuario, error)
	ListHuertos(ctx context.Context) ([]models.Huerto, error)
	CreateHuerto(ctx context.Context, req client.CreateHuertoRequest) (*models.Huerto, error)
	UpdateHuerto(ctx context.Context, huertoID string, req client.UpdateHuertoRequest) (*models.Huerto, error)
	DeleteHuerto(ctx context.Context, huertoID string) error
	AssignAgricultor(ctx context.Context, huertoID, email string) error
	RemoveAgricultor(ctx context.Context, huertoID, agricultorID string) error
}

type huertosOptions struct {
	api      HuertosAPI
	sessions auth.SessionStore
	server   *config.Server
	out      io.Writer
}

// HuertosOption overrides a garden command dependency (used in tests)
type HuertosOption func(*huertosOptions)

// WithHuertosAPI injects the API client
func WithHuertosAPI(api HuertosAPI) HuertosOption {
	return func(o *huertosOptions) { o.api = api }
}

// WithHuertosSessionStore injects the session store
func WithHuertosSessionStore(store auth.SessionStore) HuertosOption {
	return func(o *huertosOptions) { o.sessions = store }
}

// WithHuertosServer injects the resolved server
func WithHuertosServer(server *config.Server) HuertosOption {
	return func(o *huertosOptions) { o.server = server }
}

// WithHuertosOutput injects the output writer
func WithHuertosOutput(w io.Writer) HuertosOption {
	return func(o *huertosOptions) { o.out = w }
}

// NewHuertosCmd creates the huertos command group (administrator only)
func NewHuertosCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:     "huertos",
		Aliases: []string{"gardens"},
		Short:   "Manage gardens (administrator only)",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias (uses selected server if not specified)")

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all gardens",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHuertosList(cmd.Context(), serverAlias)
		},
	}
	cmd.AddCommand(listCmd)

	var nombre, ubicacion, cultivo, dispositivo string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new garden bound to an IoT device",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := forms.HuertoForm{
				Nombre:            nombre,
				Ubicacion:         ubicacion,
				TipoCultivo:       cultivo,
				CodigoDispositivo: dispositivo,
			}
			return runHuertosCreate(cmd.Context(), serverAlias, form)
		},
	}
	createCmd.Flags().StringVar(&nombre, "name", "", "Garden name")
	createCmd.Flags().StringVar(&ubicacion, "location", "", "Garden location")
	createCmd.Flags().StringVar(&cultivo, "crop", "", "Crop type")
	createCmd.Flags().StringVar(&dispositivo, "device", "", "IoT device code")
	cmd.AddCommand(createCmd)

	var upNombre, upUbicacion, upCultivo string
	updateCmd := &cobra.Command{
		Use:   "update <garden-name>",
		Short: "Update a garden's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHuertosUpdate(cmd.Context(), serverAlias, args[0], upNombre, upUbicacion, upCultivo)
		},
	}
	updateCmd.Flags().StringVar(&upNombre, "name", "", "New garden name")
	updateCmd.Flags().StringVar(&upUbicacion, "location", "", "New location")
	updateCmd.Flags().StringVar(&upCultivo, "crop", "", "New crop type")
	cmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:     "rm <garden-name>",
		Aliases: []string{"delete"},
		Short:   "Delete a garden",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHuertosDelete(cmd.Context(), serverAlias, args[0])
		},
	}
	cmd.AddCommand(deleteCmd)

	assignCmd := &cobra.Command{
		Use:   "assign <garden-name> <farmer-email>",
		Short: "Assign a farmer to a garden",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHuertosAssign(cmd.Context(), serverAlias, args[0], args[1])
		},
	}
	cmd.AddCommand(assignCmd)

	unassignCmd := &cobra.Command{
		Use:   "unassign <garden-name> <farmer-email>",
		Short: "Remove a farmer from a garden",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHuertosUnassign(cmd.Context(), serverAlias, args[0], args[1])
		},
	}
	cmd.AddCommand(unassignCmd)

	return cmd
}

func (o *huertosOptions) resolve(serverAlias string) error {
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

	return nil
}

// requireAdmin gates garden management one level deeper than the session
// gate: farmers have sessions too, but only administrators manage gardens.
func (o *huertosOptions) requireAdmin(ctx context.Context) (*models.Usuario, error) {
	user, err := requireUser(ctx, o.server, o.sessions, o.api)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAgricultor {
		return nil, fmt.Errorf("garden management requires an administrator account")
	}
	return user, nil
}

func runHuertosList(ctx context.Context, serverAlias string, opts ...HuertosOption) error {
	o := huertosOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	huertos, err := o.api.ListHuertos(ctx)
	if err != nil {
		return err
	}

	renderHuertos(o.out, o.server, huertos)
	return nil
}

func renderHuertos(out io.Writer, server *config.Server, huertos []models.Huerto) {
	if len(huertos) == 0 {
		fmt.Fprintln(out, "No gardens found.")
		fmt.Fprintln(out, "\nCreate one with: agreenbyte huertos create --name <name> --location <location> --crop <crop> --device <code>")
		return
	}

	fmt.Fprintf(out, "Gardens on %s (%s):\n\n", server.Alias, server.URL)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLOCATION\tCROP\tDEVICE\tFARMERS")
	fmt.Fprintln(w, "────\t────────\t────\t──────\t───────")

	for _, h := range huertos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			h.Nombre,
			h.Ubicacion,
			h.TipoCultivo,
			h.CodigoDispositivo,
			len(h.Agricultores),
		)
	}

	w.Flush()
}

func runHuertosCreate(ctx context.Context, serverAlias string, form forms.HuertoForm, opts ...HuertosOption) error {
	o := huertosOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	// Validate before issuing any request
	if err := forms.Check(form); err != nil {
		return err
	}

	huerto, err := o.api.CreateHuerto(ctx, client.CreateHuertoRequest{
		Nombre:            form.Nombre,
		Ubicacion:         form.Ubicacion,
		TipoCultivo:       form.TipoCultivo,
		CodigoDispositivo: form.CodigoDispositivo,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Garden '%s' created\n\n", huerto.Nombre)

	// Show the refreshed list with the new garden included
	huertos, err := o.api.ListHuertos(ctx)
	if err != nil {
		return err
	}
	renderHuertos(o.out, o.server, huertos)

	return nil
}

func runHuertosUpdate(ctx context.Context, serverAlias, name, newName, newLocation, newCrop string, opts ...HuertosOption) error {
	o := huertosOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	huerto, err := findHuertoByName(ctx, o.api, name)
	if err != nil {
		return err
	}

	req := client.UpdateHuertoRequest{
		Nombre:      huerto.Nombre,
		Ubicacion:   huerto.Ubicacion,
		TipoCultivo: huerto.TipoCultivo,
	}
	if newName != "" {
		req.Nombre = newName
	}
	if newLocation != "" {
		req.Ubicacion = newLocation
	}
	if newCrop != "" {
		req.TipoCultivo = newCrop
	}

	updated, err := o.api.UpdateHuerto(ctx, huerto.ID, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Garden '%s' updated\n", updated.Nombre)
	return nil
}

func runHuertosDelete(ctx context.Context, serverAlias, name string, opts ...HuertosOption) error {
	o := huertosOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	huerto, err := findHuertoByName(ctx, o.api, name)
	if err != nil {
		return err
	}

	if err := o.api.DeleteHuerto(ctx, huerto.ID); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Garden '%s' deleted\n", name)
	return nil
}

func runHuertosAssign(ctx context.Context, serverAlias, name, email string, opts ...HuertosOption) error {
	o := huertosOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	huerto, err := findHuertoByName(ctx, o.api, name)
	if err != nil {
		return err
	}

	if err := o.api.AssignAgricultor(ctx, huerto.ID, email); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Assigned %s to garden '%s'\n", email, name)
	return nil
}

func runHuertosUnassign(ctx context.Context, serverAlias, name, email string, opts ...HuertosOption) error {
	o := huertosOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(serverAlias); err != nil {
		return err
	}
	if _, err := o.requireAdmin(ctx); err != nil {
		return err
	}

	huerto, err := findHuertoByName(ctx, o.api, name)
	if err != nil {
		return err
	}

	// Resolve the farmer ID from the garden's assignment list
	var agricultorID string
	for _, a := range huerto.Agricultores {
		if a.Email == email {
			agricultorID = a.ID
			break
		}
	}
	if agricultorID == "" {
		return fmt.Errorf("farmer '%s' is not assigned to garden '%s'", email, name)
	}

	if err := o.api.RemoveAgricultor(ctx, huerto.ID, agricultorID); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Removed %s from garden '%s'\n", email, name)
	return nil
}

// findHuertoByName lists gardens and returns the one with a matching name
func findHuertoByName(ctx context.Context, api HuertosAPI, name string) (*models.Huerto, error) {
	huertos, err := api.ListHuertos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gardens: %w", err)
	}

	for i := range huertos {
		if huertos[i].Nombre == name {
			return &huertos[i], nil
		}
	}

	return nil, fmt.Errorf("garden '%s' not found", name)
}
