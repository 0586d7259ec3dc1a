package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ArdannyR/agreenbyte-cli/internal/cli/client"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/config"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/forms"
	"github.com/ArdannyR/agreenbyte-cli/internal/cli/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// PredictAPI is the slice of the prediction service client the predict
// commands need
type PredictAPI interface {
	GetFrostAlert(ctx context.Context) (*client.FrostAlert, error)
	PredictTemperature(ctx context.Context, scenario client.TemperatureRequest) (*client.TemperatureResponse, error)
}

// HistoryStore records and replays past prediction runs
type HistoryStore interface {
	Record(p *history.Prediction) error
	Recent(limit int) ([]history.Prediction, error)
}

type predictOptions struct {
	api     PredictAPI
	history HistoryStore
	out     io.Writer
}

// PredictOption overrides a prediction dependency (used in tests)
type PredictOption func(*predictOptions)

// WithPredictAPI injects the prediction service client
func WithPredictAPI(api PredictAPI) PredictOption {
	return func(o *predictOptions) { o.api = api }
}

// WithPredictHistory injects the history store
func WithPredictHistory(store HistoryStore) PredictOption {
	return func(o *predictOptions) { o.history = store }
}

// WithPredictOutput injects the output writer
func WithPredictOutput(w io.Writer) PredictOption {
	return func(o *predictOptions) { o.out = w }
}

// scenarioFile is the YAML shape accepted by 'predict temperature --file'
type scenarioFile struct {
	TempMax float64 `yaml:"temp_max"`
	TempMin float64 `yaml:"temp_min"`
	Lluvia  float64 `yaml:"lluvia"`
	Mes     int     `yaml:"mes"`
}

// NewPredictCmd creates the predict command group. Predictions go to the
// external ML service, not the main backend, and need no session.
func NewPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Frost and temperature predictions from the ML service",
	}

	frostCmd := &cobra.Command{
		Use:   "frost",
		Short: "Automatic frost-risk assessment for your location",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredictFrost(cmd.Context())
		},
	}
	cmd.AddCommand(frostCmd)

	var tempMax, tempMin, lluvia float64
	var mes int
	var file string
	tempCmd := &cobra.Command{
		Use:   "temperature",
		Short: "Predict the minimum temperature for a manual scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := client.TemperatureRequest{
				TempMax: tempMax,
				TempMin: tempMin,
				Lluvia:  lluvia,
				Mes:     mes,
			}
			if file != "" {
				loaded, err := loadScenarioFile(file)
				if err != nil {
					return err
				}
				scenario = *loaded
			}
			return runPredictTemperature(cmd.Context(), scenario)
		},
	}
	tempCmd.Flags().Float64Var(&tempMax, "temp-max", 0, "Today's maximum temperature (°C)")
	tempCmd.Flags().Float64Var(&tempMin, "temp-min", 0, "Today's minimum temperature (°C)")
	tempCmd.Flags().Float64Var(&lluvia, "rain", 0, "Rainfall (mm)")
	tempCmd.Flags().IntVar(&mes, "month", 0, "Month (1-12)")
	tempCmd.Flags().StringVar(&file, "file", "", "Load the scenario from a YAML file instead of flags")
	cmd.AddCommand(tempCmd)

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent prediction runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredictHistory(limit)
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")
	cmd.AddCommand(historyCmd)

	return cmd
}

func loadScenarioFile(path string) (*client.TemperatureRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s scenarioFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	return &client.TemperatureRequest{
		TempMax: s.TempMax,
		TempMin: s.TempMin,
		Lluvia:  s.Lluvia,
		Mes:     s.Mes,
	}, nil
}

func (o *predictOptions) resolve() {
	if o.api == nil {
		predictionURL := config.DefaultPredictionURL
		if cfg, err := config.LoadFromCurrentDir(); err == nil {
			predictionURL = cfg.GetPredictionURL()
		}
		o.api = client.NewPrediction(predictionURL)
	}
}

func runPredictFrost(ctx context.Context, opts ...PredictOption) error {
	o := predictOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	fmt.Fprintln(o.out, "Querying frost-risk prediction...")

	alert, err := o.api.GetFrostAlert(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "\nLocation: %s\n", alert.Ubicacion)
	fmt.Fprintf(o.out, "Today: max %.1f°C, min %.1f°C, rain %.1fmm\n",
		alert.Condiciones.Max, alert.Condiciones.Min, alert.Condiciones.Lluvia)

	if alert.AlertaHelada {
		fmt.Fprintf(o.out, "\n⚠ FROST ALERT: %s\n", alert.Mensaje)
	} else {
		fmt.Fprintf(o.out, "\n✓ No frost risk: %s\n", alert.Mensaje)
	}

	return nil
}

func runPredictTemperature(ctx context.Context, scenario client.TemperatureRequest, opts ...PredictOption) error {
	o := predictOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	form := forms.ScenarioForm{
		TempMax: scenario.TempMax,
		TempMin: scenario.TempMin,
		Lluvia:  scenario.Lluvia,
		Mes:     scenario.Mes,
	}
	if err := forms.Check(form); err != nil {
		return err
	}

	result, err := o.api.PredictTemperature(ctx, scenario)
	if err != nil {
		return err
	}

	frostRisk := result.PrediccionTemperatura <= 0

	fmt.Fprintf(o.out, "Predicted minimum temperature: %.1f°C\n", result.PrediccionTemperatura)
	if frostRisk {
		fmt.Fprintln(o.out, "⚠ Frost risk: predicted minimum is at or below freezing")
	}

	if o.history == nil {
		store, err := history.OpenDefault()
		if err != nil {
			// History is best effort; the prediction result already printed
			fmt.Fprintf(o.out, "warning: could not open prediction history: %v\n", err)
			return nil
		}
		o.history = store
	}

	record := history.Prediction{
		TempMax:       scenario.TempMax,
		TempMin:       scenario.TempMin,
		Lluvia:        scenario.Lluvia,
		Mes:           scenario.Mes,
		PredictedTemp: result.PrediccionTemperatura,
		FrostRisk:     frostRisk,
	}
	if err := o.history.Record(&record); err != nil {
		fmt.Fprintf(o.out, "warning: could not record prediction: %v\n", err)
	}

	return nil
}

func runPredictHistory(limit int, opts ...PredictOption) error {
	o := predictOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.history == nil {
		store, err := history.OpenDefault()
		if err != nil {
			return fmt.Errorf("could not open prediction history: %w", err)
		}
		o.history = store
	}

	runs, err := o.history.Recent(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(o.out, "No prediction runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSCENARIO\tPREDICTED\tFROST")
	fmt.Fprintln(w, "────\t────────\t─────────\t─────")
	for _, r := range runs {
		frost := ""
		if r.FrostRisk {
			frost = "⚠"
		}
		fmt.Fprintf(w, "%s\tmax %.1f°C min %.1f°C rain %.1fmm month %d\t%.1f°C\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.TempMax, r.TempMin, r.Lluvia, r.Mes,
			r.PredictedTemp, frost,
		)
	}
	w.Flush()

	return nil
}
