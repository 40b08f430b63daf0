package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurantops/internal/adapters/out/mockdata"
	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// NewRootCommand builds the restaurantops CLI. Output of the metrics, probe
// and seed commands goes to out; logs go to stderr.
func NewRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "restaurantops",
		Short:         "Restaurant order, delivery and reservation workflow engine",
		Long:          `restaurantops drives orders, delivery assignments and reservations through their status workflows against the restaurant backend, falling back to a built-in dataset when the backend is unreachable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("backend-url", "", "restaurant backend base URL")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("backend_url", root.PersistentFlags().Lookup("backend-url"))
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	load := func() (Config, error) {
		return LoadConfig(v, cfgFile)
	}

	root.AddCommand(
		newServeCommand(v, load),
		newProbeCommand(load),
		newMetricsCommand(load),
		newSeedCommand(v, load),
	)
	return root
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}

func bootstrap(ctx context.Context, load func() (Config, error)) (Config, *CompositionRoot, error) {
	config, err := load()
	if err != nil {
		return Config{}, nil, err
	}
	logger, err := config.NewLogger(os.Stderr)
	if err != nil {
		return Config{}, nil, err
	}
	app, err := NewCompositionRoot(ctx, config, logger)
	if err != nil {
		return Config{}, nil, err
	}
	return config, app, nil
}

func newServeCommand(v *viper.Viper, load func() (Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workflow API and run the scheduled jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			config, app, err := bootstrap(ctx, load)
			if err != nil {
				return err
			}
			defer app.Close()

			app.Probe(ctx)

			jobManager := app.CreateJobManager()
			if err := jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			e, err := app.CreateEcho(ctx)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("port", "", "HTTP port of the workflow API")
	_ = v.BindPFlag("http_port", cmd.Flags().Lookup("port"))
	return cmd
}

func newProbeCommand(load func() (Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check whether the backend is reachable and print the data source mode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := bootstrap(cmd.Context(), load)
			if err != nil {
				return err
			}
			defer app.Close()

			mode := datasource.ModeMock
			if app.Probe(cmd.Context()) {
				mode = datasource.ModeLive
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), mode)
			return err
		},
	}
}

func newMetricsCommand(load func() (Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print the current delivery metrics as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := bootstrap(cmd.Context(), load)
			if err != nil {
				return err
			}
			defer app.Close()

			app.Probe(cmd.Context())
			metrics, err := app.Facade().LoadMetrics(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), metrics)
		},
	}
}

func newSeedCommand(v *viper.Viper, load func() (Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print a generated synthetic dataset as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := load()
			if err != nil {
				return err
			}
			decimal.MarshalJSONWithoutQuotes = true

			taxRate := kernel.DefaultTaxRate
			if config.TaxRate > 0 {
				taxRate = decimal.NewFromFloat(config.TaxRate)
			}
			ds := mockdata.NewGenerator(config.Seed, kernel.SystemClock(), taxRate).Generate(config.SeedSize)
			return writeJSON(cmd.OutOrStdout(), ds)
		},
	}
	cmd.Flags().Int64("seed", 0, "random seed of the generated data")
	cmd.Flags().Int("size", 0, "number of generated entities of each kind")
	_ = v.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	_ = v.BindPFlag("seed_size", cmd.Flags().Lookup("size"))
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
