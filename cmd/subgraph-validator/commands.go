package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goran-ethernal/SubgraphValidator/internal/common"
	"github.com/goran-ethernal/SubgraphValidator/internal/loader"
	"github.com/goran-ethernal/SubgraphValidator/internal/logger"
	"github.com/goran-ethernal/SubgraphValidator/internal/metrics"
	"github.com/goran-ethernal/SubgraphValidator/internal/schema"
	"github.com/goran-ethernal/SubgraphValidator/pkg/api"
	pkgconfig "github.com/goran-ethernal/SubgraphValidator/pkg/config"
	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
)

const metricsShutdownTimeout = 5 * time.Second

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		policy      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "validate <manifest>...",
		Short: "Validate manifest files",
		Long: `Validate one or more manifest files (.yaml, .yml, .json, .toml) concurrently.
The command exits with a non-zero status when any manifest is rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			if policy != "" {
				if _, err := manifest.ParseBlockHandlerLimitPolicy(policy); err != nil {
					return err
				}
				cfg.Validation.BlockHandlerLimit = policy
			}
			if concurrency <= 0 {
				concurrency = cfg.Validation.Concurrency
			}

			r, closeFn, err := newRegistrar(cfg, false)
			if err != nil {
				return err
			}
			defer closeFn()

			results, err := r.CheckFiles(cmd.Context(), args, concurrency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for _, res := range results {
				if res.Accepted() {
					fmt.Fprintf(out, "✓ %s\n", res.Path)
					continue
				}
				rejected++
				fmt.Fprintf(out, "✗ %s: %v\n", res.Path, res.Err)
			}

			if rejected > 0 {
				return fmt.Errorf("%d of %d manifest(s) rejected (block handler limit policy: %s)",
					rejected, len(results), r.Policy())
			}

			fmt.Fprintf(out, "%d manifest(s) accepted (block handler limit policy: %s)\n", len(results), r.Policy())
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "block-handler-limit", "",
		"block handler limit policy: total or call-filtered (overrides config)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "number of manifests validated in parallel (overrides config)")

	return cmd
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register <manifest>",
		Short: "Validate a manifest and store it in the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			format, err := loader.FormatFromPath(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read manifest file: %w", err)
			}

			r, closeFn, err := newRegistrar(cfg, true)
			if err != nil {
				return err
			}
			defer closeFn()

			rec, created, err := r.Register(cmd.Context(), name, data, format)
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "registered %s as %s\n", rec.Name, rec.ID.Hex())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "already registered as %s (%s)\n", rec.ID.Hex(), rec.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "manifest name (default: first data source name)")

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			r, closeFn, err := newRegistrar(cfg, true)
			if err != nil {
				return err
			}
			defer closeFn()

			recs, total, err := r.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no manifests registered)")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd
			fmt.Fprintln(w, "ID\tNAME\tSPEC\tDATA SOURCES\tNETWORKS\tPOLICY\tREGISTERED")
			for _, rec := range recs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
					common.ShortHash(rec.ID.Hex()),
					rec.Name,
					rec.SpecVersion,
					rec.DataSources,
					rec.Networks,
					rec.Policy,
					time.Unix(rec.CreatedAt, 0).UTC().Format(time.RFC3339),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nshowing %d of %d manifests\n", len(recs), total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of manifests to list (default 100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of manifests to skip")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the manifest format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schema.GenerateJSON()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API",
		Long:  `Start the REST API and, when enabled, the metrics server. Runs until SIGINT or SIGTERM.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *pkgconfig.Config) error {
	log := logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging)

	apiCfg := cfg.API
	if apiCfg == nil {
		apiCfg = &pkgconfig.APIConfig{Enabled: true}
		apiCfg.ApplyDefaults()
	}
	if !apiCfg.Enabled {
		return fmt.Errorf("API is disabled in the configuration")
	}

	r, closeFn, err := newRegistrar(cfg, true)
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(
			cfg.Metrics,
			logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging),
		)
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := metricsServer.Stop(stopCtx); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
		log.Infof("Metrics server started on %s%s", metricsServer.Addr(), cfg.Metrics.Path)
	}

	apiServer := api.NewServer(apiCfg, r, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.Start(gctx)
	})

	log.Infof("SubgraphValidator %s serving (block handler limit policy: %s)", version, r.Policy())

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("SubgraphValidator stopped")
	return nil
}
