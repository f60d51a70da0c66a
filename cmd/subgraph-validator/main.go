package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goran-ethernal/SubgraphValidator/internal/common"
	"github.com/goran-ethernal/SubgraphValidator/internal/config"
	"github.com/goran-ethernal/SubgraphValidator/internal/logger"
	"github.com/goran-ethernal/SubgraphValidator/internal/registrar"
	"github.com/goran-ethernal/SubgraphValidator/internal/registry"
	pkgconfig "github.com/goran-ethernal/SubgraphValidator/pkg/config"
)

const (
	version = "1.0.0"

	// configEnvVar names the config file when --config is not given
	configEnvVar   = "SUBGRAPH_VALIDATOR_CONFIG"
	defaultEnvFile = ".env"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "subgraph-validator",
		Short: "SubgraphValidator - subgraph manifest validation",
		Long: `SubgraphValidator checks subgraph manifests against the structural rules
required before a subgraph can be deployed: source addresses for call and block
handlers, call-only block handler filters and the per data source block handler limit.
Accepted manifests can be stored in a SQLite registry and served over a REST API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(opts.envFile, cmd.Flags().Changed("env-file"))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to configuration file (default: $"+configEnvVar+" or built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", defaultEnvFile, "path to a .env file to load")

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newRegisterCmd(opts),
		newListCmd(opts),
		newSchemaCmd(),
		newServeCmd(opts),
	)

	return rootCmd
}

// loadEnvFile loads environment variables from path. A missing default file is ignored.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

// loadConfig resolves the config file from the flag or the environment and loads it.
func (o *rootOptions) loadConfig() (*pkgconfig.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// newRegistrar builds a registrar, opening the registry store when withStore is set.
// The returned close function releases the store.
func newRegistrar(cfg *pkgconfig.Config, withStore bool) (*registrar.Registrar, func(), error) {
	log := logger.NewComponentLoggerFromConfig(common.ComponentRegistrar, cfg.Logging)

	if !withStore {
		return registrar.New(cfg.Validation, nil, log), func() {}, nil
	}

	store, err := registry.NewStore(
		cfg.Registry.DB,
		logger.NewComponentLoggerFromConfig(common.ComponentRegistry, cfg.Logging),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open manifest registry: %w", err)
	}

	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Warnf("Failed to close manifest registry: %v", err)
		}
	}

	return registrar.New(cfg.Validation, store, log), closeFn, nil
}
