package registrar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/goran-ethernal/SubgraphValidator/internal/loader"
	"github.com/goran-ethernal/SubgraphValidator/internal/logger"
	"github.com/goran-ethernal/SubgraphValidator/internal/metrics"
	"github.com/goran-ethernal/SubgraphValidator/internal/registry"
	"github.com/goran-ethernal/SubgraphValidator/pkg/config"
	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
)

// ErrRegistryDisabled is returned by registry operations when no store is configured.
var ErrRegistryDisabled = errors.New("manifest registry is not configured")

// Store persists accepted manifests.
type Store interface {
	Save(ctx context.Context, rec *registry.Record) (bool, error)
	Get(ctx context.Context, id common.Hash) (*registry.Record, error)
	List(ctx context.Context, limit, offset int) ([]*registry.Record, error)
	Count(ctx context.Context) (int, error)
}

// LoadError wraps a failure to read or decode a manifest document.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Registrar loads manifests, validates them and stores the accepted ones.
type Registrar struct {
	loader    *loader.Loader
	validator *manifest.Validator
	store     Store
	log       *logger.Logger
}

// New creates a Registrar. store may be nil, in which case only validation is available.
func New(cfg config.ValidationConfig, store Store, log *logger.Logger) *Registrar {
	return &Registrar{
		loader:    loader.New(cfg.SchemaCheckEnabled()),
		validator: manifest.NewValidator(manifest.WithBlockHandlerLimit(cfg.Policy())),
		store:     store,
		log:       log,
	}
}

// Policy returns the block handler limit policy in use.
func (r *Registrar) Policy() manifest.BlockHandlerLimitPolicy {
	return r.validator.BlockHandlerLimitPolicy()
}

// RegistryEnabled reports whether accepted manifests can be stored.
func (r *Registrar) RegistryEnabled() bool {
	return r.store != nil
}

// Check decodes and validates a manifest document.
// It returns a *LoadError when the document cannot be decoded and a *manifest.ValidationError when it is rejected.
func (r *Registrar) Check(ctx context.Context, data []byte, format loader.Format) (*manifest.Manifest, error) {
	start := time.Now()
	defer func() { metrics.ValidationDurationLog(time.Since(start)) }()

	m, err := r.loader.Load(data, format)
	if err != nil {
		metrics.LoadFailedInc()
		r.log.Debugf("failed to load manifest: %v", err)
		return nil, &LoadError{Err: err}
	}

	return r.validate(m)
}

func (r *Registrar) validate(m *manifest.Manifest) (*manifest.Manifest, error) {
	accepted, err := r.validator.Validate(m)
	if err != nil {
		if verr, ok := manifest.AsValidationError(err); ok {
			metrics.ValidationRejectedInc(string(verr.Kind))
			r.log.Infow("manifest rejected",
				"kind", verr.Kind,
				"data_source", verr.DataSource,
				"index", verr.Index,
			)
		}
		return nil, err
	}

	metrics.ValidationAcceptedInc()
	r.log.Debugw("manifest accepted", "data_sources", len(accepted.DataSources), "policy", r.Policy())
	return accepted, nil
}

// Register validates a manifest document and stores it when accepted.
// It reports whether a new record was created; an identical document registered earlier is returned as is.
func (r *Registrar) Register(ctx context.Context, name string, data []byte, format loader.Format) (*registry.Record, bool, error) {
	if r.store == nil {
		return nil, false, ErrRegistryDisabled
	}

	m, err := r.Check(ctx, data, format)
	if err != nil {
		return nil, false, err
	}

	if name == "" {
		name = defaultName(m)
	}

	rec := registry.NewRecord(name, m, data, r.Policy())
	created, err := r.store.Save(ctx, rec)
	if err != nil {
		return nil, false, fmt.Errorf("failed to register manifest: %w", err)
	}

	if created {
		metrics.ManifestsRegisteredInc()
	}

	return rec, created, nil
}

// Get returns a registered manifest.
func (r *Registrar) Get(ctx context.Context, id common.Hash) (*registry.Record, error) {
	if r.store == nil {
		return nil, ErrRegistryDisabled
	}
	return r.store.Get(ctx, id)
}

// List returns a page of registered manifests and the total number stored.
func (r *Registrar) List(ctx context.Context, limit, offset int) ([]*registry.Record, int, error) {
	if r.store == nil {
		return nil, 0, ErrRegistryDisabled
	}

	recs, err := r.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.store.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}

// FileResult is the verdict for one manifest file.
type FileResult struct {
	Path     string
	Manifest *manifest.Manifest
	Err      error
}

// Accepted reports whether the manifest passed validation.
func (f FileResult) Accepted() bool {
	return f.Err == nil
}

// CheckFiles validates manifest files concurrently. Results keep the order of paths.
// Per-file failures are reported in the results; the returned error is only set when ctx is cancelled.
func (r *Registrar) CheckFiles(ctx context.Context, paths []string, concurrency int) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.checkFile(gctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Registrar) checkFile(ctx context.Context, path string) FileResult {
	format, err := loader.FormatFromPath(path)
	if err != nil {
		metrics.LoadFailedInc()
		return FileResult{Path: path, Err: &LoadError{Err: err}}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		metrics.LoadFailedInc()
		return FileResult{Path: path, Err: &LoadError{Err: fmt.Errorf("failed to read manifest file: %w", err)}}
	}

	m, err := r.Check(ctx, data, format)
	return FileResult{Path: path, Manifest: m, Err: err}
}

func defaultName(m *manifest.Manifest) string {
	if len(m.DataSources) > 0 && m.DataSources[0].Name != "" {
		return m.DataSources[0].Name
	}
	return "unnamed"
}
