package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/russross/meddler"

	"github.com/goran-ethernal/SubgraphValidator/internal/db"
	"github.com/goran-ethernal/SubgraphValidator/internal/logger"
	"github.com/goran-ethernal/SubgraphValidator/internal/registry/migrations"
	"github.com/goran-ethernal/SubgraphValidator/pkg/config"
	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
)

const (
	tableName   = "manifests"
	metricsName = "registry"

	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// ErrNotFound is returned when no manifest is stored under the requested ID.
var ErrNotFound = errors.New("manifest not found")

// Record is an accepted manifest as stored in the registry.
type Record struct {
	ID          common.Hash `meddler:"id,hash" json:"id"`
	Name        string      `meddler:"name" json:"name"`
	SpecVersion string      `meddler:"spec_version" json:"spec_version"`
	Networks    string      `meddler:"networks" json:"networks"`
	DataSources int         `meddler:"data_sources" json:"data_sources"`
	Policy      string      `meddler:"policy" json:"policy"`
	Raw         []byte      `meddler:"raw" json:"-"`
	CreatedAt   int64       `meddler:"created_at" json:"created_at"`
}

// ManifestID derives the registry ID of a raw manifest document.
func ManifestID(raw []byte) common.Hash {
	return crypto.Keccak256Hash(raw)
}

// NewRecord builds the record of an accepted manifest.
func NewRecord(name string, m *manifest.Manifest, raw []byte, policy manifest.BlockHandlerLimitPolicy) *Record {
	return &Record{
		ID:          ManifestID(raw),
		Name:        name,
		SpecVersion: m.SpecVersion,
		Networks:    strings.Join(m.Networks(), ","),
		DataSources: len(m.DataSources),
		Policy:      string(policy),
		Raw:         raw,
		CreatedAt:   time.Now().UTC().Unix(),
	}
}

// Store persists accepted manifests in SQLite.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// NewStore opens the registry database and applies its migrations.
func NewStore(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	database, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	if err := migrations.RunMigrations(log, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run registry migrations: %w", err)
	}

	return &Store{db: database, log: log}, nil
}

// Save stores a record. Saving a manifest that is already stored keeps the existing record.
// It reports whether a new record was created.
func (s *Store) Save(ctx context.Context, rec *Record) (created bool, err error) {
	start := time.Now()
	defer func() { db.ObserveQuery(metricsName, "save", start, err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Warnf("rollback failed: %v", rbErr)
			}
		}
	}()

	var existing Record
	err = meddler.QueryRow(tx, &existing, "SELECT * FROM manifests WHERE id = ?", rec.ID.Hex())
	switch {
	case err == nil:
		s.log.Debugf("manifest %s already registered as %q", rec.ID.Hex(), existing.Name)
		*rec = existing
		return false, tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("failed to look up manifest: %w", err)
	}

	if err = meddler.Insert(tx, tableName, rec); err != nil {
		return false, fmt.Errorf("failed to insert manifest: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit manifest: %w", err)
	}

	s.log.Infof("registered manifest %s (%q, %d data sources)", rec.ID.Hex(), rec.Name, rec.DataSources)
	return true, nil
}

// Get returns the record stored under id.
// A missing record is not counted as a database error.
func (s *Store) Get(ctx context.Context, id common.Hash) (*Record, error) {
	start := time.Now()
	var queryErr error
	defer func() { db.ObserveQuery(metricsName, "get", start, queryErr) }()

	rec := &Record{}
	if err := meddler.QueryRow(s.db, rec, "SELECT * FROM manifests WHERE id = ?", id.Hex()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		queryErr = err
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}

	return rec, nil
}

// List returns stored records, newest first.
func (s *Store) List(ctx context.Context, limit, offset int) (recs []*Record, err error) {
	start := time.Now()
	defer func() { db.ObserveQuery(metricsName, "list", start, err) }()

	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	err = meddler.QueryAll(s.db, &recs,
		"SELECT * FROM manifests ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list manifests: %w", err)
	}

	return recs, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { db.ObserveQuery(metricsName, "count", start, err) }()

	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM manifests").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count manifests: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
