package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/goran-ethernal/SubgraphValidator/internal/schema"
	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// SupportedSpecVersions is the range of manifest spec versions the loader accepts.
const SupportedSpecVersions = ">= 0.0.1, < 2.0.0"

var supportedSpecVersions = mustConstraint(SupportedSpecVersions)

func mustConstraint(c string) *semver.Constraints {
	constraints, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraints
}

// ParseFormat parses a format name. "yml" is accepted as an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported manifest format: %q (supported: yaml, yml, json, toml)", s)
	}
}

// FormatFromPath detects the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Loader decodes manifest documents.
type Loader struct {
	schemaCheck bool
}

// New creates a Loader. When schemaCheck is set, documents are checked against the
// manifest JSON Schema before they are decoded.
func New(schemaCheck bool) *Loader {
	return &Loader{schemaCheck: schemaCheck}
}

// LoadFromFile reads and decodes a manifest file, detecting the format from its extension.
func (l *Loader) LoadFromFile(path string) (*manifest.Manifest, []byte, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m, err := l.Load(data, format)
	if err != nil {
		return nil, nil, err
	}

	return m, data, nil
}

// Load decodes a manifest document.
func (l *Loader) Load(data []byte, format Format) (*manifest.Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("manifest document is empty")
	}

	if l.schemaCheck {
		doc, err := decodeGeneric(data, format)
		if err != nil {
			return nil, err
		}
		if err := schema.Check(doc); err != nil {
			return nil, err
		}
	}

	var m manifest.Manifest
	if err := decode(data, format, &m); err != nil {
		return nil, err
	}

	if err := checkSpecVersion(m.SpecVersion); err != nil {
		return nil, err
	}

	return &m, nil
}

func decode(data []byte, format Format, out any) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML manifest: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON manifest: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), out); err != nil {
			return fmt.Errorf("failed to parse TOML manifest: %w", err)
		}
	default:
		return fmt.Errorf("unsupported manifest format: %q", format)
	}
	return nil
}

func decodeGeneric(data []byte, format Format) (any, error) {
	if format == FormatTOML {
		doc := make(map[string]any)
		if err := decode(data, format, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	var doc any
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func checkSpecVersion(v string) error {
	if v == "" {
		return fmt.Errorf("specVersion is required")
	}

	version, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return fmt.Errorf("invalid specVersion %q: %w", v, err)
	}

	if !supportedSpecVersions.Check(version) {
		return fmt.Errorf("unsupported specVersion %s (supported: %s)", version, SupportedSpecVersions)
	}

	return nil
}
