package loader

import (
	"errors"
	"testing"

	"github.com/goran-ethernal/SubgraphValidator/internal/schema"
	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_Formats(t *testing.T) {
	t.Parallel()

	var loaded []*manifest.Manifest
	for _, path := range []string{"testdata/erc20.yaml", "testdata/erc20.json", "testdata/erc20.toml"} {
		m, raw, err := New(true).LoadFromFile(path)
		require.NoError(t, err, path)
		require.NotEmpty(t, raw)

		require.Equal(t, "0.0.5", m.SpecVersion)
		require.Len(t, m.DataSources, 1)

		ds := m.DataSources[0]
		require.Equal(t, "USDC", ds.Name)
		require.True(t, ds.Source.HasAddress(), path)
		require.Equal(t, uint64(6082465), ds.Source.StartBlock)
		require.Len(t, ds.Mapping.EventHandlers, 1)
		require.Len(t, ds.Mapping.CallHandlers, 1)
		require.Len(t, ds.Mapping.BlockHandlers, 1)
		require.True(t, ds.Mapping.BlockHandlers[0].Filter.IsKindCall(), path)

		loaded = append(loaded, m)
	}

	// every encoding yields the same manifest
	require.Equal(t, loaded[0], loaded[1])
	require.Equal(t, loaded[0], loaded[2])
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		schemaCheck bool
		wantSchema  bool
		wantErr     string
	}{
		{
			name:    "unsupported extension",
			path:    "testdata/manifest.txt",
			wantErr: "unsupported manifest format",
		},
		{
			name:    "missing file",
			path:    "testdata/missing.yaml",
			wantErr: "failed to read manifest file",
		},
		{
			name:        "bad address caught by schema",
			path:        "testdata/bad_address.yaml",
			schemaCheck: true,
			wantSchema:  true,
		},
		{
			name:    "bad address caught by decoder",
			path:    "testdata/bad_address.yaml",
			wantErr: "failed to parse YAML manifest",
		},
		{
			name:        "unsupported spec version",
			path:        "testdata/future_version.yaml",
			schemaCheck: true,
			wantErr:     "unsupported specVersion 2.1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := New(tt.schemaCheck).LoadFromFile(tt.path)
			require.Error(t, err)

			var serr *schema.SchemaError
			require.Equal(t, tt.wantSchema, errors.As(err, &serr), err.Error())
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			}

			// decoding failures never masquerade as validation verdicts
			require.NotErrorIs(t, err, manifest.ErrManifestValidation)
		})
	}
}

func TestLoad_RuleViolationsSurviveDecoding(t *testing.T) {
	t.Parallel()

	// The loader only decodes; rule violations are left for the validator.
	for path, wantErr := range map[string]error{
		"testdata/no_address.yaml":     manifest.ErrSourceAddressRequired,
		"testdata/polling_filter.yaml": manifest.ErrInvalidBlockHandlerFilter,
	} {
		m, _, err := New(true).LoadFromFile(path)
		require.NoError(t, err, path)

		_, err = manifest.Validate(m)
		require.ErrorIs(t, err, wantErr, path)
	}
}

func TestLoad_NullsReachValidator(t *testing.T) {
	t.Parallel()

	const header = `
specVersion: 0.0.5
dataSources:
  - kind: ethereum/contract
    name: Token
    network: mainnet
`

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "null address with call handler",
			doc: header + `    source:
      address: null
      abi: Token
    mapping:
      callHandlers:
        - function: transfer(address,uint256)
          handler: handleTransfer
`,
			wantErr: manifest.ErrSourceAddressRequired,
		},
		{
			name: "empty block handler filter",
			doc: header + `    source:
      address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
      abi: Token
    mapping:
      blockHandlers:
        - handler: handleBlock
          filter: {}
`,
			wantErr: manifest.ErrInvalidBlockHandlerFilter,
		},
		{
			name: "null block handler filter",
			doc: header + `    source:
      address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
      abi: Token
    mapping:
      blockHandlers:
        - handler: handleBlock
          filter: null
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := New(true).Load([]byte(tt.doc), FormatYAML)
			require.NoError(t, err)

			_, err = manifest.Validate(m)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_SpecVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		doc     string
		wantErr string
	}{
		{doc: `{"specVersion":"0.0.4","dataSources":[]}`},
		{doc: `{"specVersion":"v1.2.0","dataSources":[]}`},
		{doc: `{"dataSources":[]}`, wantErr: "specVersion is required"},
		{doc: `{"specVersion":"latest","dataSources":[]}`, wantErr: "invalid specVersion"},
	}

	for _, tt := range tests {
		_, err := New(false).Load([]byte(tt.doc), FormatJSON)
		if tt.wantErr == "" {
			require.NoError(t, err, tt.doc)
		} else {
			require.ErrorContains(t, err, tt.wantErr, tt.doc)
		}
	}
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()

	_, err := New(true).Load([]byte("  \n"), FormatYAML)
	require.ErrorContains(t, err, "empty")
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Format{
		"yaml":  FormatYAML,
		".yml":  FormatYAML,
		"JSON":  FormatJSON,
		".toml": FormatTOML,
	} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
}
