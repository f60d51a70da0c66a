package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBlockHandlerFilter_IsKindCall(t *testing.T) {
	require.True(t, BlockHandlerFilter{Kind: FilterKindCall}.IsKindCall())
	require.False(t, BlockHandlerFilter{Kind: FilterKindPolling}.IsKindCall())
	require.False(t, BlockHandlerFilter{Kind: "CALL"}.IsKindCall())
}

func TestManifest_Networks(t *testing.T) {
	m := &Manifest{DataSources: []DataSource{
		{Name: "a", Network: "mainnet"},
		{Name: "b", Network: "sepolia"},
		{Name: "c", Network: "mainnet"},
		{Name: "d"},
	}}

	require.Equal(t, []string{"mainnet", "sepolia"}, m.Networks())
}

func TestSource_AddressDecoding(t *testing.T) {
	const doc = `
specVersion: 0.0.5
dataSources:
  - name: token
    source:
      address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
    mapping:
      blockHandlers:
        - handler: handleBlock
          filter:
            kind: call
  - name: chain
    source: {}
    mapping: {}
`
	var m Manifest
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))
	require.Len(t, m.DataSources, 2)
	require.True(t, m.DataSources[0].Source.HasAddress())
	require.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", m.DataSources[0].Source.Address.Hex())
	require.True(t, m.DataSources[0].Mapping.BlockHandlers[0].Filter.IsKindCall())
	require.False(t, m.DataSources[1].Source.HasAddress())

	encoded, err := json.Marshal(m)
	require.NoError(t, err)

	var roundTrip Manifest
	require.NoError(t, json.Unmarshal(encoded, &roundTrip))
	require.Equal(t, m, roundTrip)
}

func TestSource_InvalidAddress(t *testing.T) {
	var s Source
	err := json.Unmarshal([]byte(`{"address":"0x1234"}`), &s)
	require.Error(t, err)
}
