package manifest

import (
	"github.com/ethereum/go-ethereum/common"
)

// FilterKind identifies the variant of a block handler filter.
type FilterKind string

const (
	// FilterKindCall triggers the handler only for blocks containing a call to the data source contract.
	FilterKindCall FilterKind = "call"
	// FilterKindPolling triggers the handler every N blocks.
	FilterKindPolling FilterKind = "polling"
	// FilterKindOnce triggers the handler once, at the data source start block.
	FilterKindOnce FilterKind = "once"
)

// Manifest describes an indexing job: the data sources it observes and the handlers attached to them.
type Manifest struct {
	// SpecVersion is the manifest format version (semver)
	SpecVersion string `yaml:"specVersion" json:"specVersion" toml:"specVersion"`

	// Description is a free-form description of the subgraph
	Description string `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`

	// Repository is the source repository URL
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty" toml:"repository,omitempty"`

	// Schema points to the GraphQL schema file
	Schema *SchemaRef `yaml:"schema,omitempty" json:"schema,omitempty" toml:"schema,omitempty"`

	// DataSources lists the data sources in declaration order
	DataSources []DataSource `yaml:"dataSources" json:"dataSources" toml:"dataSources"`
}

// SchemaRef references the GraphQL schema of a subgraph.
type SchemaRef struct {
	File string `yaml:"file" json:"file" toml:"file"`
}

// DataSource is one entity (a contract or the whole chain) that handlers are configured against.
type DataSource struct {
	Kind    string  `yaml:"kind,omitempty" json:"kind,omitempty" toml:"kind,omitempty"`
	Name    string  `yaml:"name" json:"name" toml:"name"`
	Network string  `yaml:"network,omitempty" json:"network,omitempty" toml:"network,omitempty"`
	Source  Source  `yaml:"source" json:"source" toml:"source"`
	Mapping Mapping `yaml:"mapping" json:"mapping" toml:"mapping"`
}

// Source references the on-chain entity a data source observes.
// A nil Address means the data source is not bound to a specific contract.
type Source struct {
	Address    *common.Address `yaml:"address,omitempty" json:"address,omitempty" toml:"address,omitempty"`
	ABI        string          `yaml:"abi,omitempty" json:"abi,omitempty" toml:"abi,omitempty"`
	StartBlock uint64          `yaml:"startBlock,omitempty" json:"startBlock,omitempty" toml:"startBlock,omitempty"`
}

// HasAddress reports whether the source is bound to a contract address.
func (s Source) HasAddress() bool {
	return s.Address != nil
}

// Mapping holds the handlers attached to a data source.
// Handler slices keep the declaration order of the manifest.
type Mapping struct {
	Kind          string         `yaml:"kind,omitempty" json:"kind,omitempty" toml:"kind,omitempty"`
	APIVersion    string         `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty" toml:"apiVersion,omitempty"`
	Language      string         `yaml:"language,omitempty" json:"language,omitempty" toml:"language,omitempty"`
	File          string         `yaml:"file,omitempty" json:"file,omitempty" toml:"file,omitempty"`
	Entities      []string       `yaml:"entities,omitempty" json:"entities,omitempty" toml:"entities,omitempty"`
	ABIs          []MappingABI   `yaml:"abis,omitempty" json:"abis,omitempty" toml:"abis,omitempty"`
	EventHandlers []EventHandler `yaml:"eventHandlers,omitempty" json:"eventHandlers,omitempty" toml:"eventHandlers,omitempty"`
	CallHandlers  []CallHandler  `yaml:"callHandlers,omitempty" json:"callHandlers,omitempty" toml:"callHandlers,omitempty"`
	BlockHandlers []BlockHandler `yaml:"blockHandlers,omitempty" json:"blockHandlers,omitempty" toml:"blockHandlers,omitempty"`
}

// MappingABI names an ABI file used by the mapping.
type MappingABI struct {
	Name string `yaml:"name" json:"name" toml:"name"`
	File string `yaml:"file" json:"file" toml:"file"`
}

// EventHandler is triggered by a contract event log.
type EventHandler struct {
	Event   string `yaml:"event" json:"event" toml:"event"`
	Handler string `yaml:"handler" json:"handler" toml:"handler"`
	Topic0  string `yaml:"topic0,omitempty" json:"topic0,omitempty" toml:"topic0,omitempty"`
}

// CallHandler is triggered by a call to a contract function.
type CallHandler struct {
	Function string `yaml:"function" json:"function" toml:"function"`
	Handler  string `yaml:"handler" json:"handler" toml:"handler"`
}

// BlockHandler is triggered by new blocks, optionally narrowed by a filter.
type BlockHandler struct {
	Handler string              `yaml:"handler" json:"handler" toml:"handler"`
	Filter  *BlockHandlerFilter `yaml:"filter,omitempty" json:"filter,omitempty" toml:"filter,omitempty"`
}

// HasFilter reports whether the handler declares a filter.
func (b BlockHandler) HasFilter() bool {
	return b.Filter != nil
}

// BlockHandlerFilter narrows which blocks trigger a block handler.
// Only Kind is relevant to validation; Every is the polling interval.
type BlockHandlerFilter struct {
	Kind  FilterKind `yaml:"kind" json:"kind" toml:"kind"`
	Every uint64     `yaml:"every,omitempty" json:"every,omitempty" toml:"every,omitempty"`
}

// IsKindCall reports whether the filter is a call filter.
func (f BlockHandlerFilter) IsKindCall() bool {
	return f.Kind == FilterKindCall
}

// Networks returns the distinct networks declared by the data sources, in first-seen order.
func (m *Manifest) Networks() []string {
	seen := make(map[string]struct{}, len(m.DataSources))
	networks := make([]string, 0, len(m.DataSources))
	for _, ds := range m.DataSources {
		if ds.Network == "" {
			continue
		}
		if _, ok := seen[ds.Network]; ok {
			continue
		}
		seen[ds.Network] = struct{}{}
		networks = append(networks, ds.Network)
	}
	return networks
}
