package manifest

import (
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func testAddress() *common.Address {
	addr := common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	return &addr
}

func callFilter() *BlockHandlerFilter {
	return &BlockHandlerFilter{Kind: FilterKindCall}
}

func pollingFilter() *BlockHandlerFilter {
	return &BlockHandlerFilter{Kind: FilterKindPolling, Every: 10}
}

func dataSource(name string, addr *common.Address, calls []CallHandler, blocks []BlockHandler) DataSource {
	return DataSource{
		Kind:    "ethereum/contract",
		Name:    name,
		Network: "mainnet",
		Source:  Source{Address: addr, ABI: "Token"},
		Mapping: Mapping{
			Kind:          "ethereum/events",
			APIVersion:    "0.0.7",
			Language:      "wasm/assemblyscript",
			CallHandlers:  calls,
			BlockHandlers: blocks,
		},
	}
}

func oneCall() []CallHandler {
	return []CallHandler{{Function: "transfer(address,uint256)", Handler: "handleTransferCall"}}
}

func TestValidate_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sources []DataSource
		wantErr error
	}{
		{
			name:    "A: address present, one call handler",
			sources: []DataSource{dataSource("token", testAddress(), oneCall(), nil)},
		},
		{
			name:    "B: address absent, one call handler",
			sources: []DataSource{dataSource("token", nil, oneCall(), nil)},
			wantErr: ErrSourceAddressRequired,
		},
		{
			name: "C: address present, non-call filter",
			sources: []DataSource{dataSource("token", testAddress(), nil, []BlockHandler{
				{Handler: "handleBlock", Filter: pollingFilter()},
			})},
			wantErr: ErrInvalidBlockHandlerFilter,
		},
		{
			name: "D: address present, two unfiltered block handlers",
			sources: []DataSource{dataSource("token", testAddress(), nil, []BlockHandler{
				{Handler: "handleBlockA"},
				{Handler: "handleBlockB"},
			})},
			wantErr: ErrDataSourceBlockHandlerLimitExceeded,
		},
		{
			name: "E: second data source violates address rule",
			sources: []DataSource{
				dataSource("valid", testAddress(), oneCall(), nil),
				dataSource("invalid", nil, oneCall(), nil),
			},
			wantErr: ErrSourceAddressRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &Manifest{SpecVersion: "0.0.5", DataSources: tt.sources}
			got, err := Validate(m)

			if tt.wantErr == nil {
				require.NoError(t, err)
				require.Same(t, m, got)
				return
			}

			require.Nil(t, got)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, ErrManifestValidation)
		})
	}
}

func TestValidate_SourceAddressRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ds      DataSource
		wantErr bool
	}{
		{
			name:    "no address, call handler",
			ds:      dataSource("ds", nil, oneCall(), nil),
			wantErr: true,
		},
		{
			name:    "no address, unfiltered block handler",
			ds:      dataSource("ds", nil, nil, []BlockHandler{{Handler: "handleBlock"}}),
			wantErr: true,
		},
		{
			name:    "no address, call filtered block handler",
			ds:      dataSource("ds", nil, nil, []BlockHandler{{Handler: "handleBlock", Filter: callFilter()}}),
			wantErr: true,
		},
		{
			name: "no address, only event handlers",
			ds: func() DataSource {
				ds := dataSource("ds", nil, nil, nil)
				ds.Mapping.EventHandlers = []EventHandler{{Event: "Transfer(indexed address,indexed address,uint256)", Handler: "handleTransfer"}}
				return ds
			}(),
			wantErr: false,
		},
		{
			name:    "no address, no handlers",
			ds:      dataSource("ds", nil, nil, nil),
			wantErr: false,
		},
		{
			name:    "address, call and block handlers",
			ds:      dataSource("ds", testAddress(), oneCall(), []BlockHandler{{Handler: "handleBlock"}}),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Validate(&Manifest{DataSources: []DataSource{tt.ds}})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrSourceAddressRequired)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidate_BlockHandlerFilterRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handlers []BlockHandler
		wantErr  bool
	}{
		{name: "no filter", handlers: []BlockHandler{{Handler: "h"}}},
		{name: "call filter", handlers: []BlockHandler{{Handler: "h", Filter: callFilter()}}},
		{name: "polling filter", handlers: []BlockHandler{{Handler: "h", Filter: pollingFilter()}}, wantErr: true},
		{name: "once filter", handlers: []BlockHandler{{Handler: "h", Filter: &BlockHandlerFilter{Kind: FilterKindOnce}}}, wantErr: true},
		{name: "unknown filter", handlers: []BlockHandler{{Handler: "h", Filter: &BlockHandlerFilter{Kind: "weird"}}}, wantErr: true},
		{name: "empty kind", handlers: []BlockHandler{{Handler: "h", Filter: &BlockHandlerFilter{}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Validate(&Manifest{DataSources: []DataSource{dataSource("ds", testAddress(), nil, tt.handlers)}})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBlockHandlerFilter)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidate_InvalidFilterErrorDetails(t *testing.T) {
	t.Parallel()

	m := &Manifest{DataSources: []DataSource{
		dataSource("first", testAddress(), nil, nil),
		dataSource("second", testAddress(), nil, []BlockHandler{
			{Handler: "handleBlock"},
			{Handler: "handlePoll", Filter: pollingFilter()},
		}),
	}}

	_, err := Validate(m)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, KindInvalidBlockHandlerFilter, verr.Kind)
	require.Equal(t, 1, verr.Index)
	require.Equal(t, "second", verr.DataSource)
	require.Equal(t, "handlePoll", verr.Handler)
	require.Equal(t, FilterKindPolling, verr.Filter)
	require.Contains(t, err.Error(), `"second"`)
	require.Contains(t, err.Error(), `"handlePoll"`)
}

func TestValidate_RuleOrderIsManifestWide(t *testing.T) {
	t.Parallel()

	// The first data source breaks the filter rule, the second the address rule.
	// The address rule runs first over every data source, so it wins.
	m := &Manifest{DataSources: []DataSource{
		dataSource("bad-filter", testAddress(), nil, []BlockHandler{{Handler: "h", Filter: pollingFilter()}}),
		dataSource("no-address", nil, oneCall(), nil),
	}}

	_, err := Validate(m)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, KindSourceAddressRequired, verr.Kind)
	require.Equal(t, "no-address", verr.DataSource)
}

func TestValidate_FilterRuleBeforeLimitRule(t *testing.T) {
	t.Parallel()

	m := &Manifest{DataSources: []DataSource{
		dataSource("too-many", testAddress(), nil, []BlockHandler{{Handler: "a"}, {Handler: "b"}}),
		dataSource("bad-filter", testAddress(), nil, []BlockHandler{{Handler: "c", Filter: pollingFilter()}}),
	}}

	_, err := Validate(m)
	require.ErrorIs(t, err, ErrInvalidBlockHandlerFilter)
	require.NotErrorIs(t, err, ErrDataSourceBlockHandlerLimitExceeded)
}

func TestValidate_BlockHandlerLimitPolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		handlers         []BlockHandler
		wantTotalErr     bool
		wantCallFiltered bool
	}{
		{
			name:     "single unfiltered",
			handlers: []BlockHandler{{Handler: "a"}},
		},
		{
			name:     "single call filtered",
			handlers: []BlockHandler{{Handler: "a", Filter: callFilter()}},
		},
		{
			name:             "two unfiltered",
			handlers:         []BlockHandler{{Handler: "a"}, {Handler: "b"}},
			wantTotalErr:     true,
			wantCallFiltered: true,
		},
		{
			name:             "two call filtered",
			handlers:         []BlockHandler{{Handler: "a", Filter: callFilter()}, {Handler: "b", Filter: callFilter()}},
			wantTotalErr:     true,
			wantCallFiltered: true,
		},
		{
			// the only input on which the two policies disagree
			name:             "one unfiltered and one call filtered",
			handlers:         []BlockHandler{{Handler: "a"}, {Handler: "b", Filter: callFilter()}},
			wantTotalErr:     true,
			wantCallFiltered: false,
		},
		{
			name: "one unfiltered and two call filtered",
			handlers: []BlockHandler{
				{Handler: "a"},
				{Handler: "b", Filter: callFilter()},
				{Handler: "c", Filter: callFilter()},
			},
			wantTotalErr:     true,
			wantCallFiltered: true,
		},
	}

	total := NewValidator(WithBlockHandlerLimit(BlockHandlerLimitTotal))
	callFiltered := NewValidator(WithBlockHandlerLimit(BlockHandlerLimitCallFiltered))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &Manifest{DataSources: []DataSource{dataSource("ds", testAddress(), nil, tt.handlers)}}

			_, err := total.Validate(m)
			if tt.wantTotalErr {
				require.ErrorIs(t, err, ErrDataSourceBlockHandlerLimitExceeded)
			} else {
				require.NoError(t, err)
			}

			_, err = callFiltered.Validate(m)
			if tt.wantCallFiltered {
				require.ErrorIs(t, err, ErrDataSourceBlockHandlerLimitExceeded)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidate_DefaultPolicyIsTotal(t *testing.T) {
	t.Parallel()

	require.Equal(t, BlockHandlerLimitTotal, NewValidator().BlockHandlerLimitPolicy())

	m := &Manifest{DataSources: []DataSource{
		dataSource("ds", testAddress(), nil, []BlockHandler{{Handler: "a"}, {Handler: "b", Filter: callFilter()}}),
	}}
	_, err := Validate(m)
	require.ErrorIs(t, err, ErrDataSourceBlockHandlerLimitExceeded)
}

func TestValidate_LimitIsPerDataSource(t *testing.T) {
	t.Parallel()

	m := &Manifest{DataSources: []DataSource{
		dataSource("a", testAddress(), nil, []BlockHandler{{Handler: "blockA"}}),
		dataSource("b", testAddress(), nil, []BlockHandler{{Handler: "blockB"}}),
	}}

	got, err := Validate(m)
	require.NoError(t, err)
	require.Same(t, m, got)
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	m := &Manifest{
		SpecVersion: "0.0.5",
		DataSources: []DataSource{
			dataSource("token", testAddress(), oneCall(), []BlockHandler{{Handler: "handleBlock", Filter: callFilter()}}),
			dataSource("chain", nil, nil, nil),
		},
	}

	first, err := Validate(m)
	require.NoError(t, err)

	second, err := Validate(first)
	require.NoError(t, err)
	require.Same(t, m, second)
	require.Equal(t, "handleBlock", second.DataSources[0].Mapping.BlockHandlers[0].Handler)
	require.Equal(t, FilterKindCall, second.DataSources[0].Mapping.BlockHandlers[0].Filter.Kind)
}

func TestValidate_EmptyAndNilManifest(t *testing.T) {
	t.Parallel()

	got, err := Validate(&Manifest{})
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = Validate(nil)
	require.ErrorIs(t, err, ErrNilManifest)
	require.False(t, errors.Is(err, ErrManifestValidation))
}

func TestValidate_Concurrent(t *testing.T) {
	t.Parallel()

	valid := &Manifest{DataSources: []DataSource{dataSource("ok", testAddress(), oneCall(), nil)}}
	invalid := &Manifest{DataSources: []DataSource{dataSource("bad", nil, oneCall(), nil)}}
	v := NewValidator()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := v.Validate(valid)
			require.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := v.Validate(invalid)
			require.ErrorIs(t, err, ErrSourceAddressRequired)
		}()
	}
	wg.Wait()
}

func TestParseBlockHandlerLimitPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    BlockHandlerLimitPolicy
		wantErr bool
	}{
		{input: "", want: BlockHandlerLimitTotal},
		{input: "total", want: BlockHandlerLimitTotal},
		{input: " Call-Filtered ", want: BlockHandlerLimitCallFiltered},
		{input: "all", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseBlockHandlerLimitPolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
