package manifest

import (
	"fmt"
	"strings"
)

// BlockHandlerLimitPolicy selects how block handlers of one data source are counted.
type BlockHandlerLimitPolicy string

const (
	// BlockHandlerLimitTotal rejects a data source with more than one unfiltered
	// block handler or more than one block handler of any kind.
	BlockHandlerLimitTotal BlockHandlerLimitPolicy = "total"

	// BlockHandlerLimitCallFiltered rejects a data source with more than one
	// unfiltered block handler or more than one call-filtered block handler.
	BlockHandlerLimitCallFiltered BlockHandlerLimitPolicy = "call-filtered"
)

// DefaultBlockHandlerLimitPolicy is the policy used when none is configured.
const DefaultBlockHandlerLimitPolicy = BlockHandlerLimitTotal

// ParseBlockHandlerLimitPolicy parses a policy name. An empty name yields the default policy.
func ParseBlockHandlerLimitPolicy(s string) (BlockHandlerLimitPolicy, error) {
	switch BlockHandlerLimitPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultBlockHandlerLimitPolicy, nil
	case BlockHandlerLimitTotal:
		return BlockHandlerLimitTotal, nil
	case BlockHandlerLimitCallFiltered:
		return BlockHandlerLimitCallFiltered, nil
	default:
		return "", fmt.Errorf("unknown block handler limit policy %q (supported: %s, %s)",
			s, BlockHandlerLimitTotal, BlockHandlerLimitCallFiltered)
	}
}

// Option configures a Validator.
type Option func(*Validator)

// WithBlockHandlerLimit sets the block handler counting policy.
func WithBlockHandlerLimit(policy BlockHandlerLimitPolicy) Option {
	return func(v *Validator) {
		v.limitPolicy = policy
	}
}

// Validator checks the structural rules a manifest must satisfy before it can be executed.
// A Validator holds no mutable state and is safe for concurrent use.
type Validator struct {
	limitPolicy BlockHandlerLimitPolicy
}

// NewValidator creates a new Validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{limitPolicy: DefaultBlockHandlerLimitPolicy}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// BlockHandlerLimitPolicy returns the configured counting policy.
func (v *Validator) BlockHandlerLimitPolicy() BlockHandlerLimitPolicy {
	return v.limitPolicy
}

var defaultValidator = NewValidator()

// Validate validates the manifest with the default policy.
func Validate(m *Manifest) (*Manifest, error) {
	return defaultValidator.Validate(m)
}

// rule inspects the whole manifest and reports the first violation it finds.
type rule func(m *Manifest) *ValidationError

// Validate runs the rules in order and stops at the first violation.
// On success the same manifest is returned; the manifest is never modified.
func (v *Validator) Validate(m *Manifest) (*Manifest, error) {
	if m == nil {
		return nil, ErrNilManifest
	}

	rules := []rule{
		checkSourceAddresses,
		checkBlockHandlerFilters,
		v.checkBlockHandlerLimits,
	}

	for _, r := range rules {
		if verr := r(m); verr != nil {
			return nil, verr
		}
	}

	return m, nil
}

// checkSourceAddresses requires an address on every data source with call or block handlers.
func checkSourceAddresses(m *Manifest) *ValidationError {
	for i, ds := range m.DataSources {
		hasCallHandlers := len(ds.Mapping.CallHandlers) > 0
		hasBlockHandlers := len(ds.Mapping.BlockHandlers) > 0

		if !ds.Source.HasAddress() && (hasCallHandlers || hasBlockHandlers) {
			return newValidationError(KindSourceAddressRequired, i, ds)
		}
	}
	return nil
}

// checkBlockHandlerFilters only accepts call filters on block handlers. Unfiltered handlers always pass.
func checkBlockHandlerFilters(m *Manifest) *ValidationError {
	for i, ds := range m.DataSources {
		for _, bh := range ds.Mapping.BlockHandlers {
			if !bh.HasFilter() || bh.Filter.IsKindCall() {
				continue
			}

			verr := newValidationError(KindInvalidBlockHandlerFilter, i, ds)
			verr.Handler = bh.Handler
			verr.Filter = bh.Filter.Kind
			return verr
		}
	}
	return nil
}

// checkBlockHandlerLimits allows at most one unfiltered block handler per data source,
// and at most one further handler as counted by the configured policy.
func (v *Validator) checkBlockHandlerLimits(m *Manifest) *ValidationError {
	for i, ds := range m.DataSources {
		if len(ds.Mapping.BlockHandlers) == 0 {
			continue
		}

		unfiltered, counted := v.countBlockHandlers(ds.Mapping.BlockHandlers)
		if unfiltered > 1 || counted > 1 {
			return newValidationError(KindDataSourceBlockHandlerLimitExceeded, i, ds)
		}
	}
	return nil
}

func (v *Validator) countBlockHandlers(handlers []BlockHandler) (unfiltered, counted int) {
	for _, bh := range handlers {
		if !bh.HasFilter() {
			unfiltered++
		}

		switch v.limitPolicy {
		case BlockHandlerLimitCallFiltered:
			if bh.HasFilter() && bh.Filter.IsKindCall() {
				counted++
			}
		default:
			counted++
		}
	}
	return unfiltered, counted
}
