package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrManifestValidation is the category shared by every validation error.
var ErrManifestValidation = errors.New("manifest validation error")

var (
	// ErrSourceAddressRequired is returned when a data source with call or block handlers has no address.
	ErrSourceAddressRequired = errors.New("data source with call or block handlers requires a source address")

	// ErrInvalidBlockHandlerFilter is returned when a block handler declares a filter other than call.
	ErrInvalidBlockHandlerFilter = errors.New("block handler filter must be of kind call")

	// ErrDataSourceBlockHandlerLimitExceeded is returned when a data source declares too many block handlers.
	ErrDataSourceBlockHandlerLimitExceeded = errors.New("data source block handler limit exceeded")

	// ErrNilManifest is returned when Validate is called without a manifest.
	ErrNilManifest = errors.New("manifest is nil")
)

// ErrorKind is the stable code of a validation error.
type ErrorKind string

const (
	KindSourceAddressRequired               ErrorKind = "SourceAddressRequired"
	KindInvalidBlockHandlerFilter           ErrorKind = "InvalidBlockHandlerFilter"
	KindDataSourceBlockHandlerLimitExceeded ErrorKind = "DataSourceBlockHandlerLimitExceeded"
)

var kindErrors = map[ErrorKind]error{
	KindSourceAddressRequired:               ErrSourceAddressRequired,
	KindInvalidBlockHandlerFilter:           ErrInvalidBlockHandlerFilter,
	KindDataSourceBlockHandlerLimitExceeded: ErrDataSourceBlockHandlerLimitExceeded,
}

// ValidationError identifies the single rule a manifest violated and where.
type ValidationError struct {
	Kind ErrorKind

	// DataSource is the name of the offending data source
	DataSource string

	// Index is the position of the offending data source in the manifest
	Index int

	// Handler is the offending block handler, if the rule is handler specific
	Handler string

	// Filter is the rejected filter kind for InvalidBlockHandlerFilter
	Filter FilterKind
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", ErrManifestValidation, e.Unwrap()))
	sb.WriteString(fmt.Sprintf(" (data source #%d", e.Index))
	if e.DataSource != "" {
		sb.WriteString(fmt.Sprintf(" %q", e.DataSource))
	}
	if e.Handler != "" {
		sb.WriteString(fmt.Sprintf(", handler %q", e.Handler))
	}
	if e.Filter != "" {
		sb.WriteString(fmt.Sprintf(", filter kind %q", e.Filter))
	}
	sb.WriteString(")")
	return sb.String()
}

// Unwrap returns the sentinel error of the kind.
func (e *ValidationError) Unwrap() error {
	return kindErrors[e.Kind]
}

// Is makes every ValidationError match ErrManifestValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrManifestValidation
}

func newValidationError(kind ErrorKind, index int, ds DataSource) *ValidationError {
	return &ValidationError{
		Kind:       kind,
		DataSource: ds.Name,
		Index:      index,
	}
}

// AsValidationError extracts a ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
