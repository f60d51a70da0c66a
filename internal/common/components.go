package common

const (
	ComponentRegistrar = "registrar"
	ComponentRegistry  = "registry"
	ComponentLoader    = "loader"
	ComponentAPI       = "api"
	ComponentMetrics   = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentRegistrar: {},
	ComponentRegistry:  {},
	ComponentLoader:    {},
	ComponentAPI:       {},
	ComponentMetrics:   {},
}
