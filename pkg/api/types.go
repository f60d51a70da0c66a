package api

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// ViolationInfo describes the rule a rejected manifest violated.
type ViolationInfo struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	DataSource string `json:"data_source"`
	Index      int    `json:"index"`
	Handler    string `json:"handler,omitempty"`
	Filter     string `json:"filter,omitempty"`
}

// ManifestSummary is a short description of an accepted manifest.
type ManifestSummary struct {
	SpecVersion string   `json:"spec_version"`
	DataSources int      `json:"data_sources"`
	Networks    []string `json:"networks"`
}

// ValidateResponse is the verdict on a submitted manifest.
type ValidateResponse struct {
	Valid    bool             `json:"valid"`
	Policy   string           `json:"policy"`
	Manifest *ManifestSummary `json:"manifest,omitempty"`
	Error    *ViolationInfo   `json:"error,omitempty"`
}

// ManifestInfo represents a registered manifest.
type ManifestInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SpecVersion string    `json:"spec_version"`
	Networks    []string  `json:"networks"`
	DataSources int       `json:"data_sources"`
	Policy      string    `json:"policy"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterResponse is returned after a manifest was registered.
type RegisterResponse struct {
	Created  bool         `json:"created"`
	Manifest ManifestInfo `json:"manifest"`
}

// ManifestListResponse is a page of registered manifests.
type ManifestListResponse struct {
	Manifests  []ManifestInfo   `json:"manifests"`
	Pagination PaginationResult `json:"pagination"`
}

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Policy    string    `json:"policy"`
	Registry  bool      `json:"registry"`
}
