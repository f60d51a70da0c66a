package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goran-ethernal/SubgraphValidator/internal/loader"
	"github.com/goran-ethernal/SubgraphValidator/internal/logger"
	"github.com/goran-ethernal/SubgraphValidator/internal/registrar"
	"github.com/goran-ethernal/SubgraphValidator/internal/registry"
	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ManifestRegistrar defines the operations the API needs on manifests.
type ManifestRegistrar interface {
	Check(ctx context.Context, data []byte, format loader.Format) (*manifest.Manifest, error)
	Register(ctx context.Context, name string, data []byte, format loader.Format) (*registry.Record, bool, error)
	Get(ctx context.Context, id common.Hash) (*registry.Record, error)
	List(ctx context.Context, limit, offset int) ([]*registry.Record, int, error)
	Policy() manifest.BlockHandlerLimitPolicy
	RegistryEnabled() bool
}

// Handler handles HTTP requests for the API.
type Handler struct {
	registrar    ManifestRegistrar
	maxBodyBytes int64
	log          *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(registrar ManifestRegistrar, maxBodyBytes int64, log *logger.Logger) *Handler {
	return &Handler{
		registrar:    registrar,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// ValidateManifest validates a submitted manifest without storing it.
// @Summary Validate a manifest
// @Description Decode the request body as a subgraph manifest and check it against the validation rules
// @Tags Manifests
// @Accept json,x-yaml,toml
// @Produce json
// @Param format query string false "Manifest format, detected from Content-Type when omitted" Enums(yaml, json, toml)
// @Success 200 {object} ValidateResponse "Manifest accepted"
// @Failure 400 {object} ErrorResponse "Manifest could not be decoded"
// @Failure 413 {object} ErrorResponse "Manifest too large"
// @Failure 422 {object} ValidateResponse "Manifest rejected"
// @Router /manifests/validate [post]
func (h *Handler) ValidateManifest(w http.ResponseWriter, r *http.Request) {
	data, format, ok := h.readManifest(w, r)
	if !ok {
		return
	}

	m, err := h.registrar.Check(r.Context(), data, format)
	if err != nil {
		h.respondCheckError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ValidateResponse{
		Valid:    true,
		Policy:   string(h.registrar.Policy()),
		Manifest: summarize(m),
	})
}

// RegisterManifest validates a submitted manifest and stores it in the registry.
// @Summary Register a manifest
// @Description Validate a manifest and store it; registering an identical document again returns the existing record
// @Tags Manifests
// @Accept json,x-yaml,toml
// @Produce json
// @Param name query string false "Manifest name, defaults to the first data source name"
// @Param format query string false "Manifest format, detected from Content-Type when omitted" Enums(yaml, json, toml)
// @Success 200 {object} RegisterResponse "Manifest already registered"
// @Success 201 {object} RegisterResponse "Manifest registered"
// @Failure 400 {object} ErrorResponse "Manifest could not be decoded"
// @Failure 422 {object} ValidateResponse "Manifest rejected"
// @Failure 503 {object} ErrorResponse "Registry not configured"
// @Router /manifests [post]
func (h *Handler) RegisterManifest(w http.ResponseWriter, r *http.Request) {
	data, format, ok := h.readManifest(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))

	rec, created, err := h.registrar.Register(r.Context(), name, data, format)
	if err != nil {
		h.respondCheckError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	respondJSON(w, status, RegisterResponse{
		Created:  created,
		Manifest: toManifestInfo(rec),
	})
}

// ListManifests returns registered manifests, newest first.
// @Summary List registered manifests
// @Tags Manifests
// @Produce json
// @Param limit query int false "Maximum number of manifests to return" default(100)
// @Param offset query int false "Number of manifests to skip" default(0)
// @Success 200 {object} ManifestListResponse "List of manifests with pagination info"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 503 {object} ErrorResponse "Registry not configured"
// @Router /manifests [get]
func (h *Handler) ListManifests(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err))
		return
	}

	recs, total, err := h.registrar.List(r.Context(), limit, offset)
	if err != nil {
		h.respondRegistryError(w, err, "failed to list manifests")
		return
	}

	infos := make([]ManifestInfo, 0, len(recs))
	for _, rec := range recs {
		infos = append(infos, toManifestInfo(rec))
	}

	respondJSON(w, http.StatusOK, ManifestListResponse{
		Manifests: infos,
		Pagination: PaginationResult{
			Limit:   limit,
			Offset:  offset,
			Total:   total,
			HasMore: offset+len(recs) < total,
		},
	})
}

// GetManifest returns a registered manifest.
// @Summary Get a registered manifest
// @Tags Manifests
// @Produce json
// @Param id path string true "Manifest ID (keccak256 of the document)"
// @Success 200 {object} ManifestInfo "Registered manifest"
// @Failure 400 {object} ErrorResponse "Invalid manifest ID"
// @Failure 404 {object} ErrorResponse "Manifest not found"
// @Failure 503 {object} ErrorResponse "Registry not configured"
// @Router /manifests/{id} [get]
func (h *Handler) GetManifest(w http.ResponseWriter, r *http.Request) {
	rawID := r.PathValue("id")
	if !isHashHex(rawID) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid manifest id '%s'", rawID))
		return
	}

	id := common.HexToHash(rawID)
	rec, err := h.registrar.Get(r.Context(), id)
	if err != nil {
		h.respondRegistryError(w, err, "failed to get manifest")
		return
	}

	respondJSON(w, http.StatusOK, toManifestInfo(rec))
}

// Health returns the health status of the API.
// @Summary Health check
// @Description Check the health status of the API and report the active block handler limit policy
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Policy:    string(h.registrar.Policy()),
		Registry:  h.registrar.RegistryEnabled(),
	})
}

// readManifest reads the request body and resolves the manifest format.
// It writes the error response itself and reports whether the caller may continue.
func (h *Handler) readManifest(w http.ResponseWriter, r *http.Request) ([]byte, loader.Format, bool) {
	format, err := requestFormat(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, "", false
	}

	body := io.Reader(r.Body)
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("manifest exceeds %d bytes", maxErr.Limit))
			return nil, "", false
		}
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return nil, "", false
	}

	return data, format, true
}

func (h *Handler) respondCheckError(w http.ResponseWriter, err error) {
	if verr, ok := manifest.AsValidationError(err); ok {
		respondJSON(w, http.StatusUnprocessableEntity, ValidateResponse{
			Valid:  false,
			Policy: string(h.registrar.Policy()),
			Error:  toViolationInfo(verr),
		})
		return
	}

	var lerr *registrar.LoadError
	if errors.As(err, &lerr) {
		respondError(w, http.StatusBadRequest, lerr.Error())
		return
	}

	h.respondRegistryError(w, err, "failed to register manifest")
}

func (h *Handler) respondRegistryError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, registrar.ErrRegistryDisabled):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.log.Errorf("%s: %v", message, err)
		respondError(w, http.StatusInternalServerError, message)
	}
}

// requestFormat resolves the manifest format from the format query parameter or the Content-Type header.
// YAML is assumed when neither is set.
func requestFormat(r *http.Request) (loader.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return loader.ParseFormat(f)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return loader.FormatYAML, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("invalid Content-Type: %w", err)
	}

	switch mediaType {
	case "application/json":
		return loader.FormatJSON, nil
	case "application/toml":
		return loader.FormatTOML, nil
	default:
		return loader.FormatYAML, nil
	}
}

func parsePagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultListLimit

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxListLimit {
			return 0, 0, fmt.Errorf("invalid limit: must be between 1 and %d", maxListLimit)
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset: must be non-negative")
		}
	}

	return limit, offset, nil
}

func isHashHex(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 2*common.HashLength {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func summarize(m *manifest.Manifest) *ManifestSummary {
	return &ManifestSummary{
		SpecVersion: m.SpecVersion,
		DataSources: len(m.DataSources),
		Networks:    m.Networks(),
	}
}

func toViolationInfo(verr *manifest.ValidationError) *ViolationInfo {
	return &ViolationInfo{
		Kind:       string(verr.Kind),
		Message:    verr.Error(),
		DataSource: verr.DataSource,
		Index:      verr.Index,
		Handler:    verr.Handler,
		Filter:     string(verr.Filter),
	}
}

func toManifestInfo(rec *registry.Record) ManifestInfo {
	networks := []string{}
	if rec.Networks != "" {
		networks = strings.Split(rec.Networks, ",")
	}

	return ManifestInfo{
		ID:          rec.ID.Hex(),
		Name:        rec.Name,
		SpecVersion: rec.SpecVersion,
		Networks:    networks,
		DataSources: rec.DataSources,
		Policy:      rec.Policy,
		CreatedAt:   time.Unix(rec.CreatedAt, 0).UTC(),
	}
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode first so a failure can still be reported with a proper status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	if _, err := w.Write(encoded); err != nil {
		// Headers already sent
		return
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	respondJSON(w, status, response)
}
