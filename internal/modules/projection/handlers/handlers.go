// Package handlers provides HTTP handlers for portfolio projection operations.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/horizon/internal/modules/projection"
	"github.com/aristath/horizon/internal/modules/universe"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"

	maxBodyBytes = 1 << 20
)

// Handler handles projection HTTP requests
type Handler struct {
	engine             *projection.Engine
	defaultSimulations int
	log                zerolog.Logger
}

// NewHandler creates a new projection handler. defaultSimulations is used when
// a simulate request leaves the simulation count out.
func NewHandler(engine *projection.Engine, defaultSimulations int, log zerolog.Logger) *Handler {
	return &Handler{
		engine:             engine,
		defaultSimulations: defaultSimulations,
		log:                log.With().Str("handler", "projection").Logger(),
	}
}

// SimulateRequest is the body of POST /api/projection/simulate.
// Allocation keys are asset class keys such as "us_large_cap".
type SimulateRequest struct {
	Allocation          map[string]float64 `json:"allocation" msgpack:"allocation"`
	InitialInvestment   float64            `json:"initial_investment" msgpack:"initial_investment"`
	MonthlyContribution float64            `json:"monthly_contribution" msgpack:"monthly_contribution"`
	Years               int                `json:"years" msgpack:"years"`
	Simulations         *int               `json:"simulations,omitempty" msgpack:"simulations,omitempty"`
	Seed                *uint64            `json:"seed,omitempty" msgpack:"seed,omitempty"`
}

// MetricsRequest is the body of POST /api/projection/metrics.
type MetricsRequest struct {
	Allocation map[string]float64 `json:"allocation" msgpack:"allocation"`
}

type envelope struct {
	Data     interface{} `json:"data" msgpack:"data"`
	Metadata metadata    `json:"metadata" msgpack:"metadata"`
}

type metadata struct {
	Timestamp string `json:"timestamp" msgpack:"timestamp"`
	RunID     string `json:"run_id,omitempty" msgpack:"run_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error" msgpack:"error"`
	Field string `json:"field,omitempty" msgpack:"field,omitempty"`
}

// HandleSimulate handles POST /api/projection/simulate
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	alloc, err := parseAllocation(req.Allocation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	params := projection.Parameters{
		Allocation:          alloc,
		InitialInvestment:   req.InitialInvestment,
		MonthlyContribution: req.MonthlyContribution,
		Years:               req.Years,
		Simulations:         h.defaultSimulations,
		Seed:                req.Seed,
	}
	if req.Simulations != nil {
		params.Simulations = *req.Simulations
	}

	result, err := h.engine.Run(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeResponse(w, r, http.StatusOK, envelope{
		Data: result,
		Metadata: metadata{
			Timestamp: time.Now().Format(time.RFC3339),
			RunID:     result.RunID,
		},
	})
}

// HandleMetrics handles POST /api/projection/metrics
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	var req MetricsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	alloc, err := parseAllocation(req.Allocation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	metrics, err := h.engine.Metrics(alloc)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeResponse(w, r, http.StatusOK, envelope{
		Data:     metrics,
		Metadata: metadata{Timestamp: time.Now().Format(time.RFC3339)},
	})
}

// HandleAssets handles GET /api/projection/assets
func (h *Handler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, r, http.StatusOK, envelope{
		Data:     h.engine.Universe().Assets(),
		Metadata: metadata{Timestamp: time.Now().Format(time.RFC3339)},
	})
}

// parseAllocation resolves request keys to asset classes. Each weight is
// checked on its own, and two spellings of the same asset are rejected, so a
// negative weight can never be cancelled out by another key.
func parseAllocation(raw map[string]float64) (projection.Allocation, error) {
	alloc := make(projection.Allocation, len(raw))
	for key, pct := range raw {
		asset, err := universe.ParseAssetClass(key)
		if err != nil {
			return nil, &projection.ValidationError{Field: "allocation", Reason: err.Error()}
		}
		if pct < 0 {
			return nil, &projection.ValidationError{
				Field:  "allocation",
				Reason: fmt.Sprintf("weight for %s must not be negative (got %v)", key, pct),
			}
		}
		if _, dup := alloc[asset]; dup {
			return nil, &projection.ValidationError{
				Field:  "allocation",
				Reason: fmt.Sprintf("asset class %s is listed more than once", asset),
			}
		}
		alloc[asset] = pct
	}
	return alloc, nil
}

// decode reads a JSON or MessagePack body depending on Content-Type.
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return &projection.ValidationError{Field: "body", Reason: "request body too large"}
	}

	if isMsgpack(r.Header.Get("Content-Type")) {
		err = msgpack.Unmarshal(body, dst)
	} else {
		err = json.Unmarshal(body, dst)
	}
	if err != nil {
		return &projection.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

func isMsgpack(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	return err == nil && (mediaType == contentTypeMsgpack || mediaType == "application/x-msgpack")
}

func wantsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		if isMsgpack(strings.TrimSpace(part)) {
			return true
		}
	}
	return false
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	var ve *projection.ValidationError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		resp.Field = ve.Field
	case errors.Is(err, projection.ErrInvalidParameters):
		status = http.StatusBadRequest
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("Projection request failed")
	}

	h.writeResponse(w, r, status, resp)
}

// writeResponse writes MessagePack when the client asks for it and JSON otherwise
func (h *Handler) writeResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if wantsMsgpack(r) {
		body, err := msgpack.Marshal(data)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to encode MessagePack response")
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeMsgpack)
		w.WriteHeader(status)
		_, _ = w.Write(body)
		return
	}
	h.writeJSON(w, status, data)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
