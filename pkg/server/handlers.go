package server

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fiberroute/pkg/buildinfo"
	"github.com/matzehuels/fiberroute/pkg/component"
	"github.com/matzehuels/fiberroute/pkg/config"
	errs "github.com/matzehuels/fiberroute/pkg/errors"
	"github.com/matzehuels/fiberroute/pkg/pipeline"
	"github.com/matzehuels/fiberroute/pkg/store"
)

// DefaultListLimit caps /v1/runs when no limit is given.
const DefaultListLimit = 50

type routeResponse struct {
	Component     string            `json:"component"`
	ComponentHash string            `json:"component_hash"`
	RunID         string            `json:"run_id,omitempty"`
	Ports         []string          `json:"ports"`
	Couplers      int               `json:"couplers"`
	FanoutLength  *float64          `json:"fanout_length,omitempty"`
	Cache         cacheResponse     `json:"cache"`
	Artifacts     map[string]string `json:"artifacts"`
}

type cacheResponse struct {
	Route  bool `json:"route"`
	Render bool `json:"render"`
}

type runSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Component string    `json:"component"`
	Couplers  int       `json:"couplers"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := s.Defaults.Presets
	if presets == nil {
		presets = config.BuiltinPresets()
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"cells":          slices.Sorted(maps.Keys(component.Cells)),
		"couplers":       presets.CouplerNames(),
		"cross_sections": presets.CrossSectionNames(),
		"formats":        slices.Sorted(maps.Keys(pipeline.ValidFormats)),
		"routing_types":  slices.Sorted(maps.Keys(pipeline.RoutingTypes)),
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	opts := s.Defaults
	opts.Couplers = slices.Clone(opts.Couplers)

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := routeResponse{
		Component:     result.Component,
		ComponentHash: result.ComponentHash,
		RunID:         result.RunID,
		Ports:         result.Routed.Ports,
		Couplers:      result.Stats.CouplerCount,
		Cache:         cacheResponse{Route: result.CacheInfo.RouteHit, Render: result.CacheInfo.RenderHit},
		Artifacts:     make(map[string]string, len(result.Artifacts)),
	}
	if result.Routed.HasFanout {
		resp.FanoutLength = &result.Routed.FanoutLength
	}
	for format, data := range result.Artifacts {
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Runner.Store == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeUnsupported, "run history is disabled"))
		return
	}
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}

	runs, err := s.Runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]runSummary, len(runs))
	for i, run := range runs {
		out[i] = runSummary{
			ID:        run.ID,
			CreatedAt: run.CreatedAt,
			Component: run.Component,
			Couplers:  len(run.Layout.Couplers()),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": out})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.Runner.Store == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeUnsupported, "run history is disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	run, err := s.Runner.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errs.New(errs.ErrCodeNotFound, "no run %q", id))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// statusOf maps an error code to an HTTP status.
func statusOf(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidComponent,
		errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidName, errs.ErrCodeUnknownPort:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeNoRoutablePorts, errs.ErrCodeRoutingInfeasible:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusOf(code)
	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "id", RequestID(r.Context()), "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
