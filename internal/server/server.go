// Package server exposes the projection engine as a JSON API
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/zusim/internal/analytics"
	"github.com/rgehrsitz/zusim/internal/breakeven"
	"github.com/rgehrsitz/zusim/internal/calculation"
	"github.com/rgehrsitz/zusim/internal/config"
	"github.com/rgehrsitz/zusim/internal/domain"
)

// Server routes API requests to a calculation engine
type Server struct {
	engine    *calculation.Engine
	analytics analytics.Source
	logger    calculation.Logger
	baseCtx   context.Context
}

// New creates a server. source may be nil when no analytics store is configured.
func New(engine *calculation.Engine, source analytics.Source, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		engine:    engine,
		analytics: source,
		logger:    logger,
		baseCtx:   context.Background(),
	}
}

// Serve listens on addr until ctx is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.baseCtx = ctx
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "zusim",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(addr)
	}()

	s.logger.Infof("zusim API listening on %s", addr)
	select {
	case <-ctx.Done():
		s.logger.Infof("shutting down")
		return srv.Shutdown()
	case err := <-errCh:
		return err
	}
}

// Handler is the fasthttp entry point
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case "/health":
		s.get(ctx, s.handleHealth)
	case "/api/v1/calculate":
		s.post(ctx, s.handleCalculate)
	case "/api/v1/scenario":
		s.post(ctx, s.handleScenario)
	case "/api/v1/series":
		s.post(ctx, s.handleSeries)
	case "/api/v1/target":
		s.post(ctx, s.handleTarget)
	case "/api/v1/rates":
		s.get(ctx, s.handleRates)
	case "/api/v1/analytics/summary":
		s.get(ctx, s.handleAnalyticsSummary)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
	}

	s.logger.Debugf("%s %s -> %d (%s)", ctx.Method(), path, ctx.Response.StatusCode(), time.Since(start))
}

func (s *Server) post(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
		return
	}
	h(ctx)
}

func (s *Server) get(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusBadRequest, "Method not allowed")
		return
	}
	h(ctx)
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	started := time.Now()

	mode, ok := domain.ParseSimulationMode(string(ctx.QueryArgs().Peek("mode")))
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Invalid mode %q (valid: quick, detailed)", ctx.QueryArgs().Peek("mode")))
		return
	}

	in, ok := s.decodeInput(ctx, ctx.PostBody())
	if !ok {
		return
	}

	result := CalculateResult{
		Projection: s.engine.Project(s.baseCtx, in, mode),
		Scenarios:  s.engine.EvaluateScenarios(in),
	}
	writeResult(ctx, started, result)
}

func (s *Server) handleScenario(ctx *fasthttp.RequestCtx) {
	started := time.Now()

	var req ScenarioRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ExtraYears < 0 || req.ExtraSalaryPercent < 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "extraYears and extraSalaryPercent must be >= 0")
		return
	}
	if err := s.validate(&req.Input); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	writeResult(ctx, started, s.engine.EvaluateScenario(req.Input, req.ExtraYears, req.ExtraSalaryPercent))
}

func (s *Server) handleSeries(ctx *fasthttp.RequestCtx) {
	started := time.Now()

	kind, err := calculation.ParseSeriesKind(string(ctx.QueryArgs().Peek("kind")))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	mode, ok := domain.ParseSimulationMode(string(ctx.QueryArgs().Peek("mode")))
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Invalid mode %q (valid: quick, detailed)", ctx.QueryArgs().Peek("mode")))
		return
	}

	in, ok := s.decodeInput(ctx, ctx.PostBody())
	if !ok {
		return
	}

	series, err := s.engine.Series(in, mode, kind)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, started, series)
}

func (s *Server) handleTarget(ctx *fasthttp.RequestCtx) {
	started := time.Now()

	var req TargetRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate(&req.Input); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	res, err := breakeven.NewDefaultSolver(s.engine).SolveAll(s.baseCtx, req.Input, req.TargetPension, breakeven.Constraints{
		MaxExtraYears:    req.MaxExtraYears,
		MaxSalaryPercent: req.MaxSalaryPercent,
	})
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeResult(ctx, started, res)
}

func (s *Server) handleRates(ctx *fasthttp.RequestCtx) {
	started := time.Now()
	writeResult(ctx, started, RatesResult{
		Year:     s.engine.Rules.Year,
		Profiles: calculation.RateProfiles(s.engine.Rules),
	})
}

func (s *Server) handleAnalyticsSummary(ctx *fasthttp.RequestCtx) {
	started := time.Now()
	if s.analytics == nil {
		writeError(ctx, fasthttp.StatusServiceUnavailable, "Analytics store not configured")
		return
	}

	entries, err := s.analytics.Entries(s.baseCtx)
	if err != nil {
		s.logger.Errorf("analytics summary: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to load analytics")
		return
	}
	writeResult(ctx, started, analytics.Summarize(entries))
}

func (s *Server) decodeInput(ctx *fasthttp.RequestCtx, body []byte) (domain.SimulationInput, bool) {
	var in domain.SimulationInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return in, false
	}
	if err := s.validate(&in); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return in, false
	}
	return in, true
}

func (s *Server) validate(in *domain.SimulationInput) error {
	return config.NewInputParserAt(s.engine.Clock.Now()).ValidateInput(in)
}

func writeResult(ctx *fasthttp.RequestCtx, started time.Time, result any) {
	completed := time.Now()
	writeJSON(ctx, fasthttp.StatusOK, Response{
		Metadata: Metadata{
			CalculationID:          uuid.NewString(),
			CalculationStartedAt:   started.UTC().Format(time.RFC3339Nano),
			CalculationCompletedAt: completed.UTC().Format(time.RFC3339Nano),
			CalculationDurationMs:  completed.Sub(started).Milliseconds(),
			CalculationOutcome:     OutcomeSuccess,
		},
		Result: result,
	})
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{
		Status:  status,
		Message: message,
	})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = fasthttp.StatusInternalServerError
		body = []byte(`{"status":500,"message":"failed to encode response"}`)
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
