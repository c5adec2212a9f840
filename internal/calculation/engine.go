package calculation

import (
	"context"

	"github.com/google/uuid"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// AnalyticsSink receives one entry per simulation run
type AnalyticsSink interface {
	Record(ctx context.Context, entry domain.AnalyticsEntry) error
}

// Engine orchestrates projections, scenarios and chart series over one set of rules
type Engine struct {
	Rules     *domain.Rules
	Clock     Clock
	Logger    Logger
	Analytics AnalyticsSink
	Debug     bool // Enable debug output for detailed calculations
}

// NewEngine creates an engine with the default 2024 rules and the system clock
func NewEngine() *Engine {
	return NewEngineWithRules(domain.DefaultRules())
}

// NewEngineWithRules creates an engine over custom rules
func NewEngineWithRules(rules domain.Rules) *Engine {
	return &Engine{
		Rules:  &rules,
		Clock:  SystemClock{},
		Logger: NopLogger{},
	}
}

// SetLogger replaces the logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetAnalyticsSink replaces the analytics sink; nil disables recording
func (e *Engine) SetAnalyticsSink(s AnalyticsSink) {
	e.Analytics = s
}

// SetClock replaces the time source; nil restores the system clock
func (e *Engine) SetClock(c Clock) {
	if c == nil {
		e.Clock = SystemClock{}
		return
	}
	e.Clock = c
}

// RateProfileFor looks up employmentType in the engine rules
func (e *Engine) RateProfileFor(employmentType domain.EmploymentType) domain.EmploymentRateProfile {
	return rateProfileFrom(e.Rules, employmentType)
}

// record hands an entry to the analytics sink. Failures are logged and never
// reach the caller.
func (e *Engine) record(ctx context.Context, in domain.SimulationInput, res domain.ProjectionResult) {
	if e.Analytics == nil {
		return
	}
	entry := domain.NewAnalyticsEntry(in, res)
	entry.ID = uuid.NewString()
	entry.RecordedAt = e.Clock.Now().UTC()
	if err := e.Analytics.Record(ctx, entry); err != nil {
		e.Logger.Warnf("analytics: failed to record %s simulation: %v", res.Mode, err)
	}
}
