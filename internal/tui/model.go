package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/zusim/internal/calculation"
	"github.com/rgehrsitz/zusim/internal/config"
	"github.com/rgehrsitz/zusim/internal/domain"
)

// Field indexes the form inputs
type Field int

const (
	FieldBirthDate Field = iota
	FieldGender
	FieldMonthlyIncome
	FieldEmploymentType
	FieldWorkStartYear
	FieldRetirementAge
	FieldInitialCapital
	FieldMode
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Birth date",
	"Gender",
	"Monthly income (zł)",
	"Employment type",
	"Work start year",
	"Retirement age",
	"Initial capital (zł)",
	"Mode",
}

var fieldPlaceholders = [fieldCount]string{
	"YYYY-MM-DD",
	"male / female",
	"e.g. 6000",
	"employment / b2b / self-employed",
	"optional",
	"default by gender",
	"optional",
	"quick / detailed",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Unknown"
	}
	return fieldLabels[f]
}

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Calculate key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Calculate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear results")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// Model is the simulator form and its results panel
type Model struct {
	engine *calculation.Engine
	keys   keyMap

	inputs []textinput.Model
	focus  Field

	result    *domain.ProjectionResult
	scenarios []domain.ScenarioResult
	err       error

	width  int
	height int
}

// NewModel creates the form, prefilled from initial when it is not nil
func NewModel(engine *calculation.Engine, initial *domain.SimulationInput) Model {
	m := Model{
		engine: engine,
		keys:   defaultKeyMap(),
		inputs: make([]textinput.Model, fieldCount),
		width:  80,
		height: 24,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 32
		ti.Width = 32
		m.inputs[i] = ti
	}
	m.inputs[FieldMode].SetValue(string(domain.ModeQuick))
	if initial != nil {
		m.prefill(*initial)
	}
	m.inputs[FieldBirthDate].Focus()
	return m
}

func (m *Model) prefill(in domain.SimulationInput) {
	if in.BirthDate != nil {
		m.inputs[FieldBirthDate].SetValue(in.BirthDate.String())
	}
	m.inputs[FieldGender].SetValue(string(in.Gender))
	m.inputs[FieldMonthlyIncome].SetValue(strconv.FormatFloat(in.MonthlyIncome, 'f', -1, 64))
	m.inputs[FieldEmploymentType].SetValue(string(in.EmploymentType))
	if in.WorkStartYear != nil {
		m.inputs[FieldWorkStartYear].SetValue(strconv.Itoa(*in.WorkStartYear))
	}
	if in.RetirementAge != nil {
		m.inputs[FieldRetirementAge].SetValue(strconv.Itoa(*in.RetirementAge))
	}
	if in.InitialCapital != 0 {
		m.inputs[FieldInitialCapital].SetValue(strconv.FormatFloat(in.InitialCapital, 'f', -1, 64))
	}
}

// Init starts the cursor blinking
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Focused returns the field that receives keystrokes
func (m Model) Focused() Field { return m.focus }

// Value returns the raw text of a field
func (m Model) Value(f Field) string { return m.inputs[f].Value() }

// Result returns the last projection, or nil before the first calculation
func (m Model) Result() *domain.ProjectionResult { return m.result }

// Err returns the last validation or calculation error
func (m Model) Err() error { return m.err }

// BuildInput converts the form into a validated simulation input
func (m Model) BuildInput() (domain.SimulationInput, domain.SimulationMode, error) {
	var in domain.SimulationInput

	mode, ok := domain.ParseSimulationMode(m.Value(FieldMode))
	if !ok {
		return in, "", &config.ValidationError{Field: "mode", Reason: fmt.Sprintf("must be quick or detailed, got %q", m.Value(FieldMode))}
	}

	if v := strings.TrimSpace(m.Value(FieldBirthDate)); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return in, "", &config.ValidationError{Field: "birth_date", Reason: err.Error()}
		}
		in.BirthDate = &d
	}

	in.Gender = domain.Gender(strings.ToLower(strings.TrimSpace(m.Value(FieldGender))))
	in.EmploymentType = domain.EmploymentType(strings.ToLower(strings.TrimSpace(m.Value(FieldEmploymentType))))

	income, err := parseFloatField("monthly_income", m.Value(FieldMonthlyIncome), true)
	if err != nil {
		return in, "", err
	}
	in.MonthlyIncome = income

	if in.WorkStartYear, err = parseIntField("work_start_year", m.Value(FieldWorkStartYear)); err != nil {
		return in, "", err
	}
	if in.RetirementAge, err = parseIntField("retirement_age", m.Value(FieldRetirementAge)); err != nil {
		return in, "", err
	}
	if in.InitialCapital, err = parseFloatField("initial_capital", m.Value(FieldInitialCapital), false); err != nil {
		return in, "", err
	}

	if err := config.NewInputParserAt(m.engine.Clock.Now()).ValidateInput(&in); err != nil {
		return in, "", err
	}
	return in, mode, nil
}

func parseFloatField(field, raw string, required bool) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if raw == "" {
		if required {
			return 0, &config.ValidationError{Field: field, Reason: "is required"}
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, &config.ValidationError{Field: field, Reason: fmt.Sprintf("not a number: %q", raw)}
	}
	return v, nil
}

func parseIntField(field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &config.ValidationError{Field: field, Reason: fmt.Sprintf("not a whole number: %q", raw)}
	}
	return &v, nil
}

// calculateCmd runs the projection and the default what-ifs off the update loop
func calculateCmd(engine *calculation.Engine, in domain.SimulationInput, mode domain.SimulationMode) tea.Cmd {
	return func() tea.Msg {
		return CalculationCompleteMsg{
			Input:     in,
			Result:    engine.Project(context.Background(), in, mode),
			Scenarios: engine.EvaluateScenarios(in),
		}
	}
}
