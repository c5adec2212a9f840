package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/zusim/internal/calculation"
	"github.com/rgehrsitz/zusim/internal/config"
	"github.com/rgehrsitz/zusim/internal/domain"
)

func newTestModel(initial *domain.SimulationInput) Model {
	engine := calculation.NewEngine()
	engine.SetClock(calculation.FixedClock{At: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)})
	return NewModel(engine, initial)
}

func referenceInput() *domain.SimulationInput {
	return &domain.SimulationInput{
		BirthDate:      domain.DatePtr("1990-01-01"),
		Gender:         domain.GenderMale,
		MonthlyIncome:  6000,
		EmploymentType: domain.EmploymentContract,
		WorkStartYear:  domain.IntPtr(2010),
		RetirementAge:  domain.IntPtr(65),
	}
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNewModel_Prefill(t *testing.T) {
	m := newTestModel(referenceInput())

	assert.Equal(t, FieldBirthDate, m.Focused())
	assert.Equal(t, "1990-01-01", m.Value(FieldBirthDate))
	assert.Equal(t, "male", m.Value(FieldGender))
	assert.Equal(t, "6000", m.Value(FieldMonthlyIncome))
	assert.Equal(t, "2010", m.Value(FieldWorkStartYear))
	assert.Equal(t, "65", m.Value(FieldRetirementAge))
	assert.Equal(t, "", m.Value(FieldInitialCapital))
	assert.Equal(t, "quick", m.Value(FieldMode))
	assert.Nil(t, m.Result())
}

func TestFocusCycling(t *testing.T) {
	m := newTestModel(nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FieldGender, m.Focused())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FieldMode, m.Focused(), "shift+tab wraps to the last field")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FieldBirthDate, m.Focused(), "tab wraps to the first field")
}

func TestTypingGoesToFocusedField(t *testing.T) {
	m := newTestModel(nil)
	m = typeText(m, "1985-03-15")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "female")

	assert.Equal(t, "1985-03-15", m.Value(FieldBirthDate))
	assert.Equal(t, "female", m.Value(FieldGender))
	assert.Equal(t, "", m.Value(FieldMonthlyIncome))
}

func TestCalculate(t *testing.T) {
	m := newTestModel(referenceInput())

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, m.Err())
	require.NotNil(t, cmd)

	msg, ok := cmd().(CalculationCompleteMsg)
	require.True(t, ok)
	assert.Len(t, msg.Scenarios, len(calculation.DefaultWhatIfs))

	updated, _ := m.Update(msg)
	m = updated.(Model)
	require.NotNil(t, m.Result())
	assert.Equal(t, 31.0, m.Result().YearsOfWork)
	assert.Equal(t, domain.ModeQuick, m.Result().Mode)

	view := m.View()
	assert.Contains(t, view, "Projected pension")
	assert.Contains(t, view, "Work 2 years longer")
	assert.Contains(t, view, "Earn 10% more")
	assert.Contains(t, view, "zł")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, m.Result())
}

func TestCalculate_ValidationError(t *testing.T) {
	in := referenceInput()
	in.Gender = "other"
	m := newTestModel(in)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Error(t, m.Err())

	var verr *config.ValidationError
	require.True(t, errors.As(m.Err(), &verr))
	assert.Equal(t, "gender", verr.Field)
	assert.Contains(t, m.View(), "Error: gender")
}

func TestBuildInput_ParseErrors(t *testing.T) {
	m := newTestModel(referenceInput())
	m.inputs[FieldMonthlyIncome].SetValue("abc")
	_, _, err := m.BuildInput()
	var verr *config.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "monthly_income", verr.Field)

	m = newTestModel(referenceInput())
	m.inputs[FieldRetirementAge].SetValue("sixty")
	_, _, err = m.BuildInput()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "retirement_age", verr.Field)

	m = newTestModel(referenceInput())
	m.inputs[FieldMode].SetValue("turbo")
	_, _, err = m.BuildInput()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "mode", verr.Field)
}

func TestBuildInput_AcceptsCommaDecimalsAndDetailedMode(t *testing.T) {
	m := newTestModel(referenceInput())
	m.inputs[FieldInitialCapital].SetValue("12 500,50")
	m.inputs[FieldMode].SetValue("detailed")

	in, mode, err := m.BuildInput()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDetailed, mode)
	assert.Equal(t, 12500.5, in.InitialCapital)
	assert.Equal(t, 65, *in.RetirementAge)
}

func TestQuit(t *testing.T) {
	m := newTestModel(nil)
	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, updated.(Model).width)
}
