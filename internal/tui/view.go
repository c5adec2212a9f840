package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/zusim/internal/domain"
	"github.com/rgehrsitz/zusim/internal/tui/components"
)

// View renders the form next to the results panel
func (m Model) View() string {
	title := TitleStyle.Render("ZUSIM - ZUS Pension Simulator")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderForm(), m.renderResults())

	parts := []string{title, body}
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i := range m.inputs {
		f := Field(i)
		label := FieldLabelStyle.Render(f.String())
		if f == m.focus {
			label = FocusedLabelStyle.Render(f.String())
		}
		b.WriteString(label + " " + m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteString("\n")
		}
	}
	return ActiveBorderStyle.Render(b.String())
}

func (m Model) renderResults() string {
	if m.result == nil {
		return BorderStyle.Render(SubtitleStyle.Render("Fill in the form and press enter to calculate."))
	}
	res := m.result

	pension := components.NewMetricCard("Projected pension", FormatCurrency(money(res.ProjectedPension))+" / month").
		WithDescription(floorStatus(res))
	capital := components.NewMetricCard("Total capital", FormatCurrency(money(res.TotalCapitalAccumulated))).
		WithDescription(fmt.Sprintf("%g years of work, retiring at %d in %d", res.YearsOfWork, res.RetirementAge, res.RetirementYear))
	replacement := components.NewMetricCard("Replacement rate", money(res.ReplacementRate*100).StringFixed(1)+"%").
		WithDescription("Net income now: " + FormatCurrency(money(res.NetIncome)))

	cards := []*components.MetricCard{pension, capital, replacement}
	for _, s := range m.scenarios {
		diff := money(s.Pension - res.ProjectedPension)
		card := components.NewMetricCard(describeScenario(s), FormatCurrency(money(s.Pension))).
			WithTrend(!diff.IsNegative(), signed(diff, 2)+" zł ("+signed(money(s.PensionChangePercent), 1)+"%)")
		cards = append(cards, card)
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(components.MetricGrid(cards, 2))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		StatusKeyStyle.Render("tab") + " next",
		StatusKeyStyle.Render("shift+tab") + " previous",
		StatusKeyStyle.Render("enter") + " calculate",
		StatusKeyStyle.Render("ctrl+r") + " clear",
		StatusKeyStyle.Render("esc") + " quit",
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

func floorStatus(res *domain.ProjectionResult) string {
	switch {
	case res.MinimumPensionApplied:
		return "Raised to the minimum pension"
	case res.QualifiedForMinimum:
		return "Qualified for the minimum pension"
	default:
		return "Not yet qualified for the minimum pension"
	}
}

func describeScenario(s domain.ScenarioResult) string {
	switch {
	case s.ExtraYears != 0 && s.ExtraSalaryPercent != 0:
		return fmt.Sprintf("+%g years, +%g%% salary", s.ExtraYears, s.ExtraSalaryPercent)
	case s.ExtraYears != 0:
		return fmt.Sprintf("Work %g years longer", s.ExtraYears)
	case s.ExtraSalaryPercent != 0:
		return fmt.Sprintf("Earn %g%% more", s.ExtraSalaryPercent)
	default:
		return "As planned"
	}
}

func signed(d decimal.Decimal, places int32) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(places)
	}
	return d.StringFixed(places)
}

// money converts an engine amount for display; non-finite values show as zero
func money(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
