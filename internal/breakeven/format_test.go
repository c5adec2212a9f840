package breakeven

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/zusim/internal/domain"
)

func sampleResult() *Result {
	return &Result{
		Lever:           LeverExtraYears,
		TargetPension:   5500,
		BasePension:     4834.38,
		Success:         true,
		Iterations:      11,
		ConvergenceInfo: "Converged within 0.01 years after 11 iterations",
		ExtraYears:      1.82,
		Scenario: domain.ScenarioResult{
			ExtraYears:    1.82,
			Pension:       5501.2,
			Capital:       1300000,
			RetirementAge: 66.82,
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	tf := &TableFormatter{}
	out := tf.Format(sampleResult())

	assert.Contains(t, out, "TARGET PENSION SOLVER")
	assert.Contains(t, out, "Target pension:  5500.00 zł")
	assert.Contains(t, out, "Current pension: 4834.38 zł")
	assert.Contains(t, out, "Status:          reachable")
	assert.Contains(t, out, "Extra years:     1.82")
	assert.Contains(t, out, "Retirement age:  66.82")
	assert.Contains(t, out, "Pension:         5501.20 zł")
}

func TestTableFormatter_AlreadyMet(t *testing.T) {
	tf := &TableFormatter{}
	out := tf.Format(&Result{Lever: LeverSalary, TargetPension: 100, BasePension: 4834.38, Success: true, AlreadyMet: true})

	assert.Contains(t, out, "Status:          met")
	assert.NotContains(t, out, "REQUIRED CHANGE")
}

func TestTableFormatter_FormatMulti(t *testing.T) {
	tf := &TableFormatter{}
	salary := Result{Lever: LeverSalary, ExtraSalaryPercent: 13.77, Success: true, Scenario: domain.ScenarioResult{Pension: 5500.1}}
	missed := Result{Lever: LeverExtraYears, ExtraYears: 15}

	out := tf.FormatMulti(&MultiLeverResult{
		TargetPension:   5500,
		BasePension:     4834.38,
		Results:         []Result{missed, salary},
		Recommendations: []string{"Raise monthly income by 13.8%"},
	})

	assert.Contains(t, out, "out of reach")
	assert.Contains(t, out, "+15.00 yrs")
	assert.Contains(t, out, "+13.77%")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "Raise monthly income by 13.8%")
}

func TestJSONFormatter(t *testing.T) {
	jf := &JSONFormatter{Pretty: true}
	out, err := jf.Format(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"lever\": \"extra_years\"")

	var decoded Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1.82, decoded.ExtraYears)

	compact := &JSONFormatter{}
	out, err = compact.FormatMulti(&MultiLeverResult{TargetPension: 5500})
	require.NoError(t, err)
	assert.Contains(t, out, `"targetPension":5500`)
}
