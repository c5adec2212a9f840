package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSimulationInput_Clone(t *testing.T) {
	original := SimulationInput{
		BirthDate:        DatePtr("1985-04-12"),
		Gender:           GenderFemale,
		MonthlyIncome:    7200,
		EmploymentType:   EmploymentB2B,
		RetirementAge:    IntPtr(62),
		ValorizationRate: FloatPtr(0.04),
		Detailed: &DetailedInput{
			SubaccountBalance:          12000,
			SubaccountValorizationRate: FloatPtr(0.03),
			Benefits:                   []Benefit{BenefitSickness},
			CapitalAsOfYear:            IntPtr(2023),
		},
	}

	copied := original.Clone()
	assert.Equal(t, original, copied)

	assert.NotSame(t, original.BirthDate, copied.BirthDate)
	assert.NotSame(t, original.RetirementAge, copied.RetirementAge)
	assert.NotSame(t, original.Detailed, copied.Detailed)

	*copied.RetirementAge = 67
	*copied.ValorizationRate = 0.06
	copied.Detailed.Benefits[0] = BenefitAccident
	*copied.Detailed.CapitalAsOfYear = 2020

	assert.Equal(t, 62, *original.RetirementAge, "original should be unchanged")
	assert.Equal(t, 0.04, *original.ValorizationRate)
	assert.Equal(t, BenefitSickness, original.Detailed.Benefits[0])
	assert.Equal(t, 2023, *original.Detailed.CapitalAsOfYear)
}

func TestSimulationInput_CloneNilFields(t *testing.T) {
	copied := SimulationInput{MonthlyIncome: 1000}.Clone()
	assert.Nil(t, copied.BirthDate)
	assert.Nil(t, copied.Detailed)
	assert.Equal(t, DetailedInput{}, copied.DetailedOrZero())
}

func TestParseSimulationMode(t *testing.T) {
	tests := []struct {
		input    string
		expected SimulationMode
		ok       bool
	}{
		{"", ModeQuick, true},
		{"quick", ModeQuick, true},
		{" Detailed ", ModeDetailed, true},
		{"monte-carlo", "", false},
	}
	for _, tt := range tests {
		mode, ok := ParseSimulationMode(tt.input)
		assert.Equal(t, tt.expected, mode, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, GenderMale.IsValid())
	assert.True(t, GenderFemale.IsValid())
	assert.False(t, Gender("x").IsValid())

	assert.True(t, EmploymentSelfEmployed.IsKnown())
	assert.False(t, EmploymentType("contractor").IsKnown())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	in := SimulationInput{BirthDate: DatePtr("1990-01-01"), Gender: GenderMale}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"birthDate":"1990-01-01"`)

	var out SimulationInput
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotNil(t, out.BirthDate)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), out.BirthDate.Time)
}

func TestDate_Invalid(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"01/02/1990"`), &d)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	assert.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}

func TestDate_YAML(t *testing.T) {
	var in SimulationInput
	src := "birth_date: 1975-11-30\ngender: male\nmonthly_income: 5000\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &in))
	require.NotNil(t, in.BirthDate)
	assert.Equal(t, "1975-11-30", in.BirthDate.String())

	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "birth_date: \"1975-11-30\"")
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	assert.NoError(t, rules.Validate())
	assert.Equal(t, 18, rules.LifeExpectancyYears())
	assert.Equal(t, 65, rules.DefaultRetirementAge(GenderMale))
	assert.Equal(t, 60, rules.DefaultRetirementAge(GenderFemale))
	assert.Equal(t, 25.0, rules.MinimumYears(GenderMale))
	assert.Equal(t, 20.0, rules.MinimumYears(GenderFemale))
	assert.Equal(t, 25.0, rules.MinimumYears(""), "unset gender uses the male threshold")
}

func TestRules_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Rules)
		errMsg string
	}{
		{"missing profile", func(r *Rules) { delete(r.RateProfiles, EmploymentB2B) }, "missing"},
		{"employee above total", func(r *Rules) {
			p := r.RateProfiles[EmploymentContract]
			p.EmployeeRate = 0.3
			r.RateProfiles[EmploymentContract] = p
		}, "employee rate"},
		{"zero divisor", func(r *Rules) { r.LifeExpectancyMonths = 0 }, "life expectancy"},
		{"negative minimum", func(r *Rules) { r.MinimumPension = -1 }, "minimum pension"},
		{"tax rate out of range", func(r *Rules) { r.TaxRateHigh = 1.5 }, "tax rates"},
		{"sick pay out of range", func(r *Rules) { r.SickPayRatio = 2 }, "sick pay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.modify(&rules)
			err := rules.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewAnalyticsEntry(t *testing.T) {
	in := SimulationInput{MonthlyIncome: 4000, EmploymentType: EmploymentB2B, Gender: GenderFemale, PostalCode: "31-000"}
	res := ProjectionResult{Mode: ModeDetailed, CurrentAge: 30, RetirementAge: 60, ProjectedPension: 2500, YearsOfWork: 30}

	entry := NewAnalyticsEntry(in, res)
	assert.Equal(t, ModeDetailed, entry.Type)
	assert.Equal(t, 4000.0, entry.MonthlyIncome)
	assert.Equal(t, EmploymentB2B, entry.EmploymentType)
	assert.Equal(t, GenderFemale, entry.Gender)
	assert.Equal(t, 30, entry.CurrentAge)
	assert.Equal(t, 60, entry.RetirementAge)
	assert.Equal(t, 2500.0, entry.ProjectedPension)
	assert.Equal(t, "31-000", entry.PostalCode)
	assert.Empty(t, entry.ID, "identifiers are assigned by the engine")
}
