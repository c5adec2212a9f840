package analytics

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// TopPostalPrefixes is the number of postal-code prefixes kept in a summary
const TopPostalPrefixes = 5

// PrefixCount is the number of runs from one postal-code prefix
type PrefixCount struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Count  int    `json:"count" yaml:"count"`
}

// Summary aggregates usage over all recorded runs
type Summary struct {
	TotalRuns          int                           `json:"totalRuns" yaml:"total_runs"`
	ByType             map[domain.SimulationMode]int `json:"byType" yaml:"by_type"`
	ByEmploymentType   map[domain.EmploymentType]int `json:"byEmploymentType" yaml:"by_employment_type"`
	ByGender           map[domain.Gender]int         `json:"byGender" yaml:"by_gender"`
	AveragePension     float64                       `json:"averagePension" yaml:"average_pension"`
	AverageYearsOfWork float64                       `json:"averageYearsOfWork" yaml:"average_years_of_work"`
	TopPostalPrefixes  []PrefixCount                 `json:"topPostalPrefixes" yaml:"top_postal_prefixes"`
}

// Summarize scans entries once. Averages are zero for an empty slice.
func Summarize(entries []domain.AnalyticsEntry) Summary {
	s := Summary{
		TotalRuns:         len(entries),
		ByType:            map[domain.SimulationMode]int{},
		ByEmploymentType:  map[domain.EmploymentType]int{},
		ByGender:          map[domain.Gender]int{},
		TopPostalPrefixes: []PrefixCount{},
	}
	if len(entries) == 0 {
		return s
	}

	var pensionSum, yearsSum float64
	prefixes := map[string]int{}
	for _, e := range entries {
		s.ByType[e.Type]++
		s.ByEmploymentType[e.EmploymentType]++
		s.ByGender[e.Gender]++
		pensionSum += e.ProjectedPension
		yearsSum += e.YearsOfWork
		if p := PostalPrefix(e.PostalCode); p != "" {
			prefixes[p]++
		}
	}
	s.AveragePension = pensionSum / float64(len(entries))
	s.AverageYearsOfWork = yearsSum / float64(len(entries))

	for prefix, count := range prefixes {
		s.TopPostalPrefixes = append(s.TopPostalPrefixes, PrefixCount{Prefix: prefix, Count: count})
	}
	sort.Slice(s.TopPostalPrefixes, func(i, j int) bool {
		a, b := s.TopPostalPrefixes[i], s.TopPostalPrefixes[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Prefix < b.Prefix
	})
	if len(s.TopPostalPrefixes) > TopPostalPrefixes {
		s.TopPostalPrefixes = s.TopPostalPrefixes[:TopPostalPrefixes]
	}
	return s
}

// PostalPrefix returns the two-digit postal district of a Polish postal code
// ("00-950" -> "00"), or "" when the code does not start with two digits
func PostalPrefix(code string) string {
	code = strings.TrimSpace(code)
	if len(code) < 2 {
		return ""
	}
	for _, c := range code[:2] {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return code[:2]
}
