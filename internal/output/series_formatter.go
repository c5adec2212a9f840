package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// SeriesFormatter renders a chart series
type SeriesFormatter interface {
	Name() string
	FormatSeries(series domain.Series) ([]byte, error)
}

// SeriesConsoleFormatter renders a series as an aligned table
type SeriesConsoleFormatter struct{}

func (SeriesConsoleFormatter) Name() string { return "console" }

func (SeriesConsoleFormatter) FormatSeries(series domain.Series) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s series (%d years)\n", series.Kind, series.Len())

	if series.Kind == domain.SeriesBreakdown {
		fmt.Fprintf(&buf, "%-6s %14s %14s %16s %16s %16s %16s\n", "Year", "Employee", "Employer", "Contributions", "Valorization", "Initial", "Capital")
		for _, p := range series.Breakdown {
			fmt.Fprintf(&buf, "%-6d %14s %14s %16s %16s %16s %16s\n", p.Year,
				Money(p.EmployeeContribution).StringFixed(2),
				Money(p.EmployerContribution).StringFixed(2),
				Money(p.CumulativeContributions).StringFixed(2),
				Money(p.CumulativeValorization).StringFixed(2),
				Money(p.InitialCapital).StringFixed(2),
				Money(p.Capital).StringFixed(2))
		}
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "%-6s %18s\n", "Year", "Capital")
	for _, p := range series.Points {
		marker := ""
		if p.Exhausted {
			marker = "  (exhausted)"
		}
		fmt.Fprintf(&buf, "%-6d %18s%s\n", p.Year, Money(p.Value).StringFixed(2), marker)
	}
	return buf.Bytes(), nil
}

// SeriesCSVFormatter renders a series as CSV
type SeriesCSVFormatter struct{}

func (SeriesCSVFormatter) Name() string { return "csv" }

func (SeriesCSVFormatter) FormatSeries(series domain.Series) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if series.Kind == domain.SeriesBreakdown {
		if err := w.Write([]string{"Year", "EmployeeContribution", "EmployerContribution", "CumulativeContributions", "CumulativeValorization", "InitialCapital", "Capital"}); err != nil {
			return nil, err
		}
		for _, p := range series.Breakdown {
			row := []string{
				strconv.Itoa(p.Year),
				Money(p.EmployeeContribution).StringFixed(2),
				Money(p.EmployerContribution).StringFixed(2),
				Money(p.CumulativeContributions).StringFixed(2),
				Money(p.CumulativeValorization).StringFixed(2),
				Money(p.InitialCapital).StringFixed(2),
				Money(p.Capital).StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	} else {
		if err := w.Write([]string{"Year", "Value", "Exhausted"}); err != nil {
			return nil, err
		}
		for _, p := range series.Points {
			if err := w.Write([]string{strconv.Itoa(p.Year), Money(p.Value).StringFixed(2), strconv.FormatBool(p.Exhausted)}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// SeriesJSONFormatter renders a series as JSON
type SeriesJSONFormatter struct{}

func (SeriesJSONFormatter) Name() string { return "json" }

func (SeriesJSONFormatter) FormatSeries(series domain.Series) ([]byte, error) {
	return json.MarshalIndent(series, "", "  ")
}

// NewSeriesFormatter creates a series formatter based on the format name
func NewSeriesFormatter(format string) SeriesFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SeriesCSVFormatter{}
	case "json":
		return SeriesJSONFormatter{}
	default:
		return SeriesConsoleFormatter{}
	}
}
