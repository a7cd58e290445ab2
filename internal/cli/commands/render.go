package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// AnalysisResult is one named result on an analyzed function.
type AnalysisResult struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// FunctionReport is one analyzed function with its results in
// application order.
type FunctionReport struct {
	File      string           `json:"file" yaml:"file"`
	Function  string           `json:"function" yaml:"function"`
	Line      int              `json:"line" yaml:"line"`
	Signature string           `json:"signature" yaml:"signature"`
	Results   []AnalysisResult `json:"results" yaml:"results"`
}

func (r FunctionReport) result(name string) any {
	for _, res := range r.Results {
		if res.Name == name {
			return res.Value
		}
	}
	return nil
}

// renderReports writes the reports in the requested format. The
// analysis names become per-analysis columns in tabular formats.
func renderReports(w io.Writer, format string, analysisNames []string, reports []FunctionReport) error {
	switch format {
	case "json":
		return renderJSON(w, reports)
	case "yaml":
		return renderYAML(w, reports)
	case "csv":
		return renderReportsCSV(w, analysisNames, reports)
	default:
		return renderReportsTable(w, analysisNames, reports)
	}
}

func renderReportsTable(w io.Writer, analysisNames []string, reports []FunctionReport) error {
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(w, "(0 functions)")
		return nil
	}

	titleCaser := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"File", "Function", "Line", "Signature"}
	for _, name := range analysisNames {
		header = append(header, titleCaser.String(name))
	}
	t.AppendHeader(header)

	for _, report := range reports {
		row := table.Row{report.File, report.Function, report.Line, report.Signature}
		for _, name := range analysisNames {
			row = append(row, formatValue(report.result(name)))
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d functions)\n", len(reports))
	return nil
}

func renderReportsCSV(w io.Writer, analysisNames []string, reports []FunctionReport) error {
	cw := csv.NewWriter(w)

	header := append([]string{"file", "function", "line"}, analysisNames...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, report := range reports {
		row := []string{report.File, report.Function, strconv.Itoa(report.Line)}
		for _, name := range analysisNames {
			row = append(row, formatValue(report.result(name)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// renderListing writes a generic listing: tabular formats use the
// headers and rows, structured formats encode payload.
func renderListing(w io.Writer, format string, headers []string, rows [][]string, payload any) error {
	switch format {
	case "json":
		return renderJSON(w, payload)
	case "yaml":
		return renderYAML(w, payload)
	case "csv":
		return renderListingCSV(w, headers, rows)
	default:
		return renderListingTable(w, headers, rows)
	}
}

func renderListingTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}

	t.Render()
	return nil
}

func renderListingCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
