// Package report renders an already-structured diagnostic list for the
// caller: plain text for humans, JSON and SARIF for tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/perlcheck/perlcheck/internal/diag"
)

// Recognized output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSarif = "sarif"
)

const toolName = "perlcheck"

var severityColors = map[diag.Severity]*color.Color{
	diag.SeverityWarning: color.New(color.FgYellow),
	diag.SeverityError:   color.New(color.FgRed),
}

// Write renders diags to w in the requested format. targetPath is only used
// by formats that carry artifact locations.
func Write(w io.Writer, format string, diags []diag.Diagnostic, targetPath string) error {
	switch format {
	case FormatText, "":
		return WriteText(w, diags)
	case FormatJSON:
		return WriteJSON(w, diags)
	case FormatSarif:
		return WriteSarif(w, diags, targetPath)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteText prints one colon-separated line per diagnostic:
// severity:line:origin:message. Severity is colorized on terminals.
func WriteText(w io.Writer, diags []diag.Diagnostic) error {
	for _, d := range diags {
		severity := string(d.Severity)
		if c, ok := severityColors[d.Severity]; ok {
			severity = c.Sprint(severity)
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%s:%s\n", severity, d.Line, d.Origin, d.Message); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON encodes the list as an ordered JSON array of records with keys
// type, message, line and from. An empty list encodes as [].
func WriteJSON(w io.Writer, diags []diag.Diagnostic) error {
	if diags == nil {
		diags = []diag.Diagnostic{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	return encoder.Encode(diags)
}

// ReadJSON decodes a list previously written by WriteJSON.
func ReadJSON(r io.Reader) ([]diag.Diagnostic, error) {
	var diags []diag.Diagnostic
	if err := json.NewDecoder(r).Decode(&diags); err != nil {
		return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
	}
	return diags, nil
}

// WriteSarif renders the list as a SARIF 2.1.0 report with a single run.
func WriteSarif(w io.Writer, diags []diag.Diagnostic, targetPath string) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, "https://github.com/perlcheck/perlcheck")
	for _, d := range diags {
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(targetPath)).
				WithRegion(sarif.NewRegion().WithStartLine(d.Line)),
		)

		result := sarif.NewRuleResult(d.Origin).
			WithMessage(sarif.NewTextMessage(d.Message)).
			WithLevel(sarifLevel(d.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	report.AddRun(run)

	return report.PrettyWrite(w)
}

func sarifLevel(s diag.Severity) string {
	if s == diag.SeverityError {
		return "error"
	}
	return "warning"
}
