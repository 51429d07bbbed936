package recording

import (
	"fmt"
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// informationURI identifies quell in SARIF tool metadata.
const informationURI = "urn:quell"

// ReadSARIF reads the results of every run of a SARIF log. Results carrying
// at least one suppression are recorded as suppressed.
func ReadSARIF(r io.Reader) (*Recording, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	report, err := sarif.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse sarif: %w", err)
	}
	return FromSARIF(report), nil
}

// FromSARIF converts a parsed SARIF report.
func FromSARIF(report *sarif.Report) *Recording {
	rec := New("")
	for _, run := range report.Runs {
		if rec.Tool == "" && run.Tool.Driver != nil {
			rec.Tool = run.Tool.Driver.Name
		}
		for _, res := range run.Results {
			rec.Entries = append(rec.Entries, entryFromResult(res))
		}
	}
	return rec
}

func entryFromResult(res *sarif.Result) Entry {
	e := Entry{
		Severity:   "warning",
		Suppressed: len(res.Suppressions) > 0,
	}
	if res.RuleID != nil {
		e.RuleID = *res.RuleID
	}
	if res.Level != nil {
		e.Severity = *res.Level
	}
	if res.Message.Text != nil {
		e.Message = *res.Message.Text
	}
	if len(res.Locations) == 0 {
		return e
	}
	loc := res.Locations[0].PhysicalLocation
	if loc == nil || loc.ArtifactLocation == nil || loc.ArtifactLocation.URI == nil {
		return e
	}
	e.Path = *loc.ArtifactLocation.URI
	if reg := loc.Region; reg != nil {
		e.StartLine = deref(reg.StartLine)
		e.StartCol = deref(reg.StartColumn)
		e.EndLine = deref(reg.EndLine)
		e.EndCol = deref(reg.EndColumn)
	}
	return e
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// ToSARIF converts rec into a single-run SARIF 2.1.0 report.
func ToSARIF(rec *Recording) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}
	tool := rec.Tool
	if tool == "" {
		tool = "quell"
	}
	run := sarif.NewRunWithInformationURI(tool, informationURI)
	for i := range rec.Entries {
		e := &rec.Entries[i]
		rule := run.AddRule(e.RuleID)
		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(e.Message)).
			WithLevel(sarifLevel(e.Severity))
		if e.InSource() {
			region := sarif.NewRegion().WithStartLine(e.StartLine)
			if e.StartCol > 0 {
				region = region.WithStartColumn(e.StartCol)
			}
			if e.EndLine > 0 {
				region = region.WithEndLine(e.EndLine).WithEndColumn(e.EndCol)
			}
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(e.Path)).
					WithRegion(region),
			)
			result = result.WithLocations([]*sarif.Location{location})
		}
		if e.Suppressed {
			result.Suppressions = append(result.Suppressions, sarif.NewSuppression("inSource"))
		}
		run.AddResult(result)
	}
	report.AddRun(run)
	return report, nil
}

// WriteSARIF writes rec as indented SARIF.
func WriteSARIF(w io.Writer, rec *Recording) error {
	report, err := ToSARIF(rec)
	if err != nil {
		return err
	}
	return report.PrettyWrite(w)
}

func sarifLevel(severity string) string {
	switch strings.ToLower(severity) {
	case "error":
		return "error"
	case "warning", "warn":
		return "warning"
	case "info", "note":
		return "note"
	default:
		return "none"
	}
}
