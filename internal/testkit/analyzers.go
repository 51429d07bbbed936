// Package testkit holds fixtures shared by package tests.
package testkit

import (
	"context"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"quell/internal/analysis"
	"quell/internal/diag"
	"quell/internal/source"
)

// Rule makes Words report ID with Severity at every occurrence of Word.
// A rule with an empty Word reports one diagnostic without a location per
// analysed document.
type Rule struct {
	ID       string
	Word     string
	Severity diag.Severity
}

// Warn is a warning rule for word.
func Warn(id, word string) Rule {
	return Rule{ID: id, Word: word, Severity: diag.SevWarning}
}

// Words returns an analyzer applying rules in order.
func Words(rules ...Rule) analysis.Analyzer {
	return analysis.NewAnalyzer("words", func(_ context.Context, pass *analysis.Pass) error {
		text := string(pass.File().Content)
		for _, r := range rules {
			if r.Word == "" {
				diag.ReportProject(pass, r.Severity, r.ID, r.ID+" applies to the project").Emit()
				continue
			}
			for off := 0; ; {
				i := strings.Index(text[off:], r.Word)
				if i < 0 {
					break
				}
				sp, err := wordSpan(pass.Document.ID, off+i, len(r.Word))
				if err != nil {
					return err
				}
				diag.NewReportBuilder(pass, r.Severity, r.ID, diag.At(sp), "found "+r.Word).Emit()
				off += i + len(r.Word)
			}
		}
		return nil
	})
}

// Failing returns an analyzer that fails with err.
func Failing(err error) analysis.Analyzer {
	return analysis.NewAnalyzer("failing", func(context.Context, *analysis.Pass) error {
		return err
	})
}

func wordSpan(file source.FileID, start, n int) (source.Span, error) {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return source.Span{}, fmt.Errorf("word offset overflow: %w", err)
	}
	e, err := safecast.Conv[uint32](start + n)
	if err != nil {
		return source.Span{}, fmt.Errorf("word end overflow: %w", err)
	}
	return source.Span{File: file, Start: s, End: e}, nil
}
