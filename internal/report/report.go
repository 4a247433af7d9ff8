// Package report accumulates rule verdicts into per-category counters and
// renders the validation transcript and final summary.
package report

import (
	"fmt"
	"strings"

	"conjcheck/internal/rules"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))
)

// Counters holds the running per-category tallies across the whole corpus.
// The zero value is ready to use; Merge combines the result of independent
// evaluations, so group results could be produced in parallel and folded back
// in file-sort order.
type Counters struct {
	TotalRecords int
	ValidRecords int

	SyntaxErrors         int
	FieldViolations      int
	TenseStructureErrors int
	FilenameMismatches   int
	FormattingViolations int
	LanguageMismatches   int
	TenseSetMismatches   int
	StructuralErrors     int
}

// CountRecord folds one record's verdicts in. A record is valid only if
// every rule that applied to it passed.
func (c *Counters) CountRecord(verdicts []rules.Verdict) {
	c.TotalRecords++
	valid := true
	for _, v := range verdicts {
		if v.Passed {
			continue
		}
		valid = false
		switch v.Rule {
		case rules.RuleSyntax:
			c.SyntaxErrors++
		case rules.RuleRequiredFields:
			c.FieldViolations++
		case rules.RuleTenseStructure:
			c.TenseStructureErrors++
		case rules.RuleFilenameConsistency:
			c.FilenameMismatches++
		case rules.RuleExampleFormatting:
			c.FormattingViolations++
		}
	}
	if valid {
		c.ValidRecords++
	}
}

// CountGroup folds one language group's verdicts in.
func (c *Counters) CountGroup(verdicts []rules.Verdict) {
	for _, v := range verdicts {
		if v.Passed {
			continue
		}
		switch v.Rule {
		case rules.RuleLanguageConsistency:
			c.LanguageMismatches++
		case rules.RuleTenseSetConsistency:
			c.TenseSetMismatches++
		}
	}
}

// CountStructural records a structural error for one scope (missing records,
// empty directory, malformed corpus metadata).
func (c *Counters) CountStructural(n int) {
	c.StructuralErrors += n
}

// Merge adds other into c.
func (c *Counters) Merge(other Counters) {
	c.TotalRecords += other.TotalRecords
	c.ValidRecords += other.ValidRecords
	c.SyntaxErrors += other.SyntaxErrors
	c.FieldViolations += other.FieldViolations
	c.TenseStructureErrors += other.TenseStructureErrors
	c.FilenameMismatches += other.FilenameMismatches
	c.FormattingViolations += other.FormattingViolations
	c.LanguageMismatches += other.LanguageMismatches
	c.TenseSetMismatches += other.TenseSetMismatches
	c.StructuralErrors += other.StructuralErrors
}

// ErrorTotal is the sum of every error-category counter.
func (c *Counters) ErrorTotal() int {
	return c.SyntaxErrors +
		c.FieldViolations +
		c.TenseStructureErrors +
		c.FilenameMismatches +
		c.FormattingViolations +
		c.LanguageMismatches +
		c.TenseSetMismatches +
		c.StructuralErrors
}

// Clean reports the overall validation outcome: true only if every error
// counter is zero.
func (c *Counters) Clean() bool {
	return c.ErrorTotal() == 0
}

// RenderRecordTranscript renders the per-rule outcome lines for one record.
// Only printed in verbose mode; the final summary never depends on it.
func RenderRecordTranscript(name string, verdicts []rules.Verdict) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", name)))
	b.WriteString("\n")
	for _, v := range verdicts {
		if v.Passed {
			b.WriteString(fmt.Sprintf("    %s %s\n", successStyle.Render("✓"), v.Rule))
			continue
		}
		b.WriteString(fmt.Sprintf("    %s %s\n", errorStyle.Render("✗"), v.Rule))
		for _, d := range v.Diagnostics {
			b.WriteString(fmt.Sprintf("      - %s\n", d))
		}
	}
	return b.String()
}

// RenderGroupLine renders the one-line consistency summary for a language.
func RenderGroupLine(language string, recordCount int, groupVerdicts []rules.Verdict, structural []string) string {
	problems := len(structural)
	for _, v := range groupVerdicts {
		if !v.Passed {
			problems += len(v.Diagnostics)
		}
	}

	if problems == 0 {
		return fmt.Sprintf("%s %s: %d records, consistent", successStyle.Render("✓"), language, recordCount)
	}
	return fmt.Sprintf("%s %s: %d records, %d consistency problems", errorStyle.Render("✗"), language, recordCount, problems)
}

// RenderSummary renders the final tabular summary. Always printed, regardless
// of verbosity.
func RenderSummary(c Counters, corpusName string) string {
	var b strings.Builder

	title := "Validation Summary"
	if corpusName != "" {
		title = fmt.Sprintf("Validation Summary: %s", corpusName)
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	rows := []struct {
		label string
		value int
		bad   bool
	}{
		{"Total records", c.TotalRecords, false},
		{"Valid records", c.ValidRecords, false},
		{"Syntax errors", c.SyntaxErrors, true},
		{"Field violations", c.FieldViolations, true},
		{"Tense structure errors", c.TenseStructureErrors, true},
		{"Filename mismatches", c.FilenameMismatches, true},
		{"Formatting violations", c.FormattingViolations, true},
		{"Language mismatches", c.LanguageMismatches, true},
		{"Tense set mismatches", c.TenseSetMismatches, true},
		{"Structural errors", c.StructuralErrors, true},
	}
	for _, row := range rows {
		line := fmt.Sprintf("  %-24s %4d", row.label+":", row.value)
		if row.bad && row.value > 0 {
			line = errorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if c.Clean() {
		b.WriteString(successStyle.Render("All verb conjugation records are valid and consistent."))
	} else {
		b.WriteString(errorStyle.Render("Validation failed. Fix the issues above."))
	}
	b.WriteString("\n")

	return b.String()
}
