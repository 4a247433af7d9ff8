// # internal/output/output_test.go
package output

import (
	"strings"
	"testing"

	"conjcheck/internal/report"
	"conjcheck/internal/rules"
	"conjcheck/internal/scan"
)

func failingResult() *scan.Result {
	result := &scan.Result{
		Root: "/corpus",
		Groups: []scan.GroupResult{
			{
				Language: "fr",
				Records: []scan.RecordResult{
					{
						Name: "parler.json",
						Verdicts: []rules.Verdict{
							{Rule: rules.RuleSyntax, Passed: true},
							{Rule: rules.RuleFilenameConsistency, Passed: false,
								Diagnostics: []string{`expected filename "parler.json" for infinitive "parler", found "speak.json"`}},
						},
					},
				},
				GroupVerdicts: []rules.Verdict{
					{Rule: rules.RuleTenseSetConsistency, Passed: false,
						Diagnostics: []string{"parler.json: inconsistent tense set (missing: imparfait)"}},
				},
			},
		},
	}
	result.Counters = report.Counters{TotalRecords: 1, FilenameMismatches: 1, TenseSetMismatches: 1}
	return result
}

func TestTSVGenerator(t *testing.T) {
	out, err := NewTSVGenerator(failingResult()).Generate()
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Scope\tLanguage\tFile\tRule") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(out, "record\tfr\tparler.json\tfilename-consistency") {
		t.Errorf("missing record row:\n%s", out)
	}
	if !strings.Contains(out, "language\tfr\t\ttense-set-consistency") {
		t.Errorf("missing group row:\n%s", out)
	}
}

func TestMarkdownGenerator(t *testing.T) {
	out, err := NewMarkdownGenerator(failingResult()).Generate()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# Corpus Validation Report",
		"| Filename mismatches | 1 |",
		"**Outcome: invalid.**",
		"## fr",
		"inconsistent tense set",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownGeneratorClean(t *testing.T) {
	result := &scan.Result{Root: "/corpus"}
	result.Counters = report.Counters{TotalRecords: 2, ValidRecords: 2}

	out, err := NewMarkdownGenerator(result).Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "**Outcome: valid.**") {
		t.Errorf("clean markdown missing outcome:\n%s", out)
	}
}
