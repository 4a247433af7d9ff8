// # internal/output/markdown.go
package output

import (
	"fmt"
	"strings"

	"conjcheck/internal/scan"
)

type MarkdownGenerator struct {
	result *scan.Result
}

func NewMarkdownGenerator(result *scan.Result) *MarkdownGenerator {
	return &MarkdownGenerator{result: result}
}

func (m *MarkdownGenerator) Generate() (string, error) {
	var buf strings.Builder

	title := "Corpus Validation Report"
	if m.result.Info != nil && m.result.Info.Name != "" {
		title = fmt.Sprintf("Corpus Validation Report: %s", m.result.Info.Name)
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("Scanned `%s` at %s in %v.\n\n",
		m.result.Root, m.result.Started.Format("2006-01-02 15:04:05"), m.result.Duration.Round(1e6)))

	c := m.result.Counters
	buf.WriteString("| Category | Count |\n|---|---|\n")
	buf.WriteString(fmt.Sprintf("| Total records | %d |\n", c.TotalRecords))
	buf.WriteString(fmt.Sprintf("| Valid records | %d |\n", c.ValidRecords))
	buf.WriteString(fmt.Sprintf("| Syntax errors | %d |\n", c.SyntaxErrors))
	buf.WriteString(fmt.Sprintf("| Field violations | %d |\n", c.FieldViolations))
	buf.WriteString(fmt.Sprintf("| Tense structure errors | %d |\n", c.TenseStructureErrors))
	buf.WriteString(fmt.Sprintf("| Filename mismatches | %d |\n", c.FilenameMismatches))
	buf.WriteString(fmt.Sprintf("| Formatting violations | %d |\n", c.FormattingViolations))
	buf.WriteString(fmt.Sprintf("| Language mismatches | %d |\n", c.LanguageMismatches))
	buf.WriteString(fmt.Sprintf("| Tense set mismatches | %d |\n", c.TenseSetMismatches))
	buf.WriteString(fmt.Sprintf("| Structural errors | %d |\n\n", c.StructuralErrors))

	if c.Clean() {
		buf.WriteString("**Outcome: valid.**\n")
		return buf.String(), nil
	}
	buf.WriteString("**Outcome: invalid.**\n")

	for _, diag := range m.result.Structural {
		buf.WriteString(fmt.Sprintf("\n- %s\n", diag))
	}

	for _, group := range m.result.Groups {
		lines := groupProblems(group)
		if len(lines) == 0 {
			continue
		}
		buf.WriteString(fmt.Sprintf("\n## %s\n\n", group.Language))
		for _, line := range lines {
			buf.WriteString(fmt.Sprintf("- %s\n", line))
		}
	}

	return buf.String(), nil
}

func groupProblems(group scan.GroupResult) []string {
	var lines []string
	lines = append(lines, group.Structural...)
	for _, record := range group.Records {
		for _, v := range record.Verdicts {
			if v.Passed {
				continue
			}
			for _, diag := range v.Diagnostics {
				lines = append(lines, fmt.Sprintf("`%s` [%s] %s", record.Name, v.Rule, diag))
			}
		}
	}
	for _, v := range group.GroupVerdicts {
		if v.Passed {
			continue
		}
		for _, diag := range v.Diagnostics {
			lines = append(lines, fmt.Sprintf("[%s] %s", v.Rule, diag))
		}
	}
	return lines
}
