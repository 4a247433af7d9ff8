// # internal/output/tsv.go
package output

import (
	"fmt"
	"strings"

	"conjcheck/internal/scan"
)

type TSVGenerator struct {
	result *scan.Result
}

func NewTSVGenerator(result *scan.Result) *TSVGenerator {
	return &TSVGenerator{result: result}
}

// Generate renders every diagnostic as one row, in scan order, so downstream
// tools (including a record repairer) can consume the full verdict stream.
func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("Scope\tLanguage\tFile\tRule\tDiagnostic\n")

	for _, diag := range t.result.Structural {
		buf.WriteString(fmt.Sprintf("corpus\t\t\tstructural\t%s\n", sanitize(diag)))
	}

	for _, group := range t.result.Groups {
		for _, diag := range group.Structural {
			buf.WriteString(fmt.Sprintf("language\t%s\t\tstructural\t%s\n", group.Language, sanitize(diag)))
		}
		for _, record := range group.Records {
			for _, v := range record.Verdicts {
				if v.Passed {
					continue
				}
				for _, diag := range v.Diagnostics {
					buf.WriteString(fmt.Sprintf("record\t%s\t%s\t%s\t%s\n",
						group.Language, record.Name, v.Rule, sanitize(diag)))
				}
			}
		}
		for _, v := range group.GroupVerdicts {
			if v.Passed {
				continue
			}
			for _, diag := range v.Diagnostics {
				buf.WriteString(fmt.Sprintf("language\t%s\t\t%s\t%s\n",
					group.Language, v.Rule, sanitize(diag)))
			}
		}
	}

	return buf.String(), nil
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
