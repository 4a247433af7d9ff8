// Package rules implements the fixed, ordered rule pipeline evaluated against
// every verb record and every language group of the corpus.
package rules

import (
	"conjcheck/internal/corpus"
)

// Rule names, in required evaluation order. Later record rules may assume the
// earlier structural ones ran, but a failing rule never blocks independent
// rules from running and reporting.
const (
	RuleSyntax              = "syntax"
	RuleRequiredFields      = "required-fields"
	RuleTenseStructure      = "tense-structure"
	RuleFilenameConsistency = "filename-consistency"
	RuleExampleFormatting   = "example-sentence-formatting"
	RuleLanguageConsistency = "language-consistency"
	RuleTenseSetConsistency = "tense-set-consistency"
)

// Verdict is the unit of rule-evaluation output. Never mutated after
// creation; consumed once by the report builder. Diagnostics are never
// deduplicated: every violation is reported once per occurrence.
type Verdict struct {
	Rule        string
	Passed      bool
	Diagnostics []string
}

func pass(rule string) Verdict {
	return Verdict{Rule: rule, Passed: true}
}

func fail(rule string, diagnostics []string) Verdict {
	return Verdict{Rule: rule, Passed: false, Diagnostics: diagnostics}
}

// RecordRule evaluates one loaded record in isolation.
type RecordRule interface {
	Name() string
	Evaluate(record *corpus.VerbRecord) Verdict
}

// GroupRule evaluates all records of one language group at once. The group is
// ordered by filename; the first record is the consistency baseline.
type GroupRule interface {
	Name() string
	Evaluate(group []*corpus.VerbRecord) Verdict
}

// RecordRules returns the record-scoped pipeline in evaluation order. The
// syntax rule is implicit in the loader; see SyntaxFailure.
func RecordRules(recordSuffix string) []RecordRule {
	return []RecordRule{
		&RequiredFields{},
		&TenseStructure{},
		&FilenameConsistency{Suffix: recordSuffix},
		&ExampleFormatting{},
	}
}

// GroupRules returns the group-scoped pipeline in evaluation order.
func GroupRules() []GroupRule {
	return []GroupRule{
		&LanguageConsistency{},
		&TenseSetConsistency{},
	}
}

// SyntaxPass is the verdict for a record the loader parsed successfully.
func SyntaxPass() Verdict {
	return pass(RuleSyntax)
}

// SyntaxFailure converts a loader error into the verdict of the implicit
// syntax rule. Fatal for the record: no further record rule runs, but the
// record is still counted and the corpus scan continues.
func SyntaxFailure(err error) Verdict {
	return fail(RuleSyntax, []string{err.Error()})
}
