package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"conjcheck/internal/corpus"
)

// RequiredFields recursively verifies every required field at verb, tense and
// conjugation level is present and non-empty. The "unused" marker is a valid
// exception to non-emptiness for form and example fields only. Produces one
// diagnostic per missing or empty field, not just the first.
type RequiredFields struct{}

func (r *RequiredFields) Name() string { return RuleRequiredFields }

func (r *RequiredFields) Evaluate(record *corpus.VerbRecord) Verdict {
	var diags []string

	checkScalar := func(scope, field, value string) {
		if strings.TrimSpace(value) == "" {
			diags = append(diags, fmt.Sprintf("%s: missing or empty field %q", scope, field))
		}
	}
	checkForm := func(scope, field string, f corpus.Form) {
		if !f.Present() {
			diags = append(diags, fmt.Sprintf("%s: missing field %q", scope, field))
			return
		}
		if f.Applicable() && strings.TrimSpace(f.Value()) == "" {
			diags = append(diags, fmt.Sprintf("%s: empty field %q", scope, field))
		}
	}

	checkScalar("verb", "language", record.Language)
	checkScalar("verb", "languageName", record.LanguageName)
	checkScalar("verb", "infinitive", record.Infinitive)
	checkScalar("verb", "infinitiveEn", record.InfinitiveEn)
	checkScalar("verb", "category", record.Category)

	if len(record.Tenses) == 0 {
		diags = append(diags, `verb: missing or empty field "tenses"`)
	}

	for i, tense := range record.Tenses {
		scope := tenseScope(i, tense)
		checkScalar(scope, "tenseId", tense.TenseID)
		checkScalar(scope, "tenseName", tense.TenseName)
		checkScalar(scope, "tenseNameEn", tense.TenseNameEn)
		checkScalar(scope, "description", tense.Description)

		for j, conj := range tense.Conjugations {
			cscope := fmt.Sprintf("%s conjugation #%d", scope, j+1)
			checkScalar(cscope, "pronoun", conj.Pronoun)
			checkForm(cscope, "form", conj.Form)
			checkForm(cscope, "exampleSentence", conj.ExampleSentence)
			checkForm(cscope, "exampleSentenceEn", conj.ExampleSentenceEn)
		}
	}

	if len(diags) > 0 {
		return fail(RuleRequiredFields, diags)
	}
	return pass(RuleRequiredFields)
}

// TenseStructure verifies the record declares tenses and that every tense
// entry carries a tenseId, the cross-verb join key for group consistency.
type TenseStructure struct{}

func (r *TenseStructure) Name() string { return RuleTenseStructure }

func (r *TenseStructure) Evaluate(record *corpus.VerbRecord) Verdict {
	var diags []string

	if len(record.Tenses) == 0 {
		diags = append(diags, "no tenses declared")
	}
	for i, tense := range record.Tenses {
		if tense.TenseID == "" {
			diags = append(diags, fmt.Sprintf("tense #%d: missing tenseId", i+1))
		}
	}

	if len(diags) > 0 {
		return fail(RuleTenseStructure, diags)
	}
	return pass(RuleTenseStructure)
}

// FilenameConsistency binds record content to storage location: the declared
// infinitive (or its ASCII slug when present) plus the record suffix must
// equal the source filename.
type FilenameConsistency struct {
	Suffix string
}

func (r *FilenameConsistency) Name() string { return RuleFilenameConsistency }

func (r *FilenameConsistency) Evaluate(record *corpus.VerbRecord) Verdict {
	suffix := r.Suffix
	if suffix == "" {
		suffix = corpus.RecordSuffix
	}

	stem := record.FileStem()
	if stem == "" {
		return fail(RuleFilenameConsistency, []string{"record declares no infinitive to bind a filename to"})
	}

	expected := stem + suffix
	actual := filepath.Base(record.Path)
	if actual != expected {
		return fail(RuleFilenameConsistency, []string{
			fmt.Sprintf("expected filename %q for infinitive %q, found %q", expected, record.Infinitive, actual),
		})
	}
	return pass(RuleFilenameConsistency)
}

// ExampleFormatting enforces the sentinel invariant per conjugation entry:
// an unused form requires both example sentences to be unused; a concrete
// form requires two concrete example sentences that are not identical (they
// are different languages).
type ExampleFormatting struct{}

func (r *ExampleFormatting) Name() string { return RuleExampleFormatting }

func (r *ExampleFormatting) Evaluate(record *corpus.VerbRecord) Verdict {
	var diags []string

	for i, tense := range record.Tenses {
		for j, conj := range tense.Conjugations {
			scope := fmt.Sprintf("%s conjugation #%d (%s)", tenseScope(i, tense), j+1, conj.Pronoun)

			if !conj.Form.Present() {
				continue // required-fields reports the absence
			}

			if !conj.Form.Applicable() {
				if conj.ExampleSentence.Present() && conj.ExampleSentence.Applicable() {
					diags = append(diags, fmt.Sprintf("%s: form is unused but exampleSentence is not", scope))
				}
				if conj.ExampleSentenceEn.Present() && conj.ExampleSentenceEn.Applicable() {
					diags = append(diags, fmt.Sprintf("%s: form is unused but exampleSentenceEn is not", scope))
				}
				continue
			}

			if conj.ExampleSentence.Present() && !conj.ExampleSentence.Applicable() {
				diags = append(diags, fmt.Sprintf("%s: concrete form with unused exampleSentence", scope))
			}
			if conj.ExampleSentenceEn.Present() && !conj.ExampleSentenceEn.Applicable() {
				diags = append(diags, fmt.Sprintf("%s: concrete form with unused exampleSentenceEn", scope))
			}

			if conj.ExampleSentence.Applicable() && conj.ExampleSentenceEn.Applicable() &&
				conj.ExampleSentence.Value() != "" &&
				conj.ExampleSentence.Value() == conj.ExampleSentenceEn.Value() {
				diags = append(diags, fmt.Sprintf("%s: exampleSentence and exampleSentenceEn are identical", scope))
			}
		}
	}

	if len(diags) > 0 {
		return fail(RuleExampleFormatting, diags)
	}
	return pass(RuleExampleFormatting)
}

func tenseScope(index int, tense corpus.Tense) string {
	if tense.TenseID != "" {
		return fmt.Sprintf("tense %q", tense.TenseID)
	}
	return fmt.Sprintf("tense #%d", index+1)
}
