package rules

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"conjcheck/internal/corpus"
)

// LanguageConsistency verifies language and languageName are identical across
// all records of a group. The first record in sorted filename order is the
// reference; every deviation names the offending file.
type LanguageConsistency struct{}

func (r *LanguageConsistency) Name() string { return RuleLanguageConsistency }

func (r *LanguageConsistency) Evaluate(group []*corpus.VerbRecord) Verdict {
	if len(group) == 0 {
		return pass(RuleLanguageConsistency)
	}

	reference := group[0]
	var diags []string

	for _, record := range group[1:] {
		if record.Language != reference.Language {
			diags = append(diags, fmt.Sprintf("%s: language %q differs from reference %q",
				recordName(record), record.Language, reference.Language))
		}
		if record.LanguageName != reference.LanguageName {
			diags = append(diags, fmt.Sprintf("%s: languageName %q differs from reference %q",
				recordName(record), record.LanguageName, reference.LanguageName))
		}
	}

	if len(diags) > 0 {
		return fail(RuleLanguageConsistency, diags)
	}
	return pass(RuleLanguageConsistency)
}

// TenseSetConsistency verifies the set of tense ids is identical across all
// records of a group, order-independent. The first record's set is the
// reference; deviations report missing and extra ids computed via set
// difference in both directions. A record without tenses participates with
// an empty set.
type TenseSetConsistency struct{}

func (r *TenseSetConsistency) Name() string { return RuleTenseSetConsistency }

func (r *TenseSetConsistency) Evaluate(group []*corpus.VerbRecord) Verdict {
	if len(group) == 0 {
		return pass(RuleTenseSetConsistency)
	}

	reference := group[0].TenseIDSet()
	var diags []string

	for _, record := range group[1:] {
		ids := record.TenseIDSet()
		missing := difference(reference, ids)
		extra := difference(ids, reference)
		if len(missing) == 0 && len(extra) == 0 {
			continue
		}

		msg := fmt.Sprintf("%s: inconsistent tense set", recordName(record))
		if len(missing) == len(reference) && len(reference) > 0 && len(extra) == 0 {
			msg += " (missing all reference tenses)"
		} else {
			if len(missing) > 0 {
				msg += fmt.Sprintf(" (missing: %s)", strings.Join(missing, ", "))
			}
			if len(extra) > 0 {
				msg += fmt.Sprintf(" (extra: %s)", strings.Join(extra, ", "))
			}
		}
		diags = append(diags, msg)
	}

	if len(diags) > 0 {
		return fail(RuleTenseSetConsistency, diags)
	}
	return pass(RuleTenseSetConsistency)
}

func difference(a, b map[string]bool) []string {
	var out []string
	for id := range a {
		if !b[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func recordName(record *corpus.VerbRecord) string {
	return filepath.Base(record.Path)
}
