package rules

import (
	"strings"
	"testing"

	"conjcheck/internal/corpus"
)

func goodRecord(path string) *corpus.VerbRecord {
	return &corpus.VerbRecord{
		Language:     "fr",
		LanguageName: "French",
		Infinitive:   "parler",
		InfinitiveEn: "to speak",
		Category:     "regular -er",
		Path:         path,
		Tenses: []corpus.Tense{
			{
				TenseID:     "present",
				TenseName:   "Présent",
				TenseNameEn: "Present",
				Description: "Actions happening now",
				Conjugations: []corpus.Conjugation{
					{
						Pronoun:           "je",
						Form:              corpus.ConcreteForm("parle"),
						ExampleSentence:   corpus.ConcreteForm("Je parle français."),
						ExampleSentenceEn: corpus.ConcreteForm("I speak French."),
					},
				},
			},
		},
	}
}

func countDiags(v Verdict) int { return len(v.Diagnostics) }

func TestRequiredFieldsPasses(t *testing.T) {
	v := (&RequiredFields{}).Evaluate(goodRecord("fr/parler.json"))
	if !v.Passed {
		t.Fatalf("expected pass, got diagnostics %v", v.Diagnostics)
	}
}

func TestRequiredFieldsReportsEveryMissingField(t *testing.T) {
	record := goodRecord("fr/parler.json")
	record.LanguageName = ""
	record.Category = " "
	record.Tenses[0].Description = ""
	record.Tenses[0].Conjugations[0].Pronoun = ""

	v := (&RequiredFields{}).Evaluate(record)
	if v.Passed {
		t.Fatal("expected failure")
	}
	if countDiags(v) != 4 {
		t.Errorf("expected 4 diagnostics, one per field, got %d: %v", countDiags(v), v.Diagnostics)
	}
}

func TestRequiredFieldsAcceptsSentinel(t *testing.T) {
	record := goodRecord("fr/parler.json")
	record.Tenses[0].Conjugations[0].Form = corpus.NotApplicableForm()
	record.Tenses[0].Conjugations[0].ExampleSentence = corpus.NotApplicableForm()
	record.Tenses[0].Conjugations[0].ExampleSentenceEn = corpus.NotApplicableForm()

	v := (&RequiredFields{}).Evaluate(record)
	if !v.Passed {
		t.Errorf("sentinel must satisfy required-fields, got %v", v.Diagnostics)
	}
}

func TestRequiredFieldsMissingForm(t *testing.T) {
	record := goodRecord("fr/parler.json")
	record.Tenses[0].Conjugations[0].Form = corpus.Form{}

	v := (&RequiredFields{}).Evaluate(record)
	if v.Passed {
		t.Fatal("absent form field must fail required-fields")
	}
}

func TestRequiredFieldsMissingTenses(t *testing.T) {
	record := goodRecord("fr/parler.json")
	record.Tenses = nil

	v := (&RequiredFields{}).Evaluate(record)
	if v.Passed {
		t.Fatal("record without tenses must fail required-fields")
	}
}

func TestTenseStructure(t *testing.T) {
	record := goodRecord("fr/parler.json")
	if v := (&TenseStructure{}).Evaluate(record); !v.Passed {
		t.Fatalf("expected pass, got %v", v.Diagnostics)
	}

	record.Tenses = append(record.Tenses, corpus.Tense{TenseName: "Futur"})
	v := (&TenseStructure{}).Evaluate(record)
	if v.Passed {
		t.Fatal("tense without tenseId must fail")
	}
	if !strings.Contains(v.Diagnostics[0], "tense #2") {
		t.Errorf("diagnostic should name the tense position: %v", v.Diagnostics)
	}

	record.Tenses = nil
	v = (&TenseStructure{}).Evaluate(record)
	if v.Passed {
		t.Fatal("record without tenses must fail tense-structure")
	}
}

func TestFilenameConsistency(t *testing.T) {
	rule := &FilenameConsistency{Suffix: ".json"}

	if v := rule.Evaluate(goodRecord("fr/parler.json")); !v.Passed {
		t.Fatalf("expected pass, got %v", v.Diagnostics)
	}

	// Wrong filename fails regardless of all other rules passing.
	v := rule.Evaluate(goodRecord("fr/speak.json"))
	if v.Passed {
		t.Fatal("mismatched filename must fail")
	}
	if !strings.Contains(v.Diagnostics[0], `"parler.json"`) {
		t.Errorf("diagnostic should name the expected filename: %v", v.Diagnostics)
	}
}

func TestFilenameConsistencySlugOverride(t *testing.T) {
	rule := &FilenameConsistency{Suffix: ".json"}

	record := goodRecord("hi/aana.json")
	record.Infinitive = "आना"
	record.Slug = "aana"
	if v := rule.Evaluate(record); !v.Passed {
		t.Errorf("slug must bind the filename when present, got %v", v.Diagnostics)
	}
}

func TestFilenameConsistencyEmptyInfinitive(t *testing.T) {
	record := goodRecord("fr/parler.json")
	record.Infinitive = ""
	if v := (&FilenameConsistency{}).Evaluate(record); v.Passed {
		t.Fatal("empty infinitive must fail filename-consistency")
	}
}

func TestExampleFormattingSentinelPairing(t *testing.T) {
	rule := &ExampleFormatting{}

	record := goodRecord("fr/parler.json")
	record.Tenses[0].Conjugations[0].Form = corpus.NotApplicableForm()
	record.Tenses[0].Conjugations[0].ExampleSentence = corpus.NotApplicableForm()
	record.Tenses[0].Conjugations[0].ExampleSentenceEn = corpus.NotApplicableForm()
	if v := rule.Evaluate(record); !v.Passed {
		t.Fatalf("all-sentinel conjugation must pass, got %v", v.Diagnostics)
	}

	// Unused form with a concrete example sentence.
	record.Tenses[0].Conjugations[0].ExampleSentence = corpus.ConcreteForm("Je parle.")
	v := rule.Evaluate(record)
	if v.Passed {
		t.Fatal("unused form with concrete example must fail")
	}
}

func TestExampleFormattingConcreteWithSentinelExample(t *testing.T) {
	record := goodRecord("fr/parler.json")
	record.Tenses[0].Conjugations[0].ExampleSentenceEn = corpus.NotApplicableForm()

	v := (&ExampleFormatting{}).Evaluate(record)
	if v.Passed {
		t.Fatal("concrete form with unused example must fail")
	}
}

func TestExampleFormattingIdenticalSentences(t *testing.T) {
	record := goodRecord("fr/parler.json")
	record.Tenses[0].Conjugations[0].ExampleSentence = corpus.ConcreteForm("Same sentence.")
	record.Tenses[0].Conjugations[0].ExampleSentenceEn = corpus.ConcreteForm("Same sentence.")

	v := (&ExampleFormatting{}).Evaluate(record)
	if v.Passed {
		t.Fatal("identical example sentences must fail")
	}
	if !strings.Contains(v.Diagnostics[0], "identical") {
		t.Errorf("unexpected diagnostic: %v", v.Diagnostics)
	}
}

func TestLanguageConsistency(t *testing.T) {
	group := []*corpus.VerbRecord{
		goodRecord("fr/aller.json"),
		goodRecord("fr/manger.json"),
		goodRecord("fr/parler.json"),
	}
	group[0].Infinitive = "aller"
	group[1].Infinitive = "manger"

	if v := (&LanguageConsistency{}).Evaluate(group); !v.Passed {
		t.Fatalf("uniform group must pass, got %v", v.Diagnostics)
	}

	// Exactly one deviating file is reported, by name.
	group[1].LanguageName = "Francais"
	v := (&LanguageConsistency{}).Evaluate(group)
	if v.Passed {
		t.Fatal("deviating languageName must fail")
	}
	if countDiags(v) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %v", v.Diagnostics)
	}
	if !strings.Contains(v.Diagnostics[0], "manger.json") {
		t.Errorf("diagnostic must name the deviating file: %v", v.Diagnostics)
	}
}

func TestTenseSetConsistency(t *testing.T) {
	ref := goodRecord("fr/aller.json")
	ref.Tenses = append(ref.Tenses, corpus.Tense{TenseID: "imparfait"})

	deviant := goodRecord("fr/parler.json")
	deviant.Tenses = append(deviant.Tenses, corpus.Tense{TenseID: "futur"})

	v := (&TenseSetConsistency{}).Evaluate([]*corpus.VerbRecord{ref, deviant})
	if v.Passed {
		t.Fatal("diverging tense sets must fail")
	}
	diag := v.Diagnostics[0]
	if !strings.Contains(diag, "parler.json") {
		t.Errorf("diagnostic must name the deviating file: %s", diag)
	}
	if !strings.Contains(diag, "missing: imparfait") || !strings.Contains(diag, "extra: futur") {
		t.Errorf("diagnostic must report both set differences: %s", diag)
	}
}

func TestTenseSetConsistencyEmptySet(t *testing.T) {
	ref := goodRecord("fr/aller.json")
	empty := goodRecord("fr/parler.json")
	empty.Tenses = nil

	v := (&TenseSetConsistency{}).Evaluate([]*corpus.VerbRecord{ref, empty})
	if v.Passed {
		t.Fatal("record with no tenses must deviate from a non-empty reference")
	}
	if !strings.Contains(v.Diagnostics[0], "missing all reference tenses") {
		t.Errorf("unexpected diagnostic: %v", v.Diagnostics)
	}
}

func TestTenseSetConsistencyOrderIndependent(t *testing.T) {
	a := goodRecord("fr/aller.json")
	a.Tenses = []corpus.Tense{{TenseID: "present"}, {TenseID: "futur"}}
	b := goodRecord("fr/parler.json")
	b.Tenses = []corpus.Tense{{TenseID: "futur"}, {TenseID: "present"}}

	if v := (&TenseSetConsistency{}).Evaluate([]*corpus.VerbRecord{a, b}); !v.Passed {
		t.Errorf("tense order must not matter, got %v", v.Diagnostics)
	}
}

func TestPipelineOrder(t *testing.T) {
	names := make([]string, 0, 4)
	for _, rule := range RecordRules(".json") {
		names = append(names, rule.Name())
	}
	want := []string{RuleRequiredFields, RuleTenseStructure, RuleFilenameConsistency, RuleExampleFormatting}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("record pipeline out of order: %v", names)
		}
	}

	groups := GroupRules()
	if groups[0].Name() != RuleLanguageConsistency || groups[1].Name() != RuleTenseSetConsistency {
		t.Fatal("group pipeline out of order")
	}
}
