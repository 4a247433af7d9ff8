package corpus

import (
	"bytes"
	"encoding/json"
)

// Sentinel is the reserved string marking a conjugation slot as intentionally
// not applicable for a pronoun, as opposed to missing.
const Sentinel = "unused"

// RecordSuffix is the storage suffix every verb record file carries.
const RecordSuffix = ".json"

// Form is the inflected form of a conjugation slot. It is either a concrete
// string or the not-applicable marker; the two states never mix with ordinary
// string comparison.
type Form struct {
	value      string
	applicable bool
	present    bool
}

func ConcreteForm(s string) Form {
	return Form{value: s, applicable: true, present: true}
}

func NotApplicableForm() Form {
	return Form{present: true}
}

// Present reports whether the field existed in the source document at all.
func (f Form) Present() bool { return f.present }

// Applicable reports whether the form is a concrete inflection rather than
// the not-applicable marker.
func (f Form) Applicable() bool { return f.present && f.applicable }

// Value returns the concrete inflection. Empty when not applicable or absent.
func (f Form) Value() string {
	if !f.Applicable() {
		return ""
	}
	return f.value
}

// String renders the on-disk representation, including the sentinel.
func (f Form) String() string {
	if !f.present {
		return ""
	}
	if !f.applicable {
		return Sentinel
	}
	return f.value
}

func (f *Form) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == Sentinel {
		*f = NotApplicableForm()
		return nil
	}
	*f = ConcreteForm(s)
	return nil
}

func (f Form) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// VerbRecord is one verb with its conjugations across all tenses, exactly as
// stored in one corpus file. Immutable once loaded.
type VerbRecord struct {
	Language     string  `json:"language"`
	LanguageName string  `json:"languageName"`
	Infinitive   string  `json:"infinitive"`
	InfinitiveEn string  `json:"infinitiveEn"`
	Slug         string  `json:"slug,omitempty"` // ASCII stem override for infinitives with combining characters
	Category     string  `json:"category"`
	Tenses       []Tense `json:"tenses"`

	// Path is the source file the record was loaded from. Set by the loader,
	// not part of the document.
	Path string `json:"-"`
}

// FileStem returns the stem the record's filename must carry: the slug when
// present, the infinitive otherwise.
func (v *VerbRecord) FileStem() string {
	if v.Slug != "" {
		return v.Slug
	}
	return v.Infinitive
}

// TenseIDSet collects the set of declared tense ids. Entries without a
// tenseId are skipped; Tense-Structure reports those separately.
func (v *VerbRecord) TenseIDSet() map[string]bool {
	ids := make(map[string]bool, len(v.Tenses))
	for _, tense := range v.Tenses {
		if tense.TenseID != "" {
			ids[tense.TenseID] = true
		}
	}
	return ids
}

// Tense is a grammatical tense with its conjugations and description.
type Tense struct {
	TenseID      string        `json:"tenseId"`
	TenseName    string        `json:"tenseName"`
	TenseNameEn  string        `json:"tenseNameEn"`
	Description  string        `json:"description"`
	Conjugations []Conjugation `json:"conjugations"`
}

// Conjugation is a single conjugated form with its example sentences.
type Conjugation struct {
	Pronoun           string `json:"pronoun"`
	Form              Form   `json:"form"`
	ExampleSentence   Form   `json:"exampleSentence"`
	ExampleSentenceEn Form   `json:"exampleSentenceEn"`
}

// Info is the corpus-wide metadata stored in the reserved file at the corpus
// root.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}
