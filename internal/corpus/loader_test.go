package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	cerrors "conjcheck/internal/core/errors"
)

const validRecord = `{
  "language": "fr",
  "languageName": "French",
  "infinitive": "parler",
  "infinitiveEn": "to speak",
  "category": "regular -er",
  "tenses": [
    {
      "tenseId": "present",
      "tenseName": "Présent",
      "tenseNameEn": "Present",
      "description": "Actions happening now",
      "conjugations": [
        {
          "pronoun": "je",
          "form": "parle",
          "exampleSentence": "Je parle français.",
          "exampleSentenceEn": "I speak French."
        },
        {
          "pronoun": "il",
          "form": "unused",
          "exampleSentence": "unused",
          "exampleSentenceEn": "unused"
        }
      ]
    }
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRecord(t *testing.T) {
	path := writeFile(t, t.TempDir(), "parler.json", validRecord)

	record, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("LoadRecord failed: %v", err)
	}

	if record.Infinitive != "parler" {
		t.Errorf("expected infinitive parler, got %s", record.Infinitive)
	}
	if record.Path != path {
		t.Errorf("expected path %s, got %s", path, record.Path)
	}
	if len(record.Tenses) != 1 {
		t.Fatalf("expected 1 tense, got %d", len(record.Tenses))
	}

	conjs := record.Tenses[0].Conjugations
	if !conjs[0].Form.Applicable() || conjs[0].Form.Value() != "parle" {
		t.Errorf("expected concrete form parle, got %v", conjs[0].Form)
	}
	if conjs[1].Form.Applicable() {
		t.Error("expected sentinel form to be not applicable")
	}
	if !conjs[1].Form.Present() {
		t.Error("expected sentinel form to count as present")
	}
}

func TestLoadRecordSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.json", `{"language": "fr",`)

	_, err := LoadRecord(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !cerrors.IsCode(err, cerrors.CodeParseError) {
		t.Errorf("expected PARSE_ERROR, got %v", err)
	}
}

func TestLoadRecordTrailingContent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "trailing.json", `{"language": "fr"} {"x": 1}`)

	_, err := LoadRecord(path)
	if !cerrors.IsCode(err, cerrors.CodeParseError) {
		t.Errorf("expected PARSE_ERROR for trailing content, got %v", err)
	}
}

func TestLoadRecordMissingFile(t *testing.T) {
	_, err := LoadRecord(filepath.Join(t.TempDir(), "absent.json"))
	if !cerrors.IsCode(err, cerrors.CodeParseError) {
		t.Errorf("expected PARSE_ERROR for unreadable file, got %v", err)
	}
}

func TestLoadInfo(t *testing.T) {
	dir := t.TempDir()

	info, err := LoadInfo(filepath.Join(dir, "info.json"))
	if err != nil {
		t.Fatalf("missing metadata should not be an error: %v", err)
	}
	if info != nil {
		t.Error("expected nil info for missing metadata file")
	}

	path := writeFile(t, dir, "info.json", `{"id":"verb-conjugations","name":"Verb Conjugations","emoji":"📚","description":"Conjugation tables"}`)
	info, err = LoadInfo(path)
	if err != nil {
		t.Fatalf("LoadInfo failed: %v", err)
	}
	if info.Name != "Verb Conjugations" {
		t.Errorf("unexpected info: %+v", info)
	}

	writeFile(t, dir, "info.json", `not json`)
	if _, err := LoadInfo(path); !cerrors.IsCode(err, cerrors.CodeStructuralError) {
		t.Errorf("expected STRUCTURAL_ERROR for malformed metadata, got %v", err)
	}
}

func TestFormRoundTrip(t *testing.T) {
	type wrapper struct {
		Form Form `json:"form"`
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"form":"unused"}`), &w); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"form":"unused"}` {
		t.Errorf("sentinel did not round-trip: %s", out)
	}

	var absent wrapper
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatal(err)
	}
	if absent.Form.Present() {
		t.Error("absent field must not count as present")
	}
}

func TestFileStem(t *testing.T) {
	v := &VerbRecord{Infinitive: "parler"}
	if v.FileStem() != "parler" {
		t.Errorf("expected infinitive stem, got %s", v.FileStem())
	}
	v.Slug = "etre"
	if v.FileStem() != "etre" {
		t.Errorf("expected slug to override stem, got %s", v.FileStem())
	}
}
