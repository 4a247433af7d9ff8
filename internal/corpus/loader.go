package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	cerrors "conjcheck/internal/core/errors"
)

// LoadRecord reads and decodes one verb record. On any syntax error the whole
// load fails with a PARSE_ERROR carrying the decoder's position message; a
// record is never partially populated.
func LoadRecord(path string) (*VerbRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.AddContext(
			cerrors.Wrap(err, cerrors.CodeParseError, "failed to read record"),
			cerrors.CtxPath, path)
	}

	var record VerbRecord
	if err := decodeStrict(data, &record); err != nil {
		return nil, cerrors.AddContext(
			cerrors.Wrap(err, cerrors.CodeParseError, "invalid JSON syntax"),
			cerrors.CtxPath, path)
	}

	record.Path = path
	return &record, nil
}

// LoadInfo reads the reserved corpus metadata file. A missing file is not an
// error; the caller decides whether metadata is required.
func LoadInfo(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, cerrors.AddContext(
			cerrors.Wrap(err, cerrors.CodeStructuralError, "failed to read corpus metadata"),
			cerrors.CtxPath, path)
	}

	var info Info
	if err := decodeStrict(data, &info); err != nil {
		return nil, cerrors.AddContext(
			cerrors.Wrap(err, cerrors.CodeStructuralError, "invalid corpus metadata"),
			cerrors.CtxPath, path)
	}
	return &info, nil
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Trailing content after the document is a syntax error too.
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("unexpected trailing content after JSON document")
	}
	return nil
}
