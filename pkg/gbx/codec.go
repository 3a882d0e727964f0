package gbx

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gardar/gbx/internal/wire"
)

// Encode returns the minimal encoding of f: empty sections, empty texts,
// absent optional fields and empty maps are left out.
func Encode(f *PdfFile) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gbx file: %w", err)
	}
	return data, nil
}

// EncodeIndent is Encode with two-space indentation.
func EncodeIndent(f *PdfFile) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode gbx file: %w", err)
	}
	return data, nil
}

// Decode parses a .gbx payload. Omitted fields get their defaults; missing
// required fields, unknown enum tokens, payloads matching no entry shape and
// invalid page ids are reported as ErrDecode.
func Decode(data []byte) (*PdfFile, error) {
	var f PdfFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode gbx file: %w", wire.Wrap(err))
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("failed to decode gbx file: %w", err)
	}
	return &f, nil
}

// ReadFile decodes the .gbx file at path.
func ReadFile(path string) (*PdfFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gbx file: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes f indented to path.
func WriteFile(path string, f *PdfFile) error {
	data, err := EncodeIndent(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write gbx file: %w", err)
	}
	return nil
}
