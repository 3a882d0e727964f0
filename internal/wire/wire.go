// Package wire holds the JSON decoding helpers shared by the exchange format
// packages: required, forbidden and non-negative field checks.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDecode is the root of every structural decode failure.
	ErrDecode = errors.New("decode error")
	// ErrMissingField reports a required key that is absent or null.
	ErrMissingField = fmt.Errorf("%w: missing required field", ErrDecode)
	// ErrForbiddenField reports a key that marks a payload as another shape.
	ErrForbiddenField = fmt.Errorf("%w: unexpected field", ErrDecode)
	// ErrNegative reports a negative value in a counting field.
	ErrNegative = fmt.Errorf("%w: negative number", ErrDecode)
)

// Wrap marks err as a decode failure unless it already is one.
func Wrap(err error) error {
	if err == nil || errors.Is(err, ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDecode, err)
}

// Require checks that data is a JSON object carrying every named key with a
// non-null value.
func Require(data []byte, required ...string) error {
	fields, err := object(data)
	if err != nil {
		return err
	}
	return requireIn(fields, required)
}

func object(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, Wrap(err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: expected object, got null", ErrDecode)
	}
	return fields, nil
}

func requireIn(fields map[string]json.RawMessage, required []string) error {
	for _, name := range required {
		raw, ok := fields[name]
		if !ok || IsNull(raw) {
			return fmt.Errorf("%w %q", ErrMissingField, name)
		}
	}
	return nil
}

// DecodeRequired unmarshals data into v after checking the required keys.
// Unknown keys are ignored.
func DecodeRequired(data []byte, v any, required ...string) error {
	if err := Require(data, required...); err != nil {
		return err
	}
	return Wrap(json.Unmarshal(data, v))
}

// DecodeWithout is DecodeRequired for a shape that a sibling shape is told
// apart from by one of the forbidden keys. Such a key fails the decode even
// when its value is null; any other unknown key is ignored.
func DecodeWithout(data []byte, v any, forbidden []string, required ...string) error {
	fields, err := object(data)
	if err != nil {
		return err
	}
	for _, name := range forbidden {
		if _, ok := fields[name]; ok {
			return fmt.Errorf("%w %q", ErrForbiddenField, name)
		}
	}
	if err := requireIn(fields, required); err != nil {
		return err
	}
	return Wrap(json.Unmarshal(data, v))
}

// NonNegative fails when any of the values of the named field is below zero.
func NonNegative(name string, values ...int) error {
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("%w: %q is %d", ErrNegative, name, v)
		}
	}
	return nil
}

// IsNull reports whether raw is the JSON literal null.
func IsNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
