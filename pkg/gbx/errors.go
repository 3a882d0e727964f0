package gbx

import (
	"errors"
	"fmt"

	"github.com/gardar/gbx/internal/wire"
)

// Decode failures all match ErrDecode with errors.Is:
// - ErrMissingField: a required key is absent or null
// - ErrNegative: a running number, flur or version below zero
// - ErrNoVariant: a payload matches none of the shapes of a union
// - ErrUnknownSeitenTyp: page type token outside the closed set
// - ErrUnknownEinheit: area size tag other than "m" and "ha"
// - ErrInvalidSeitenID: page id that is not a canonical 1-based number
//
// Optional fields never fail decoding; they fall back to their defaults.
var (
	ErrDecode           = wire.ErrDecode
	ErrMissingField     = wire.ErrMissingField
	ErrNegative         = wire.ErrNegative
	ErrNoVariant        = fmt.Errorf("%w: payload matches no known shape", ErrDecode)
	ErrUnknownSeitenTyp = fmt.Errorf("%w: unknown page type", ErrDecode)
	ErrUnknownEinheit   = fmt.Errorf("%w: unknown area size unit", ErrDecode)
	ErrInvalidSeitenID  = fmt.Errorf("%w: invalid page id", ErrDecode)
)

// ErrEmptyVariant is returned when encoding a union value with no variant set.
var ErrEmptyVariant = errors.New("union value has no variant set")
