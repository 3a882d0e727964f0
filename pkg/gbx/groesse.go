package gbx

import (
	"encoding/json"
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/gardar/gbx/internal/wire"
)

// Einheit selects how a FlurstueckGroesse is recorded.
type Einheit int

const (
	// EinheitMetrisch records square meters only. It is the default.
	EinheitMetrisch Einheit = iota
	// EinheitHektar records hectares, ares and square meters.
	EinheitHektar
)

func (e Einheit) String() string {
	switch e {
	case EinheitMetrisch:
		return "m"
	case EinheitHektar:
		return "ha"
	}
	return "Einheit(" + strconv.Itoa(int(e)) + ")"
}

// FlurstueckGroesse is the area of a parcel as written in the register.
// Every component is optional; missing components count as zero. Metric
// values only use Qm.
type FlurstueckGroesse struct {
	Einheit Einheit
	Ha      *uint64
	Ar      *uint64
	Qm      *uint64
}

// Metrisch is an area given in square meters.
func Metrisch(m2 uint64) FlurstueckGroesse {
	return FlurstueckGroesse{Einheit: EinheitMetrisch, Qm: &m2}
}

// Hektar is an area given as ha, a and m².
func Hektar(ha, a, m2 uint64) FlurstueckGroesse {
	return FlurstueckGroesse{Einheit: EinheitHektar, Ha: &ha, Ar: &a, Qm: &m2}
}

// IsEmpty reports whether no component of the area is present.
func (g FlurstueckGroesse) IsEmpty() bool {
	if g.Einheit == EinheitHektar {
		return g.Ha == nil && g.Ar == nil && g.Qm == nil
	}
	return g.Qm == nil
}

func (g FlurstueckGroesse) IsZero() bool {
	return g.IsEmpty()
}

// M2 is the total in the register's own unit: ha*100000 + a*100 + m2.
// Metric sizes only count m2. Totals beyond math.MaxUint64 saturate.
func (g FlurstueckGroesse) M2() uint64 {
	total := deref(g.Qm)
	if g.Einheit == EinheitHektar {
		total = addSat(total, mulSat(deref(g.Ha), 100000))
		total = addSat(total, mulSat(deref(g.Ar), 100))
	}
	return total
}

func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// HaString is the decimal total without its last four digits.
func (g FlurstueckGroesse) HaString() string {
	s := g.digits()
	if len(s) <= 4 {
		return ""
	}
	return s[:len(s)-4]
}

// AString is the third and fourth digit from the right of the total.
func (g FlurstueckGroesse) AString() string {
	s := g.digits()
	s = s[max(0, len(s)-4):]
	if len(s) <= 2 {
		return ""
	}
	return s[:len(s)-2]
}

// M2String is the last two digits of the total, "0" if there are none.
func (g FlurstueckGroesse) M2String() string {
	s := g.digits()
	s = s[max(0, len(s)-2):]
	if s == "" {
		return "0"
	}
	return s
}

func (g FlurstueckGroesse) String() string {
	if g.Einheit == EinheitHektar {
		return fmt.Sprintf("%s ha %s a %s m²", g.HaString(), g.AString(), g.M2String())
	}
	return strconv.FormatUint(g.M2(), 10) + " m²"
}

func (g FlurstueckGroesse) digits() string {
	return strconv.FormatUint(g.M2(), 10)
}

type groesseWert struct {
	Ha *uint64 `json:"ha,omitempty"`
	A  *uint64 `json:"a,omitempty"`
	M2 *uint64 `json:"m2,omitempty"`
}

type groesseWire struct {
	Typ  string          `json:"typ"`
	Wert json.RawMessage `json:"wert"`
}

func (g FlurstueckGroesse) MarshalJSON() ([]byte, error) {
	wert := groesseWert{M2: g.Qm}
	if g.Einheit == EinheitHektar {
		wert.Ha, wert.A = g.Ha, g.Ar
	} else if g.Einheit != EinheitMetrisch {
		return nil, fmt.Errorf("unsupported area unit %s", g.Einheit)
	}
	raw, err := json.Marshal(wert)
	if err != nil {
		return nil, err
	}
	return json.Marshal(groesseWire{Typ: g.Einheit.String(), Wert: raw})
}

func (g *FlurstueckGroesse) UnmarshalJSON(data []byte) error {
	var w groesseWire
	if err := wire.DecodeRequired(data, &w, "typ", "wert"); err != nil {
		return fmt.Errorf("area size: %w", err)
	}

	var wert groesseWert
	if err := wire.DecodeRequired(w.Wert, &wert); err != nil {
		return fmt.Errorf("area size value: %w", err)
	}

	switch w.Typ {
	case "m":
		*g = FlurstueckGroesse{Einheit: EinheitMetrisch, Qm: wert.M2}
	case "ha":
		*g = FlurstueckGroesse{Einheit: EinheitHektar, Ha: wert.Ha, Ar: wert.A, Qm: wert.M2}
	default:
		return fmt.Errorf("%w %q", ErrUnknownEinheit, w.Typ)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
