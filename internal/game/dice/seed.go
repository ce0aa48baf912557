package dice

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Seed is the normalised root of a generation run.
//
// Invariant: Value is derived from Text and never changes after construction.
type Seed struct {
	Text    string // seed as supplied by the caller
	Numeric bool   // true when Text is a decimal integer
	Value   uint32 // 32-bit state the root stream starts from
}

// HashString returns the 32-bit FNV-1a hash of s.
func HashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// NumericSeed builds a Seed from an integer, reducing it modulo 2^32.
func NumericSeed(n int64) Seed {
	return Seed{Text: strconv.FormatInt(n, 10), Numeric: true, Value: uint32(n)}
}

// ParseSeed normalises a textual seed. Decimal integers keep their numeric
// value (mod 2^32); every other string is hashed with FNV-1a.
//
// Postcondition: ParseSeed(s).Value is a pure function of s.
func ParseSeed(text string) Seed {
	trimmed := strings.TrimSpace(text)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return NumericSeed(n)
	}
	return Seed{Text: text, Value: HashString(text)}
}

// String returns the seed as the caller supplied it.
func (s Seed) String() string {
	return s.Text
}

// MarshalJSON emits numeric seeds as JSON numbers and textual seeds as strings.
func (s Seed) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		return []byte(s.Text), nil
	}
	return json.Marshal(s.Text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (s *Seed) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		// A quoted number stays textual so it round-trips unchanged.
		*s = Seed{Text: text, Value: HashString(text)}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("dice: seed must be a string or number: %w", err)
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("dice: seed number %s is not an integer: %w", n, err)
	}
	*s = NumericSeed(i)
	return nil
}
