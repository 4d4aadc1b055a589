package override

import (
	"math/big"
	"strconv"
)

// Mask identifies the subset of override rules that apply to a path. It is
// built by shifting an accumulator left once per rule, in declaration order,
// and setting the low bit when the rule matches. The last rule therefore
// owns bit 0 and the first rule owns bit Width()-1.
//
// Two paths share a Mask exactly when the same rules apply to both. Masks
// have no width limit.
type Mask struct {
	bits  *big.Int
	width int
}

// Width returns the number of rules the mask was computed over.
func (m Mask) Width() int { return m.width }

// IsZero reports whether no rule applied.
func (m Mask) IsZero() bool { return m.bits == nil || m.bits.Sign() == 0 }

// Has reports whether the rule at declaration index i applied.
func (m Mask) Has(i int) bool {
	if m.bits == nil || i < 0 || i >= m.width {
		return false
	}
	return m.bits.Bit(m.width-1-i) == 1
}

// Equal reports whether m and o select the same rules.
func (m Mask) Equal(o Mask) bool {
	return m.width == o.width && m.int().Cmp(o.int()) == 0
}

// Key returns a canonical string usable as a map key.
func (m Mask) Key() string {
	return strconv.Itoa(m.width) + ":" + m.int().Text(16)
}

// Uint64 returns the mask as an integer when it fits in 64 bits.
func (m Mask) Uint64() (uint64, bool) {
	v := m.int()
	if !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// String renders the mask in binary, e.g. "0b101".
func (m Mask) String() string {
	return "0b" + m.int().Text(2)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mask) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m Mask) int() *big.Int {
	if m.bits == nil {
		return new(big.Int)
	}
	return m.bits
}
