/*
Package bitset provides U128, the tracker storage type used by generated code
for records with 65 to 128 trackable fields, and by the dyntrack runtime.

U128 is a value type: two words, no allocation, comparable with ==.
*/
package bitset

import (
	"fmt"
	"math/bits"
)

const wordBits = 64

// Size is the number of bits in a U128.
const Size = 2 * wordBits

type U128 struct {
	lo, hi uint64
}

// Bit returns a U128 with only bit i set. It panics if i is out of range.
func Bit(i int) U128 {
	switch {
	case i < 0 || i >= Size:
		panic(fmt.Errorf("bitset: bit %d out of range [0, %d)", i, Size))
	case i < wordBits:
		return U128{lo: 1 << i}
	default:
		return U128{hi: 1 << (i - wordBits)}
	}
}

// FromWords builds a U128 from its low and high words.
func FromWords(lo, hi uint64) U128 {
	return U128{lo, hi}
}

func (b U128) Words() (lo, hi uint64) {
	return b.lo, b.hi
}

func (b U128) Or(o U128) U128 {
	return U128{b.lo | o.lo, b.hi | o.hi}
}

func (b U128) And(o U128) U128 {
	return U128{b.lo & o.lo, b.hi & o.hi}
}

// Intersects reports whether b and o have any bit in common.
func (b U128) Intersects(o U128) bool {
	return (b.lo&o.lo) != 0 || (b.hi&o.hi) != 0
}

func (b U128) Has(i int) bool {
	return b.Intersects(Bit(i))
}

func (b U128) IsZero() bool {
	return b.lo == 0 && b.hi == 0
}

func (b U128) Count() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// String renders the value as 0x-prefixed hex, high word first.
func (b U128) String() string {
	if b.hi == 0 {
		return fmt.Sprintf("0x%x", b.lo)
	}
	return fmt.Sprintf("0x%x%016x", b.hi, b.lo)
}
