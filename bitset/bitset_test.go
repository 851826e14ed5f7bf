package bitset

import "testing"

func TestBit(t *testing.T) {
	for _, i := range []int{0, 1, 63, 64, 65, 127} {
		b := Bit(i)
		if !b.Has(i) {
			t.Fatalf("Bit(%d).Has(%d) = false, wanted true", i, i)
		}
		if b.Count() != 1 {
			t.Fatalf("Bit(%d).Count() = %d, wanted 1", i, b.Count())
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = Bit(128)
}

func TestU128_OrIntersects(t *testing.T) {
	a, b, c := Bit(3), Bit(70), Bit(4)
	ab := a.Or(b)
	if !ab.Intersects(a) || !ab.Intersects(b) {
		t.Fatalf("%v does not intersect its parts", ab)
	}
	if ab.Intersects(c) {
		t.Fatalf("%v intersects %v", ab, c)
	}
	if a.Intersects(b) {
		t.Fatalf("distinct bits intersect")
	}
	if got := ab.And(b); got != b {
		t.Fatalf("And = %v, wanted %v", got, b)
	}
	if !(U128{}).IsZero() || ab.IsZero() {
		t.Fatalf("IsZero returned unexpected values")
	}
}

func TestU128_String(t *testing.T) {
	if got := Bit(4).String(); got != "0x10" {
		t.Fatalf("String = %q, wanted 0x10", got)
	}
	if got := Bit(64).Or(Bit(0)).String(); got != "0x10000000000000001" {
		t.Fatalf("String = %q, wanted 0x10000000000000001", got)
	}
	lo, hi := FromWords(5, 6).Words()
	if lo != 5 || hi != 6 {
		t.Fatalf("Words = (%d, %d), wanted (5, 6)", lo, hi)
	}
}
