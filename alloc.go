package trackgen

import "fmt"

// Width is the bit width of a record's tracker storage.
type Width int

const (
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

var supportedWidths = []Width{Width8, Width16, Width32, Width64, Width128}

// MaxTrackedFields is the largest number of trackable fields in one record.
const MaxTrackedFields = int(Width128)

// WidthFor returns the smallest supported width that holds count bits.
func WidthFor(count int) (Width, bool) {
	for _, w := range supportedWidths {
		if count <= int(w) {
			return w, true
		}
	}
	return 0, false
}

// Native reports whether the width maps onto a built-in unsigned integer.
func (w Width) Native() bool {
	return w <= Width64
}

// GoType is the underlying type of the generated tracker type.
func (w Width) GoType() string {
	if w.Native() {
		return fmt.Sprintf("uint%d", int(w))
	}
	return "bitset.U128"
}

func (w Width) String() string {
	return fmt.Sprintf("%d", int(w))
}

// Allocate assigns bit indices to trackable fields in declaration order,
// starting at 0, and picks the tracker width.
func Allocate(raw *RawRecord, fields []FieldSpec) (Width, error) {
	var next int
	for i := range fields {
		if fields[i].Trackable {
			fields[i].BitIndex = next
			next++
		} else {
			fields[i].BitIndex = -1
		}
	}
	w, ok := WidthFor(next)
	if !ok {
		return 0, schemaErrf(TooManyTrackedFields, raw, "", nil, "%d trackable fields, at most %d are supported; mark some fields do_not_track", next, MaxTrackedFields)
	}
	return w, nil
}
