package trackgen

import "fmt"

// aggregate emits the tracker type, the mask declarations and the whole-record
// methods: Changed(mask), ChangedAny, Reset and MarkAllChanged.
func (e *emitter) aggregate(rs *RecordSchema) {
	rn := rs.names
	tracked := rs.Tracked()

	e.doc(
		fmt.Sprintf("%s records which tracked fields of %s changed since the last", rn.trackerType, rs.Name),
		fmt.Sprintf("%s. Bit i belongs to the i-th tracked field in declaration order.", rn.reset),
	)
	if rs.Width.Native() {
		e.p("type %s %s", rn.trackerType, rs.Width.GoType())
		e.nl()
		e.p("const (")
		for _, f := range tracked {
			e.p("\t%s %s = 1 << %d", f.names.mask, rn.trackerType, f.BitIndex)
		}
		if len(tracked) > 0 {
			e.nl()
		}
		e.p("\t%s %s = %s", rn.maskAll, rn.trackerType, e.allMaskExpr(rs))
		e.p(")")
	} else {
		e.p("type %s = %s", rn.trackerType, rs.Width.GoType())
		e.nl()
		e.p("var (")
		for _, f := range tracked {
			e.p("\t%s = bitset.Bit(%d)", f.names.mask, f.BitIndex)
		}
		e.nl()
		lo, hi := rs.AllMask()
		e.p("\t%s = bitset.FromWords(%#x, %#x)", rn.maskAll, lo, hi)
		e.p(")")
	}
	e.nl()

	recv := receiverName(rs.Name)
	rt := rs.receiverType()
	storage := recv + "." + rs.StorageField

	e.doc(
		fmt.Sprintf("%s reports whether any field selected by mask changed since the last %s.", rn.changed, rn.reset),
		"Combine masks with | to query several fields at once.",
	)
	e.p("func (%s *%s) %s(mask %s) bool {", recv, rt, rn.changed, rn.trackerType)
	if rs.Width.Native() {
		e.p("\treturn %s&mask != 0", storage)
	} else {
		e.p("\treturn %s.Intersects(mask)", storage)
	}
	e.p("}")
	e.nl()

	e.doc(fmt.Sprintf("%s reports whether any tracked field changed since the last %s.", rn.changedAny, rn.reset))
	e.p("func (%s *%s) %s() bool {", recv, rt, rn.changedAny)
	e.p("\treturn %s.%s(%s)", recv, rn.changed, rn.maskAll)
	e.p("}")
	e.nl()

	e.doc(fmt.Sprintf("%s marks every field as unchanged. Field values are not touched.", rn.reset))
	e.p("func (%s *%s) %s() {", recv, rt, rn.reset)
	if rs.Width.Native() {
		e.p("\t%s = 0", storage)
	} else {
		e.p("\t%s = %s{}", storage, rn.trackerType)
	}
	e.p("}")
	e.nl()

	e.doc(fmt.Sprintf("%s marks every tracked field as changed.", rn.markAllChanged))
	e.p("func (%s *%s) %s() {", recv, rt, rn.markAllChanged)
	e.p("\t%s = %s", storage, rn.maskAll)
	e.p("}")
	e.nl()
}

func (e *emitter) allMaskExpr(rs *RecordSchema) string {
	tracked := rs.Tracked()
	if len(tracked) == 0 {
		return "0"
	}
	var expr string
	for i, f := range tracked {
		if i > 0 {
			expr += " | "
		}
		expr += f.names.mask
	}
	return expr
}
