package trackgen

import "fmt"

// accessors emits the five per-field operations for every trackable field.
// Untracked fields get nothing.
func (e *emitter) accessors(rs *RecordSchema) {
	recv := receiverName(rs.Name)
	rt := rs.receiverType()
	for _, f := range rs.Tracked() {
		n := f.names
		field := recv + "." + f.Name
		mark := e.markStmt(rs, recv, n.mask)

		e.doc(fmt.Sprintf("%s returns the %s field.", n.get, f.Name))
		e.p("func (%s *%s) %s() %s {", recv, rt, n.get, f.Type)
		e.p("\treturn %s", field)
		e.p("}")
		e.nl()

		e.doc(
			fmt.Sprintf("%s returns a pointer to the %s field and marks the field as changed.", n.getMut, f.Name),
			"Writes through the pointer are not observed; the field is assumed modified.",
		)
		e.p("func (%s *%s) %s() *%s {", recv, rt, n.getMut, f.Type)
		e.p("\t%s", mark)
		e.p("\treturn &%s", field)
		e.p("}")
		e.nl()

		if f.CheckEquality {
			e.doc(fmt.Sprintf("%s stores value in the %s field and marks the field as changed if value differs from the previous value.", n.set, f.Name))
			e.p("func (%s *%s) %s(value %s) {", recv, rt, n.set, f.Type)
			if f.GuardEquality {
				e.p("\tif !%s(%s, value) {", equalHelper, field)
			} else {
				e.p("\tif %s != value {", field)
			}
			e.p("\t\t%s", mark)
			e.p("\t}")
			e.p("\t%s = value", field)
			e.p("}")
		} else {
			e.doc(fmt.Sprintf("%s stores value in the %s field and marks the field as changed.", n.set, f.Name))
			e.p("func (%s *%s) %s(value %s) {", recv, rt, n.set, f.Type)
			e.p("\t%s", mark)
			e.p("\t%s = value", field)
			e.p("}")
		}
		e.nl()

		e.doc(fmt.Sprintf("%s calls fn with a pointer to the %s field and marks the field as changed.", n.update, f.Name))
		e.p("func (%s *%s) %s(fn func(*%s)) {", recv, rt, n.update, f.Type)
		e.p("\t%s", mark)
		e.p("\tfn(&%s)", field)
		e.p("}")
		e.nl()

		e.doc(fmt.Sprintf("%s reports whether the %s field changed since the last %s.", n.changed, f.Name, rs.names.reset))
		e.p("func (%s *%s) %s() bool {", recv, rt, n.changed)
		e.p("\treturn %s.%s(%s)", recv, rs.names.changed, n.mask)
		e.p("}")
		e.nl()
	}
}

func (e *emitter) markStmt(rs *RecordSchema, recv, mask string) string {
	storage := recv + "." + rs.StorageField
	if rs.Width.Native() {
		return fmt.Sprintf("%s |= %s", storage, mask)
	}
	return fmt.Sprintf("%s = %s.Or(%s)", storage, storage, mask)
}
