package trackgen

import (
	"fmt"
	"strings"
)

type DumpFlags uint64

const (
	DumpRecordHeaders = DumpFlags(1 << iota)
	DumpFields
	DumpUntracked
	DumpNames

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders the layout of every record for humans.
func (scm *Schema) Dump(f DumpFlags) string {
	var buf strings.Builder
	for _, rs := range scm.records {
		dumpRecord(&buf, f, rs)
	}
	return buf.String()
}

func dumpRecord(w *strings.Builder, f DumpFlags, rs *RecordSchema) {
	prefix := rs.Name + rs.TypeParams
	if f.Contains(DumpRecordHeaders) {
		fmt.Fprintln(w, dumpSep1)
		lo, hi := rs.AllMask()
		fmt.Fprintf(w, "%s (%d tracked, %s, %s %s, all = %s)\n", prefix, rs.TrackedCount(), rs.Width.GoType(), rs.StorageField, rs.names.trackerType, formatMask(rs.Width, lo, hi))
	}
	if f.Contains(DumpFields) {
		if f.Contains(DumpRecordHeaders) {
			fmt.Fprintln(w, dumpSep2)
		}
		for i := range rs.Fields {
			fld := &rs.Fields[i]
			if !fld.Trackable {
				if f.Contains(DumpUntracked) {
					fmt.Fprintf(w, "%s.%s  -  %s  untracked\n", prefix, rpad(fld.Name, 16, ' '), fld.Type)
				}
				continue
			}
			eq := "eq"
			if !fld.CheckEquality {
				eq = "no_eq"
			}
			fmt.Fprintf(w, "%s.%s %3d %s  %s\n", prefix, rpad(fld.Name, 16, ' '), fld.BitIndex, fld.Type, eq)
			if f.Contains(DumpNames) {
				n := fld.names
				fmt.Fprintf(w, "%s    %s %s %s %s %s %s\n", strings.Repeat(" ", len(prefix)), n.get, n.getMut, n.set, n.update, n.changed, n.mask)
			}
		}
	}
}

func formatMask(w Width, lo, hi uint64) string {
	if w == Width128 {
		return fmt.Sprintf("0x%016x%016x", hi, lo)
	}
	return fmt.Sprintf("0x%0*x", int(w)/4, lo)
}
