/*
Package trackgen generates bit-packed dirty tracking for Go structs.

For every tracked record, the generator assigns each trackable field one bit of
a compact tracker value stored inside the struct, and emits accessors that set
the bit whenever the field may have been modified.

# Declaring records

In Go source, mark the struct with a directive and declare the storage field:

	//tracker:track
	type Point struct {
		X, Y  int
		Label string `tracker:"do_not_track"`
		Tags  []string //tracker:no_eq

		tracker PointTracker
	}

Records can also be declared in a description file (YAML, JSON or MsgPack),
see SchemaFile, or programmatically with DefineRecord. In both cases the
generator emits the struct itself.

# Markers

do_not_track excludes a field from tracking; it gets no bit and no accessors.
no_eq makes Set mark the field changed without comparing values, and is
required for types that do not support ==. Markers may be qualified as
tracker::name, tracker:name or tracker.name.

# Layout

Bits are assigned in declaration order, starting at 0. The tracker type is the
smallest of uint8, uint16, uint32, uint64 and bitset.U128 that fits. More than
128 trackable fields is an error.

# Generated API

For a trackable field F of type T in record R:

	GetF() T                 // no marking
	GetMutF() *T             // marks F
	SetF(value T)            // marks F if value differs, or always with no_eq
	UpdateF(fn func(*T))     // marks F
	ChangedF() bool
	RMaskF                   // mask constant

and for the record: Changed(mask), ChangedAny, Reset, MarkAllChanged and
RMaskAll. Identifiers of unexported fields and records are unexported.

# Layout cache

LayoutCache keeps the manifest of the last generation of every record in a
Bolt file and reports fields whose bit moved between runs.
*/
package trackgen
