// Package example holds tracked records used to exercise generated code.
package example

//go:generate go run github.com/andreyvit/trackgen/cmd/trackgen

// Point is a plain two-field record.
//
//tracker:track
type Point struct {
	X, Y int

	tracker PointTracker
}

// Sample mixes every field policy.
//
//tracker:track
type Sample struct {
	A       int
	B       string `tracker:"do_not_track"`
	C       int    `tracker:"no_eq"`
	Tags    []string //tracker:no_eq
	max_len int

	tracker SampleTracker
}

// Settings has nine tracked fields, one more than a uint8 tracker holds.
//
//tracker:track
type Settings struct {
	F1, F2, F3, F4, F5, F6, F7, F8, F9 int

	tracker SettingsTracker
}

//tracker:track
type Entry[K comparable, V any] struct {
	Key   K
	Value V `tracker:"tracker::no_eq"`

	tracker EntryTracker
}

// Box holds a value of any dynamic type, comparable or not.
//
//tracker:track
type Box struct {
	V any

	tracker BoxTracker
}
