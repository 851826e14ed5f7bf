package trackgen

import (
	"reflect"
	"strings"
)

// Marker is a set of field-level policy markers.
type Marker uint8

const (
	DoNotTrack Marker = 1 << iota
	NoEq
)

const (
	Namespace = "tracker"

	doNotTrackName = "do_not_track"
	noEqName       = "no_eq"
	trackName      = "track"
)

var markersByName = map[string]Marker{
	doNotTrackName: DoNotTrack,
	noEqName:       NoEq,
}

func (m Marker) Has(v Marker) bool {
	return (m & v) == v
}

func (m Marker) String() string {
	var parts []string
	if m.Has(DoNotTrack) {
		parts = append(parts, doNotTrackName)
	}
	if m.Has(NoEq) {
		parts = append(parts, noEqName)
	}
	return strings.Join(parts, ",")
}

// ParseMarker normalizes one marker spelling. Qualified and unqualified
// spellings are aliases: "no_eq", "tracker::no_eq", "tracker:no_eq" and
// "tracker.no_eq" all yield NoEq. The struct tag shorthand "-" means
// do_not_track.
func ParseMarker(s string) (Marker, bool) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return DoNotTrack, true
	}
	s = unqualify(s)
	m, ok := markersByName[s]
	return m, ok
}

func unqualify(s string) string {
	for _, sep := range []string{"::", ":", "."} {
		if rest, ok := strings.CutPrefix(s, Namespace+sep); ok {
			return rest
		}
	}
	return s
}

// TagMarkers returns the non-empty marker spellings carried by a Go struct
// tag under the tracker key.
func TagMarkers(tag string) []string {
	if tag == "" {
		return nil
	}
	v, ok := reflect.StructTag(tag).Lookup(Namespace)
	if !ok {
		return nil
	}
	var result []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// parseDirective recognizes a //tracker:<name> [args] comment line.
func parseDirective(line string) (name, args string, ok bool) {
	rest, ok := strings.CutPrefix(line, "//"+Namespace+":")
	if !ok {
		return "", "", false
	}
	name, args, _ = strings.Cut(rest, " ")
	return strings.TrimSpace(name), strings.TrimSpace(args), name != ""
}
