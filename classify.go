package trackgen

import (
	"fmt"
	"go/token"
)

// Classify turns the declared fields of a record into FieldSpecs. The storage
// field is recognized and removed; every other field keeps its declaration
// order. Bit indices are left at -1 for Allocate to fill in.
func Classify(raw *RawRecord, opt Options) ([]FieldSpec, error) {
	storageName := opt.storageField()
	trackerType := trackerTypeName(raw.Name)

	if err := checkFieldNames(raw); err != nil {
		return nil, err
	}

	var storageSeen bool
	fields := make([]FieldSpec, 0, len(raw.Fields))
	for i := range raw.Fields {
		rf := &raw.Fields[i]

		if rf.Name == storageName {
			if raw.SynthesizeStorage {
				return nil, schemaErrf(ReservedName, raw, rf.Name, nil, "field name %q is reserved for tracker storage", storageName)
			}
			if rf.Type != trackerType {
				return nil, schemaErrf(ReservedName, raw, rf.Name, nil, "field name %q is reserved for tracker storage, which must have type %s (got %s)", storageName, trackerType, rf.Type)
			}
			if len(rf.Markers) > 0 {
				return nil, schemaErrf(ReservedName, raw, rf.Name, nil, "tracker storage field cannot carry markers")
			}
			storageSeen = true
			continue
		}

		m, err := classifyMarkers(raw, rf)
		if err != nil {
			return nil, err
		}

		fs := FieldSpec{
			Name:     rf.Name,
			Type:     rf.Type,
			BitIndex: -1,
			Tag:      rf.Tag,
			Doc:      rf.Doc,
			Embedded: rf.Embedded,
			Imports:  rf.Imports,
		}
		if !m.Has(DoNotTrack) {
			fs.Trackable = true
			fs.CheckEquality = !m.Has(NoEq)
		}
		if fs.CheckEquality {
			fs.GuardEquality = rf.DynamicEq || syntacticDynamicEq(rf.Type, raw.TypeParams)
		}

		if fs.CheckEquality && fieldComparability(raw, rf) == NotComparable {
			return nil, schemaErrf(MissingEqualityCapability, raw, rf.Name, nil, "type %s does not support ==; mark the field no_eq", rf.Type)
		}
		fields = append(fields, fs)
	}

	if !storageSeen && !raw.SynthesizeStorage {
		return nil, schemaErrf(MissingTrackerStorage, raw, "", nil, "add a field `%s %s`", storageName, trackerType)
	}
	return fields, nil
}

// checkFieldNames rejects fields that generated code could not refer to by a
// unique identifier. Blank fields may repeat.
func checkFieldNames(raw *RawRecord) error {
	seen := make(map[string]bool, len(raw.Fields))
	for i := range raw.Fields {
		rf := &raw.Fields[i]
		var msg string
		switch {
		case rf.Name == "":
			msg = fmt.Sprintf("field of type %s has no name", rf.Type)
		case !token.IsIdentifier(rf.Name):
			msg = fmt.Sprintf("field name %q is not a Go identifier", rf.Name)
		case seen[rf.Name] && rf.Name != "_":
			msg = fmt.Sprintf("duplicate field %s", rf.Name)
		default:
			seen[rf.Name] = true
			continue
		}
		err := schemaErrf(ReservedName, raw, rf.Name, nil, "%s", msg).(*SchemaError)
		if rf.Pos != "" {
			err.Pos = rf.Pos
		}
		return err
	}
	return nil
}

// classifyMarkers normalizes all marker spellings of a field into one set and
// checks them against the explicit policy booleans of description files.
// Duplicated markers (e.g. a struct tag and a comment directive for the same
// concept) are aliases, not conflicts.
func classifyMarkers(raw *RawRecord, rf *RawField) (Marker, error) {
	var m Marker
	for _, s := range rf.Markers {
		v, ok := ParseMarker(s)
		if !ok {
			return 0, schemaErrf(UnknownMarker, raw, rf.Name, nil, "unknown marker %q (want %s or %s)", s, doNotTrackName, noEqName)
		}
		m |= v
	}

	if rf.Track != nil {
		if *rf.Track && m.Has(DoNotTrack) {
			return 0, schemaErrf(ConflictingAnnotation, raw, rf.Name, nil, "track: true contradicts %s", doNotTrackName)
		}
		if !*rf.Track {
			m |= DoNotTrack
		}
	}
	if rf.Eq != nil && !m.Has(DoNotTrack) {
		if *rf.Eq && m.Has(NoEq) {
			return 0, schemaErrf(ConflictingAnnotation, raw, rf.Name, nil, "eq: true contradicts %s", noEqName)
		}
		if !*rf.Eq {
			m |= NoEq
		}
	}
	return m, nil
}

func fieldComparability(raw *RawRecord, rf *RawField) Comparability {
	if rf.Comparable != ComparableUnknown {
		return rf.Comparable
	}
	return syntacticComparability(rf.Type, raw.TypeParams)
}
