package trackgen

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	TooManyTrackedFields ErrorKind = iota + 1
	ReservedName
	MissingEqualityCapability
	ConflictingAnnotation
	UnknownMarker
	MissingTrackerStorage
	InvalidDirective
)

var (
	ErrTooManyTrackedFields      = errors.New("too many tracked fields")
	ErrReservedName              = errors.New("reserved name")
	ErrMissingEqualityCapability = errors.New("type does not support equality")
	ErrConflictingAnnotation     = errors.New("conflicting annotation")
	ErrUnknownMarker             = errors.New("unknown marker")
	ErrMissingTrackerStorage     = errors.New("missing tracker storage field")
	ErrInvalidDirective          = errors.New("invalid directive")
)

func (k ErrorKind) String() string {
	switch k {
	case TooManyTrackedFields:
		return "TooManyTrackedFields"
	case ReservedName:
		return "ReservedName"
	case MissingEqualityCapability:
		return "MissingEqualityCapability"
	case ConflictingAnnotation:
		return "ConflictingAnnotation"
	case UnknownMarker:
		return "UnknownMarker"
	case MissingTrackerStorage:
		return "MissingTrackerStorage"
	case InvalidDirective:
		return "InvalidDirective"
	default:
		return fmt.Sprintf("invalid error kind %d", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case TooManyTrackedFields:
		return ErrTooManyTrackedFields
	case ReservedName:
		return ErrReservedName
	case MissingEqualityCapability:
		return ErrMissingEqualityCapability
	case ConflictingAnnotation:
		return ErrConflictingAnnotation
	case UnknownMarker:
		return ErrUnknownMarker
	case MissingTrackerStorage:
		return ErrMissingTrackerStorage
	case InvalidDirective:
		return ErrInvalidDirective
	default:
		return nil
	}
}

// SchemaError is a generation-time error. Generated code never fails at run
// time; everything that can go wrong is reported here, before any record
// exists.
type SchemaError struct {
	Kind   ErrorKind
	Schema string // package path or description file
	Record string
	Field  string
	Pos    string
	Msg    string
	Err    error
}

func schemaErrf(kind ErrorKind, rec *RawRecord, field string, err error, format string, args ...any) error {
	e := &SchemaError{
		Kind:  kind,
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
		Err:   err,
	}
	if rec != nil {
		e.Schema = rec.Schema
		e.Record = rec.Name
		e.Pos = rec.Pos
		if field != "" {
			if f := rec.fieldNamed(field); f != nil && f.Pos != "" {
				e.Pos = f.Pos
			}
		}
	}
	return e
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func (e *SchemaError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *SchemaError) Error() string {
	var buf strings.Builder
	if e.Pos != "" {
		buf.WriteString(e.Pos)
		buf.WriteString(": ")
	}
	if e.Schema != "" {
		buf.WriteString(e.Schema)
		buf.WriteByte('.')
	}
	buf.WriteString(e.Record)
	if e.Field != "" {
		buf.WriteByte('.')
		buf.WriteString(e.Field)
	}
	buf.WriteString(": ")
	buf.WriteString(e.Kind.String())
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}

// ErrorList collects independent schema errors so that one run reports every
// broken record instead of stopping at the first.
type ErrorList []error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "%d errors:", len(l))
	for _, err := range l {
		buf.WriteString("\n\t")
		buf.WriteString(err.Error())
	}
	return buf.String()
}

func (l ErrorList) Unwrap() []error {
	return l
}

func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
