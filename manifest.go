package trackgen

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Manifest records the bit layout of one generated record.
type Manifest struct {
	Schema       string          `json:"schema" yaml:"schema" msgpack:"schema"`
	Record       string          `json:"record" yaml:"record" msgpack:"record"`
	Width        int             `json:"width" yaml:"width" msgpack:"width"`
	StorageField string          `json:"storage_field" yaml:"storage_field" msgpack:"storage_field"`
	Fields       []ManifestField `json:"fields" yaml:"fields" msgpack:"fields"`
	Fingerprint  string          `json:"fingerprint" yaml:"fingerprint" msgpack:"fingerprint"`
	RunID        string          `json:"run_id,omitempty" yaml:"run_id,omitempty" msgpack:"run_id,omitempty"`
	GeneratedAt  time.Time       `json:"generated_at" yaml:"generated_at" msgpack:"generated_at"`
}

// ManifestField is a tracked field and its bit.
type ManifestField struct {
	Name          string `json:"name" yaml:"name" msgpack:"name"`
	Type          string `json:"type" yaml:"type" msgpack:"type"`
	Bit           int    `json:"bit" yaml:"bit" msgpack:"bit"`
	CheckEquality bool   `json:"check_equality" yaml:"check_equality" msgpack:"check_equality"`
}

func NewManifest(rs *RecordSchema, runID string, now time.Time) *Manifest {
	m := &Manifest{
		Schema:       rs.Schema,
		Record:       rs.Name,
		Width:        int(rs.Width),
		StorageField: rs.StorageField,
		RunID:        runID,
		GeneratedAt:  now.UTC(),
	}
	for _, f := range rs.Tracked() {
		m.Fields = append(m.Fields, ManifestField{
			Name:          f.Name,
			Type:          f.Type,
			Bit:           f.BitIndex,
			CheckEquality: f.CheckEquality,
		})
	}
	m.Fingerprint = m.fingerprint()
	return m
}

// Manifests returns a manifest per record of scm, in declaration order.
func Manifests(scm *Schema, runID string, now time.Time) []*Manifest {
	var result []*Manifest
	for _, rs := range scm.records {
		result = append(result, NewManifest(rs, runID, now))
	}
	return result
}

// Key identifies the record in the layout cache.
func (m *Manifest) Key() string {
	return m.Schema + "." + m.Record
}

// fingerprint hashes the layout only; run metadata does not affect it.
func (m *Manifest) fingerprint() string {
	layout := struct {
		Width        int
		StorageField string
		Fields       []ManifestField
	}{m.Width, m.StorageField, m.Fields}
	raw := must(MsgPack.Encode(&layout))
	return fmt.Sprintf("%016x", xxhash.Sum64(raw))
}

func (m *Manifest) fieldNamed(name string) *ManifestField {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// Drift is a layout change between two generations of a record. A field
// that stopped being tracked has NewBit -1. Width drift has an empty Field.
type Drift struct {
	Record   string
	Field    string
	OldBit   int
	NewBit   int
	OldWidth int
	NewWidth int
}

func (d Drift) String() string {
	if d.Field == "" {
		return fmt.Sprintf("%s: width %d -> %d", d.Record, d.OldWidth, d.NewWidth)
	}
	if d.NewBit < 0 {
		return fmt.Sprintf("%s.%s: bit %d -> untracked", d.Record, d.Field, d.OldBit)
	}
	return fmt.Sprintf("%s.%s: bit %d -> %d", d.Record, d.Field, d.OldBit, d.NewBit)
}

// CompareLayouts lists fields of old whose bit moved or disappeared in cur.
// Fields appended after the previous layout do not move anything and are not
// reported.
func CompareLayouts(old, cur *Manifest) []Drift {
	if old == nil || old.Fingerprint == cur.Fingerprint {
		return nil
	}
	var result []Drift
	if old.Width != cur.Width {
		result = append(result, Drift{Record: cur.Record, OldWidth: old.Width, NewWidth: cur.Width})
	}
	for _, of := range old.Fields {
		d := Drift{Record: cur.Record, Field: of.Name, OldBit: of.Bit, NewBit: -1}
		if nf := cur.fieldNamed(of.Name); nf != nil {
			if nf.Bit == of.Bit {
				continue
			}
			d.NewBit = nf.Bit
		}
		result = append(result, d)
	}
	return result
}
