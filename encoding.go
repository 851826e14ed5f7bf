package trackgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encoding is a serialization format of description files and manifests.
type Encoding int

const (
	MsgPack Encoding = iota
	JSON
	YAML
)

func (enc Encoding) String() string {
	switch enc {
	case MsgPack:
		return "msgpack"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Encoding(%d)", int(enc))
	}
}

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "msgpack", "mp":
		return MsgPack, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("unknown encoding %q", s)
}

// EncodingForFile picks an encoding by file extension.
func EncodingForFile(path string) (Encoding, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%s: cannot determine encoding without a file extension", path)
	}
	return ParseEncoding(ext)
}

func (enc Encoding) Encode(v any) ([]byte, error) {
	switch enc {
	case MsgPack:
		var buf bytes.Buffer
		e := msgpack.GetEncoder()
		e.Reset(&buf)
		e.SetSortMapKeys(true)
		err := e.Encode(v)
		msgpack.PutEncoder(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T using MsgPack: %w", v, err)
		}
		return buf.Bytes(), nil
	case JSON:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T to JSON: %w", v, err)
		}
		return append(raw, '\n'), nil
	case YAML:
		raw, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T to YAML: %w", v, err)
		}
		return raw, nil
	default:
		panic("unsupported encoding")
	}
}

// Decode rejects unknown fields, so that a misspelled key in a description
// file does not silently drop a marker.
func (enc Encoding) Decode(buf []byte, v any) error {
	switch enc {
	case MsgPack:
		dec := msgpack.GetDecoder()
		dec.Reset(bytes.NewReader(buf))
		dec.DisallowUnknownFields(true)
		err := dec.Decode(v)
		dec.DisallowUnknownFields(false)
		msgpack.PutDecoder(dec)
		if err != nil {
			return fmt.Errorf("failed to decode msgpack into %T: %w", v, err)
		}
		return nil
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON into %T: %w", v, err)
		}
		return nil
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML into %T: %w", v, err)
		}
		return nil
	default:
		panic("unsupported encoding")
	}
}
