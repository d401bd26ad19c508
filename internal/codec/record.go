package codec

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"attrstore/internal/path"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeRecord parses data into a record.
func DecodeRecord(data []byte, format Format) (path.Record, error) {
	var raw any

	err := unmarshal(data, format, &raw)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return path.Record{}, nil
	}

	rec, ok := Normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record must be a mapping, got %T", raw)
	}

	return rec, nil
}

// EncodeRecord serializes a record.
func EncodeRecord(rec path.Record, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(rec)
	case FormatJSON:
		return json.MarshalIndent(rec, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
}

// LoadRecord reads a record file; the format follows the extension,
// falling back to fallback when it cannot be detected.
func LoadRecord(file string, fallback Format) (path.Record, error) {
	format, err := FormatFromPath(file, fallback)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file %s: %w", file, err)
	}

	rec, err := DecodeRecord(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record file %s: %w", file, err)
	}

	return rec, nil
}

// WriteRecord writes a record file; the format follows the extension,
// falling back to fallback when it cannot be detected.
func WriteRecord(rec path.Record, file string, fallback Format) error {
	format, err := FormatFromPath(file, fallback)
	if err != nil {
		return err
	}

	data, err := EncodeRecord(rec, format)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file %s: %w", file, err)
	}

	return nil
}

// Normalize converts map[any]any nodes into map[string]any, recursing
// through maps and slices. Non-string keys are formatted with fmt.Sprint.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = Normalize(child)
		}

		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = Normalize(child)
		}

		return out
	case []any:
		for i := range t {
			t[i] = Normalize(t[i])
		}

		return t
	default:
		return v
	}
}

func unmarshal(data []byte, format Format, out any) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %v", format)
	}

	return nil
}

// FormatValue renders a single value as compact JSON for display. Values
// that cannot be encoded fall back to fmt's %v.
func FormatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(data)
}
