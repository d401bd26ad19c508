package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

//go:generate go tool stringer -type=Format -linecomment -output=format_string.go

// Format identifies a record encoding.
type Format int

const (
	_ Format = iota // invalid

	FormatYAML // yaml
	FormatJSON // json
)

// ParseFormat resolves a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown format %q", name)
	}
}

// FormatFromPath derives the format from a file extension. A missing or
// unknown extension resolves to fallback; a zero fallback makes it an error.
func FormatFromPath(file string, fallback Format) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	if ext == "" {
		if fallback != 0 {
			return fallback, nil
		}

		return 0, fmt.Errorf("cannot detect format of %s: no extension", file)
	}

	format, err := ParseFormat(ext)
	if err != nil && fallback != 0 {
		return fallback, nil
	}

	return format, err
}
