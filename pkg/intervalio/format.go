package intervalio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an interval-set or result encoding.
type Format string

// Supported formats.
const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = "auto"
	// FormatText is the whitespace-separated line format.
	FormatText Format = "text"
	// FormatJSON is a JSON array of interval objects.
	FormatJSON Format = "json"
	// FormatYAML is a YAML sequence of interval objects.
	FormatYAML Format = "yaml"
)

// compressedExt marks lz4-compressed files.
const compressedExt = ".lz4"

// ParseFormat converts a user-supplied name into a Format.
// The empty string is treated as FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatText, "txt":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DetectFormat infers the format of path from its extension and reports
// whether the file is lz4-compressed. Unknown extensions are read as text.
func DetectFormat(path string) (Format, bool) {
	lower := strings.ToLower(path)

	compressed := strings.HasSuffix(lower, compressedExt)
	if compressed {
		lower = strings.TrimSuffix(lower, compressedExt)
	}

	switch filepath.Ext(lower) {
	case ".json":
		return FormatJSON, compressed
	case ".yaml", ".yml":
		return FormatYAML, compressed
	default:
		return FormatText, compressed
	}
}
