package intervalio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

// Options controls how an interval set is read.
type Options struct {
	// Format overrides extension-based detection unless it is FormatAuto or empty.
	Format Format
	// MaxLineBytes bounds a single text line; zero uses DefaultMaxLineBytes.
	MaxLineBytes int
}

// Read parses an interval set from r in the given format.
// FormatAuto is read as text.
func Read(r io.Reader, format Format, maxLineBytes int) ([]Interval, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatText, FormatAuto, "":
		return ReadText(r, maxLineBytes)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Open reads the interval set stored at path. Files ending in ".lz4" are
// decompressed transparently; the remaining extension selects the format
// unless opts.Format names one explicitly.
func Open(path string, opts Options) ([]Interval, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interval file: %w", err)
	}
	defer file.Close()

	format, compressed := DetectFormat(path)
	if opts.Format != "" && opts.Format != FormatAuto {
		format = opts.Format
	}

	var src io.Reader = file
	if compressed {
		src = lz4.NewReader(file)
	}

	intervals, err := Read(src, format, opts.MaxLineBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return intervals, nil
}

// Save writes intervals to path in the text line format, lz4-compressed when
// path ends in ".lz4".
func Save(path string, intervals []Interval) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create interval file: %w", err)
	}

	defer func() {
		err = errors.Join(err, file.Close())
	}()

	_, compressed := DetectFormat(path)
	if !compressed {
		return WriteIntervals(file, intervals)
	}

	zw := lz4.NewWriter(file)

	err = WriteIntervals(zw, intervals)
	if err != nil {
		return err
	}

	err = zw.Close()
	if err != nil {
		return fmt.Errorf("flush lz4 stream: %w", err)
	}

	return nil
}
