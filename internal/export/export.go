// Package export writes analysis results as JSON, to stdout or to files,
// with transparent xz compression for paths ending in .xz.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// WriteTo encodes v as JSON onto w. Pretty output is indented with two
// spaces; compact output is a single line. A trailing newline is always
// written.
func WriteTo(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Write encodes v as JSON to the given path. An empty path or "-" writes
// to stdout. Paths ending in .xz are compressed transparently.
func Write(path string, v any, pretty bool) error {
	if path == "" || path == "-" {
		return WriteTo(os.Stdout, v, pretty)
	}

	f, err := os.Create(path) // #nosec G304 - User-specified output path, intended to be written
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.HasSuffix(path, ".xz") {
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		if err := WriteTo(xw, v, pretty); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		// Close flushes the compressed stream; its error matters.
		if err := xw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("failed to finish xz stream: %w", err)
		}
		return f.Close()
	}

	if err := WriteTo(f, v, pretty); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
