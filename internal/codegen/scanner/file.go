package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Tracer receives every tag recognised during a scan.
type Tracer interface {
	Trace(path string, tag Tag)
}

// Options tune a scan. The zero value scans silently.
type Options struct {
	Logger *slog.Logger
	Tracer Tracer
}

// Scan reads src line by line and returns the recognised tags in line order.
// path is only used for diagnostics.
func Scan(path string, src io.Reader, opts Options) ([]Tag, error) {
	br := bufio.NewReader(src)
	var tags []Tag
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			tag, ok, perr := ParseLine(line, lineNo)
			var malformed *MalformedTagError
			switch {
			case errors.As(perr, &malformed):
				if opts.Logger != nil {
					opts.Logger.Debug("Ignoring malformed tag", "file", path, "line", lineNo, "error", perr)
				}
			case ok:
				if opts.Tracer != nil {
					opts.Tracer.Trace(path, tag)
				}
				tags = append(tags, tag)
			}
		}
		if err == io.EOF {
			return tags, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
}

// ScanFile opens path and scans it.
func ScanFile(path string, opts Options) ([]Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Scan(path, f, opts)
}
