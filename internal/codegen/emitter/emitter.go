// Package emitter splices generated blocks into a copy of an annotated source.
//
// Every input line is copied verbatim. After the line a directive was
// resolved from, the synthesized block for that directive is written.
package emitter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reprompi/benchgen/internal/codegen/meta"
)

// SynthFunc turns a directive into the block written after its line.
type SynthFunc func(meta.Directive) (string, error)

// Emit streams src to dst and inserts one block per directive. Directives
// must be ordered by strictly increasing line number.
func Emit(src io.Reader, dst io.Writer, directives []meta.Directive, synth SynthFunc) error {
	br := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	next := 0
	lineNo := 0

	for {
		line, rerr := br.ReadString('\n')
		if line != "" {
			lineNo++
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
			if next < len(directives) && directives[next].Pos().LineNo == lineNo {
				block, err := synth(directives[next])
				if err != nil {
					return fmt.Errorf("line %d: %w", lineNo, err)
				}
				if line[len(line)-1] != '\n' {
					if err := bw.WriteByte('\n'); err != nil {
						return err
					}
				}
				if _, err := bw.WriteString(block); err != nil {
					return err
				}
				next++
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	if next != len(directives) {
		return fmt.Errorf("source ended at line %d before directive for line %d", lineNo, directives[next].Pos().LineNo)
	}
	return bw.Flush()
}

// WriteFile emits srcPath into dstPath. The output is written to a temporary
// file in the destination directory and renamed into place, so a failure
// never leaves a partial dstPath behind.
func WriteFile(srcPath, dstPath string, directives []meta.Directive, synth SynthFunc) (err error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer in.Close()

	mode := os.FileMode(0o644)
	if st, serr := in.Stat(); serr == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), "."+filepath.Base(dstPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", dstPath, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Emit(in, tmp, directives, synth); err != nil {
		return fmt.Errorf("emit %s: %w", srcPath, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), dstPath); err != nil {
		return fmt.Errorf("failed to publish %s: %w", dstPath, err)
	}
	return nil
}
