package generator

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ReadSourceList reads the list of files to process, one path per line,
// relative to the input directory. Blank lines and lines starting with '#'
// are skipped.
func ReadSourceList(listPath string) (map[string]bool, error) {
	f, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sources list: %w", err)
	}
	defer f.Close()

	out := map[string]bool{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out[path.Clean(filepath.ToSlash(line))] = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sources list: %w", err)
	}
	return out, nil
}
