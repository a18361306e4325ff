package generator

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ManifestName is the digest file written next to CMakeLists.txt.
const ManifestName = "benchgen.sum"

// ManifestEntry is one generated file and its BLAKE2b-256 digest.
type ManifestEntry struct {
	Path string
	Sum  string
}

func digestFile(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("digest %s: %w", p, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteManifest writes entries sorted by path, one "<hex digest>  <path>" per line.
func WriteManifest(p string, entries []ManifestEntry) error {
	sorted := append([]ManifestEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var sb strings.Builder
	for _, e := range sorted {
		fmt.Fprintf(&sb, "%s  %s\n", e.Sum, e.Path)
	}
	if err := os.WriteFile(p, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// changedEntries returns the paths in cur that are new or differ from prev.
func changedEntries(prev, cur []ManifestEntry) []string {
	old := make(map[string]string, len(prev))
	for _, e := range prev {
		old[e.Path] = e.Sum
	}
	var changed []string
	for _, e := range cur {
		if old[e.Path] != e.Sum {
			changed = append(changed, e.Path)
		}
	}
	sort.Strings(changed)
	return changed
}

// ReadManifest parses a file written by WriteManifest.
func ReadManifest(p string) ([]ManifestEntry, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []ManifestEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		sum, rel, ok := strings.Cut(sc.Text(), "  ")
		if !ok {
			return nil, fmt.Errorf("malformed manifest line %q", sc.Text())
		}
		entries = append(entries, ManifestEntry{Path: rel, Sum: sum})
	}
	return entries, sc.Err()
}
