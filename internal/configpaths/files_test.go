package configpaths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	tests := []struct {
		user  string
		check func(j, y, tm []string) string
	}{
		{"my.yaml", func(_, y, _ []string) string { return y[0] }},
		{"my.yml", func(_, y, _ []string) string { return y[0] }},
		{"my.toml", func(_, _, tm []string) string { return tm[0] }},
		{"my.json", func(j, _, _ []string) string { return j[0] }},
		{"my.conf", func(j, _, _ []string) string { return j[0] }},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			j, y, tm := ConfigCandidatePaths(tt.user)
			assert.Equal(t, tt.user, tt.check(j, y, tm))
		})
	}
}

func TestConfigCandidatePathsDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG lookup is unix-only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	wd, err := os.Getwd()
	require.NoError(t, err)

	j, y, tm := ConfigCandidatePaths("")
	assert.Equal(t, filepath.Join(wd, "benchgen.json"), j[0])
	assert.Contains(t, y, filepath.Join(xdg, "benchgen", "config.yaml"))
	assert.Contains(t, tm, "/etc/benchgen/config.toml")

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "benchgen"), dir)
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "config.json")
	require.NoError(t, EnsureDir(p))
	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
