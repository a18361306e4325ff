package cgen

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCMake(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := GenerateCMake(logger, dir, "bench", "1.2.3", []string{"test.c", "measurement_functions/comm_patterns.c"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "CMakeLists.txt"))
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "# Generated by benchgen 1.2.3\n"))
	assert.Contains(t, text, "SET(SRC_DIR bench)\n")
	assert.Contains(t, text, "add_executable(reprompibench\n"+
		"${SRC_DIR}/measurement_functions/comm_patterns.c\n"+
		"${SRC_DIR}/test.c\n"+
		")\n")
	assert.Contains(t, text, "TARGET_LINK_LIBRARIES(reprompibench ")
}
