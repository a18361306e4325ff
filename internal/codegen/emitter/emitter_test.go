package emitter_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reprompi/benchgen/internal/codegen/emitter"
	cgen "github.com/reprompi/benchgen/internal/codegen/generator/c"
	"github.com/reprompi/benchgen/internal/codegen/meta"
	"github.com/reprompi/benchgen/internal/codegen/scanner"
)

func resolve(t *testing.T, src string) *meta.File {
	t.Helper()
	tags, err := scanner.Scan("test.c", strings.NewReader(src), scanner.Options{})
	require.NoError(t, err)
	f, err := meta.Resolve("test.c", tags, nil)
	require.NoError(t, err)
	return f
}

func emit(t *testing.T, src string) string {
	t.Helper()
	f := resolve(t, src)
	var out strings.Builder
	require.NoError(t, emitter.Emit(strings.NewReader(src), &out, f.Directives, cgen.Synthesize))
	return out.String()
}

func TestEmitTimestamps(t *testing.T) {
	src := "    //@ initialize_timestamps t1\n" +
		"    work();\n" +
		"        //@ measure_timestamp t1\n"

	want := "    //@ initialize_timestamps t1\n" +
		"    t1 = (double*) calloc(reprompib_opts.n_rep, sizeof(double));\n" +
		"    work();\n" +
		"        //@ measure_timestamp t1\n" +
		"        t1[reprompib_nrep_index] = reprompib_sync_f.get_time();\n"

	if diff := cmp.Diff(want, emit(t, src)); diff != "" {
		t.Errorf("Emit() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitPassesThroughUnknownKeyword(t *testing.T) {
	src := "int a;\r\n//@ foobar x=1\n  // plain comment\nint b;"
	assert.Equal(t, src, emit(t, src))
}

func TestEmitLastLineWithoutNewline(t *testing.T) {
	got := emit(t, "int a;\n//@ start_sync")
	assert.Equal(t, "int a;\n//@ start_sync\nreprompib_sync_f.start_sync();\n", got)
}

func TestEmitIsIdempotent(t *testing.T) {
	src := `//@ add_includes
//@ declare_variables
void f() {
    //@ initialize_timestamps t1
    //@ initialize_timestamps t2
    //@ set name=funcs[i]
    //@ start_measurement_loop
    //@ measure_timestamp t1
    //@ measure_timestamp t2
    //@ stop_measurement_loop
    //@ print_result name=rt start_time=t1 end_time=t2 type=reduce label=name count=i
    //@ cleanup_variables
}
`
	assert.Equal(t, emit(t, src), emit(t, src))
}

func TestEmitSynthError(t *testing.T) {
	f := resolve(t, "//@ start_sync\n")
	boom := errors.New("boom")
	err := emitter.Emit(strings.NewReader("//@ start_sync\n"), &strings.Builder{}, f.Directives,
		func(meta.Directive) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestEmitSourceShorterThanDirectives(t *testing.T) {
	d := []meta.Directive{meta.Statement{Anchor: meta.Anchor{LineNo: 5}, Keyword: scanner.KeywordStartSync}}
	err := emitter.Emit(strings.NewReader("a\nb\n"), &strings.Builder{}, d, cgen.Synthesize)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.c")
	dst := filepath.Join(dir, "out", "in.c")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))

	content := "//@ stop_sync\n"
	require.NoError(t, os.WriteFile(src, []byte(content), 0o644))

	f := resolve(t, content)
	require.NoError(t, emitter.WriteFile(src, dst, f.Directives, cgen.Synthesize))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "//@ stop_sync\nreprompib_sync_f.stop_sync();\n", string(got))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not survive")
}

func TestWriteFileFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.c")
	dst := filepath.Join(dir, "out.c")
	require.NoError(t, os.WriteFile(src, []byte("//@ stop_sync\n"), 0o644))

	f := resolve(t, "//@ stop_sync\n")
	err := emitter.WriteFile(src, dst, f.Directives, func(meta.Directive) (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
