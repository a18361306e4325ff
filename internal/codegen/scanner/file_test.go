package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `#include <stdio.h>
//@ add_includes
//@ declare_variables

int main(int argc, char *argv[])
{
    //@ initialize_bench
    //@ initialize_timestamps t1
    //@ foobar x=1
    //@ global "bad"
    //@ start_measurement_loop
    //@ measure_timestamp t1
    //@stop_measurement_loop
    return 0;
}`

type recordingTracer struct {
	tags []Tag
}

func (r *recordingTracer) Trace(_ string, tag Tag) { r.tags = append(r.tags, tag) }

func TestScan(t *testing.T) {
	tracer := &recordingTracer{}
	tags, err := Scan("sample.c", strings.NewReader(sample), Options{Tracer: tracer})
	require.NoError(t, err)

	var got []Keyword
	var lines []int
	for _, tag := range tags {
		got = append(got, tag.Keyword)
		lines = append(lines, tag.LineNo)
	}
	assert.Equal(t, []Keyword{
		KeywordAddIncludes,
		KeywordDeclareVariables,
		KeywordInitializeBenchmark,
		KeywordInitializeTimestamps,
		KeywordStartMeasurementLoop,
		KeywordMeasureTimestamp,
		KeywordStopMeasurementLoop,
	}, got)
	assert.Equal(t, []int{2, 3, 7, 8, 11, 12, 13}, lines)
	assert.Equal(t, tags, tracer.tags)
}

func TestScanLastLineWithoutNewline(t *testing.T) {
	tags, err := Scan("x.c", strings.NewReader("int a;\n  //@ cleanup_sync"), Options{})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 2, tags[0].LineNo)
	assert.Equal(t, 2, tags[0].Indent)
}

func TestScanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.c")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	tags, err := ScanFile(path, Options{})
	require.NoError(t, err)
	assert.Len(t, tags, 7)

	_, err = ScanFile(filepath.Join(t.TempDir(), "missing.c"), Options{})
	assert.Error(t, err)
}
