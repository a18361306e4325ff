package meta

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reprompi/benchgen/internal/codegen/scanner"
)

func scan(t *testing.T, src string) []scanner.Tag {
	t.Helper()
	tags, err := scanner.Scan("test.c", strings.NewReader(src), scanner.Options{})
	require.NoError(t, err)
	return tags
}

func bufLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestAggregate(t *testing.T) {
	tags := scan(t, `//@ print_result name=r start_time=t1 end_time=t2 type=all
//@ initialize_timestamps t1
//@ initialize_timestamps t2 extra=1
//@ initialize_timestamps t1
//@ set testname=funcs[i] other=x
//@ set testname=funcs[j]
//@ initialize_bench
`)
	ctx := Aggregate(tags)
	assert.Equal(t, []string{"t1", "t2"}, ctx.TimestampArrays)
	assert.Equal(t, []string{"testname", "other"}, ctx.StringVars)
	assert.True(t, ctx.MainFile)
	assert.True(t, ctx.IsString("other"))
	assert.False(t, ctx.IsString("t1"))

	assert.False(t, Aggregate(scan(t, "//@ declare_variables\n")).MainFile)
}

func TestResolveOutputClassification(t *testing.T) {
	// The set tag comes after the print tag; aggregation covers the whole file.
	tags := scan(t, `//@ print_result name=runtime start_time=t1 end_time=t2 type=all op=min y=x count=i n=42
//@ set x=meas_functions[i]
`)
	logger, _ := bufLogger()
	f, err := Resolve("test.c", tags, logger)
	require.NoError(t, err)
	require.Len(t, f.Directives, 2)

	pr, ok := f.Directives[0].(PrintResult)
	require.True(t, ok)
	assert.Equal(t, OutputConfig{
		StartTime:  "t1",
		EndTime:    "t2",
		Name:       "runtime",
		Type:       ResultAll,
		Op:         "",
		StringVars: []scanner.Param{{Key: "y", Value: "x"}},
		IntVars:    []scanner.Param{{Key: "count", Value: "i"}, {Key: "n", Value: "42"}},
	}, pr.Config)
	assert.Equal(t, Anchor{LineNo: 1, Indent: 0}, pr.Pos())
}

func TestResolveOutputUndeclaredIsInt(t *testing.T) {
	tags := scan(t, "//@ print_result name=r start_time=a end_time=b type=all y=z\n")
	cfg, err := ResolveOutput("test.c", tags[0], Aggregate(tags), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.StringVars)
	assert.Equal(t, []scanner.Param{{Key: "y", Value: "z"}}, cfg.IntVars)
}

func TestResolveOutputReduceDefaultsToMax(t *testing.T) {
	tags := scan(t, "//@ print_result name=r start_time=a end_time=b type=reduce\n")
	logger, buf := bufLogger()
	cfg, err := ResolveOutput("test.c", tags[0], Context{}, logger)
	require.NoError(t, err)
	assert.Equal(t, OpMax, cfg.Op)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "op=max")
}

func TestResolveOutputErrors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"missing name", "//@ print_result start_time=a end_time=b type=all", FieldName},
		{"missing start", "//@ print_result name=r end_time=b type=all", FieldStartTime},
		{"missing end", "//@ print_result name=r start_time=a type=all", FieldEndTime},
		{"missing type", "//@ print_result name=r start_time=a end_time=b", FieldType},
		{"empty name", "//@ print_result name= start_time=a end_time=b type=all", FieldName},
		{"bad type", "//@ print_result name=r start_time=a end_time=b type=sum", FieldType},
		{"bad op", "//@ print_result name=r start_time=a end_time=b type=reduce op=median", FieldOp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := scan(t, "int x;\n"+tt.line+"\n")
			_, err := Resolve("bench.c", tags, slog.Default())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTag))
			assert.Contains(t, err.Error(), "bench.c:2")

			var missing *MissingFieldError
			var invalid *InvalidValueError
			switch {
			case errors.As(err, &missing):
				assert.Equal(t, tt.field, missing.Field)
			case errors.As(err, &invalid):
				assert.Equal(t, tt.field, invalid.Field)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestResolveTimestampDirectives(t *testing.T) {
	tags := scan(t, `    //@ initialize_timestamps t1
        //@ measure_timestamp t1
`)
	f, err := Resolve("test.c", tags, nil)
	require.NoError(t, err)
	assert.Equal(t, []Directive{
		Timestamp{Anchor: Anchor{LineNo: 1, Indent: 4}, Keyword: scanner.KeywordInitializeTimestamps, Array: "t1"},
		Timestamp{Anchor: Anchor{LineNo: 2, Indent: 8}, Keyword: scanner.KeywordMeasureTimestamp, Array: "t1"},
	}, f.Directives)
}

func TestResolveTimestampWithoutName(t *testing.T) {
	for _, line := range []string{"//@ measure_timestamp", "//@ initialize_timestamps name=t1"} {
		_, err := Resolve("test.c", scan(t, line+"\n"), nil)
		var missing *MissingTimestampError
		require.True(t, errors.As(err, &missing), line)
		assert.Equal(t, 1, missing.Line)
		assert.True(t, errors.Is(err, ErrInvalidTag))
	}
}

func TestResolveDirectiveKinds(t *testing.T) {
	tags := scan(t, `//@ add_includes
//@ declare_variables
//@ initialize_timestamps t1
//@ set s=v
//@ global g=argv[0]
//@ start_measurement_loop
//@ cleanup_variables
`)
	f, err := Resolve("test.c", tags, nil)
	require.NoError(t, err)
	require.Len(t, f.Directives, len(tags))

	for i, d := range f.Directives {
		assert.Equal(t, tags[i].Keyword, d.Kind())
		assert.Equal(t, tags[i].LineNo, d.Pos().LineNo)
	}

	decl, ok := f.Directives[1].(Declare)
	require.True(t, ok)
	assert.Equal(t, []string{"t1"}, decl.Context.TimestampArrays)
	assert.Equal(t, []string{"s"}, decl.Context.StringVars)
	assert.False(t, decl.Context.MainFile)

	assign, ok := f.Directives[4].(Assign)
	require.True(t, ok)
	assert.Equal(t, []scanner.Param{{Key: "g", Value: "argv[0]"}}, assign.Params)

	_, ok = f.Directives[5].(Statement)
	assert.True(t, ok)
}
