package cgen

import (
	"fmt"
	"strings"

	"github.com/reprompi/benchgen/internal/codegen/meta"
	"github.com/reprompi/benchgen/internal/codegen/scanner"
)

// Names of the variables shared between generated blocks.
const (
	OptsVar      = "reprompib_opts"
	JobVar       = "reprompib_job"
	NRepIndexVar = "reprompib_nrep_index"
	SyncFVar     = "reprompib_sync_f"
)

// Synthesize returns the C block that follows the directive's tag line.
// Output depends only on the directive.
func Synthesize(d meta.Directive) (string, error) {
	indent := d.Pos().Indent
	switch d := d.(type) {
	case meta.Statement:
		return statement(d.Keyword, indent)
	case meta.Timestamp:
		switch d.Keyword {
		case scanner.KeywordInitializeTimestamps:
			return initTimestampArray(d.Array, indent), nil
		case scanner.KeywordMeasureTimestamp:
			return measureTimestamp(d.Array, indent), nil
		}
	case meta.Declare:
		return declareVariables(d.Context, indent), nil
	case meta.Cleanup:
		return cleanupVariables(d.Context, indent), nil
	case meta.PrintResult:
		return printOutput(d.Config, indent)
	case meta.Assign:
		switch d.Keyword {
		case scanner.KeywordSet:
			return setVariables(d.Params, indent), nil
		case scanner.KeywordGlobal:
			return addToDictionary(d.Params, indent), nil
		}
	}
	return "", fmt.Errorf("no generator for %T %q", d, d.Kind())
}

func statement(kw scanner.Keyword, indent int) (string, error) {
	switch kw {
	case scanner.KeywordInitSync:
		return initSync(indent), nil
	case scanner.KeywordStartSync:
		return formatCode(indent, SyncFVar+".start_sync();"), nil
	case scanner.KeywordStopSync:
		return formatCode(indent, SyncFVar+".stop_sync();"), nil
	case scanner.KeywordCleanupSync:
		return cleanupSync(indent), nil
	case scanner.KeywordInitializeBenchmark:
		return formatCode(indent,
			fmt.Sprintf("reprompib_initialize_benchmark(argc, argv, &%s, &%s);", SyncFVar, OptsVar)), nil
	case scanner.KeywordCleanupBenchmark:
		return cleanupSync(indent) +
			formatCode(indent, fmt.Sprintf("reprompib_cleanup_benchmark(%s);", OptsVar)), nil
	case scanner.KeywordStartMeasurementLoop:
		return initSync(indent) + formatCode(indent,
			fmt.Sprintf("for (%[1]s = 0; %[1]s < %[2]s.n_rep; %[1]s++) {", NRepIndexVar, OptsVar)), nil
	case scanner.KeywordStopMeasurementLoop:
		return formatCode(indent, "}"), nil
	case scanner.KeywordAddIncludes:
		return formatCode(indent,
			"#include <string.h>",
			`#include "reprompi_bench/sync/synchronization.h"`,
			`#include "reprompi_bench/benchmark_lib/reproMPIbenchmark.h"`,
			`#include "reprompi_bench/utils/keyvalue_store.h"`,
		), nil
	}
	return "", fmt.Errorf("keyword %q takes arguments", kw)
}

func initSync(indent int) string {
	return formatCode(indent, SyncFVar+".sync_clocks();", SyncFVar+".init_sync();")
}

func cleanupSync(indent int) string {
	return formatCode(indent, SyncFVar+".clean_sync_module();")
}

func initTimestampArray(name string, indent int) string {
	return formatCode(indent, fmt.Sprintf("%s = (double*) calloc(%s.n_rep, sizeof(double));", name, OptsVar))
}

func measureTimestamp(name string, indent int) string {
	return formatCode(indent, fmt.Sprintf("%s[%s] = %s.get_time();", name, NRepIndexVar, SyncFVar))
}

// declareVariables defines the shared benchmark state in the file that
// initializes the benchmark, and references it everywhere else.
func declareVariables(ctx meta.Context, indent int) string {
	if ctx.MainFile {
		return formatCode(indent,
			fmt.Sprintf("reprompib_sync_functions_t %s;", SyncFVar),
			fmt.Sprintf("reprompib_options_t %s;", OptsVar),
		)
	}
	lines := []string{
		fmt.Sprintf("extern reprompib_sync_functions_t %s;", SyncFVar),
		fmt.Sprintf("extern reprompib_options_t %s;", OptsVar),
		fmt.Sprintf("int %s;", NRepIndexVar),
	}
	for _, ts := range ctx.TimestampArrays {
		lines = append(lines, fmt.Sprintf("double* %s = NULL;", ts))
	}
	for _, s := range ctx.StringVars {
		lines = append(lines, fmt.Sprintf("char* %s = NULL;", s))
	}
	return formatCode(indent, lines...)
}

func cleanupVariables(ctx meta.Context, indent int) string {
	return cleanupArrays(ctx.TimestampArrays, indent) + cleanupArrays(ctx.StringVars, indent) + "\n"
}

func cleanupArrays(names []string, indent int) string {
	lines := make([]string, 0, 2*len(names))
	for _, n := range names {
		lines = append(lines, fmt.Sprintf("free(%s);", n))
	}
	for _, n := range names {
		lines = append(lines, fmt.Sprintf("%s = NULL;", n))
	}
	return formatCode(indent, lines...)
}

func setVariables(params []scanner.Param, indent int) string {
	lines := make([]string, 0, len(params))
	for _, p := range params {
		lines = append(lines, fmt.Sprintf("%s = strdup(%s);", p.Key, p.Value))
	}
	return formatCode(indent, lines...)
}

func addToDictionary(params []scanner.Param, indent int) string {
	lines := make([]string, 0, len(params))
	for _, p := range params {
		lines = append(lines, fmt.Sprintf("reprompib_add_element_to_dict(\"%s\", %s);", p.Key, p.Value))
	}
	return formatCode(indent, lines...)
}

// formatCode prefixes every line with indent spaces and terminates it.
func formatCode(indent int, lines ...string) string {
	pad := strings.Repeat(" ", indent)
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(pad)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
