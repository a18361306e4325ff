package meta

import (
	"fmt"
	"log/slog"

	"github.com/reprompi/benchgen/internal/codegen/scanner"
)

// ResultType selects how runtimes are reported.
type ResultType string

const (
	ResultAll    ResultType = "all"
	ResultReduce ResultType = "reduce"
)

// ReduceOp aggregates runtimes across repetitions.
type ReduceOp string

const (
	OpMin  ReduceOp = "min"
	OpMax  ReduceOp = "max"
	OpMean ReduceOp = "mean"
)

// Reserved print_result parameter names.
const (
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldName      = "name"
	FieldType      = "type"
	FieldOp        = "op"
)

// OutputConfig is a validated print_result tag.
type OutputConfig struct {
	StartTime  string          `json:"startTime" yaml:"startTime" toml:"startTime"`
	EndTime    string          `json:"endTime" yaml:"endTime" toml:"endTime"`
	Name       string          `json:"name" yaml:"name" toml:"name"`
	Type       ResultType      `json:"type" yaml:"type" toml:"type"`
	Op         ReduceOp        `json:"op" yaml:"op" toml:"op"`
	StringVars []scanner.Param `json:"stringVars" yaml:"stringVars" toml:"stringVars"`
	IntVars    []scanner.Param `json:"intVars" yaml:"intVars" toml:"intVars"`
}

// ResolveOutput validates a print_result tag against the file context.
// Parameters other than the reserved ones are classified as string variables
// when their value names a set variable, and as int variables otherwise.
func ResolveOutput(path string, tag scanner.Tag, ctx Context, logger *slog.Logger) (OutputConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var cfg OutputConfig
	var op string
	for _, p := range tag.Params {
		switch p.Key {
		case FieldStartTime:
			cfg.StartTime = p.Value
		case FieldEndTime:
			cfg.EndTime = p.Value
		case FieldName:
			cfg.Name = p.Value
		case FieldType:
			cfg.Type = ResultType(p.Value)
		case FieldOp:
			op = p.Value
		default:
			if ctx.IsString(p.Value) {
				cfg.StringVars = append(cfg.StringVars, p)
			} else {
				cfg.IntVars = append(cfg.IntVars, p)
			}
		}
	}

	for _, req := range []struct {
		field string
		value string
	}{
		{FieldStartTime, cfg.StartTime},
		{FieldEndTime, cfg.EndTime},
		{FieldName, cfg.Name},
		{FieldType, string(cfg.Type)},
	} {
		if req.value == "" {
			return OutputConfig{}, &MissingFieldError{Path: path, Line: tag.LineNo, Field: req.field}
		}
	}

	switch cfg.Type {
	case ResultAll:
		cfg.Op = ""
	case ResultReduce:
		switch ReduceOp(op) {
		case OpMin, OpMax, OpMean:
			cfg.Op = ReduceOp(op)
		case "":
			logger.Warn("Incomplete print_result specification, using op=max",
				"file", path, "line", tag.LineNo, "name", cfg.Name)
			cfg.Op = OpMax
		default:
			return OutputConfig{}, &InvalidValueError{
				Path: path, Line: tag.LineNo, Field: FieldOp, Value: op,
				Allowed: []string{string(OpMin), string(OpMax), string(OpMean)},
			}
		}
	default:
		return OutputConfig{}, &InvalidValueError{
			Path: path, Line: tag.LineNo, Field: FieldType, Value: string(cfg.Type),
			Allowed: []string{string(ResultAll), string(ResultReduce)},
		}
	}
	return cfg, nil
}

// Resolve aggregates the file context and turns every tag into a directive.
// The first fatal error aborts the whole file.
func Resolve(path string, tags []scanner.Tag, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &File{
		Path:       path,
		Tags:       tags,
		Context:    Aggregate(tags),
		Directives: make([]Directive, 0, len(tags)),
	}

	for _, tag := range tags {
		d, err := resolveTag(path, tag, f.Context, logger)
		if err != nil {
			return nil, err
		}
		f.Directives = append(f.Directives, d)
	}
	logger.Debug("Resolved annotations",
		"file", path,
		"tags", len(tags),
		"timestampArrays", len(f.Context.TimestampArrays),
		"stringVars", len(f.Context.StringVars),
		"main", f.Context.MainFile)
	return f, nil
}

func resolveTag(path string, tag scanner.Tag, ctx Context, logger *slog.Logger) (Directive, error) {
	at := Anchor{LineNo: tag.LineNo, Indent: tag.Indent}

	switch tag.Keyword {
	case scanner.KeywordPrintResult:
		cfg, err := ResolveOutput(path, tag, ctx, logger)
		if err != nil {
			return nil, err
		}
		return PrintResult{Anchor: at, Config: cfg}, nil

	case scanner.KeywordInitializeTimestamps, scanner.KeywordMeasureTimestamp:
		names := tag.EmptyKeys()
		if len(names) == 0 {
			return nil, &MissingTimestampError{Path: path, Line: tag.LineNo, Keyword: tag.Keyword, Source: tag.Line}
		}
		return Timestamp{Anchor: at, Keyword: tag.Keyword, Array: names[0]}, nil

	case scanner.KeywordDeclareVariables:
		return Declare{Anchor: at, Context: ctx}, nil

	case scanner.KeywordCleanupVariables:
		return Cleanup{Anchor: at, Context: ctx}, nil

	case scanner.KeywordSet, scanner.KeywordGlobal:
		return Assign{Anchor: at, Keyword: tag.Keyword, Params: tag.Params}, nil

	case scanner.KeywordInitSync,
		scanner.KeywordStartSync,
		scanner.KeywordStopSync,
		scanner.KeywordInitializeBenchmark,
		scanner.KeywordCleanupBenchmark,
		scanner.KeywordCleanupSync,
		scanner.KeywordStartMeasurementLoop,
		scanner.KeywordStopMeasurementLoop,
		scanner.KeywordAddIncludes:
		return Statement{Anchor: at, Keyword: tag.Keyword}, nil
	}
	return nil, fmt.Errorf("%s:%d: unhandled keyword %q: %w", path, tag.LineNo, tag.Keyword, ErrInvalidTag)
}
