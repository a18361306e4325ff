package meta

import "github.com/reprompi/benchgen/internal/codegen/scanner"

// File holds everything resolved for one annotated source file.
// Shared between the generator orchestrator, the emitter and the scan command.
type File struct {
	Path       string
	Tags       []scanner.Tag
	Context    Context
	Directives []Directive // one per tag, same order
}

// Context is the per-file aggregation computed before any tag is resolved.
// It is read-only once built.
type Context struct {
	TimestampArrays []string `json:"timestampArrays" yaml:"timestampArrays" toml:"timestampArrays"`
	StringVars      []string `json:"stringVars" yaml:"stringVars" toml:"stringVars"`
	MainFile        bool     `json:"mainFile" yaml:"mainFile" toml:"mainFile"` // file initializes the benchmark
}

// IsString reports whether name was declared by a set tag.
func (c Context) IsString(name string) bool {
	for _, s := range c.StringVars {
		if s == name {
			return true
		}
	}
	return false
}

// Aggregate walks the whole tag sequence once. Tags may reference names
// declared anywhere in the file, so this must run before resolution.
func Aggregate(tags []scanner.Tag) Context {
	var ctx Context
	seenTS := map[string]bool{}
	seenStr := map[string]bool{}
	for _, tag := range tags {
		switch tag.Keyword {
		case scanner.KeywordInitializeTimestamps:
			for _, name := range tag.EmptyKeys() {
				if !seenTS[name] {
					seenTS[name] = true
					ctx.TimestampArrays = append(ctx.TimestampArrays, name)
				}
			}
		case scanner.KeywordSet:
			for _, p := range tag.Params {
				if !seenStr[p.Key] {
					seenStr[p.Key] = true
					ctx.StringVars = append(ctx.StringVars, p.Key)
				}
			}
		case scanner.KeywordInitializeBenchmark:
			ctx.MainFile = true
		}
	}
	return ctx
}
