package meta

import "github.com/reprompi/benchgen/internal/codegen/scanner"

// Anchor places a generated block right after source line LineNo.
type Anchor struct {
	LineNo int `json:"lineNo" yaml:"lineNo" toml:"lineNo"`
	Indent int `json:"indent" yaml:"indent" toml:"indent"`
}

// Directive is a resolved tag. The set of implementations is closed:
// Statement, Timestamp, Declare, Cleanup, PrintResult and Assign.
type Directive interface {
	Pos() Anchor
	Kind() scanner.Keyword
	directive()
}

// Statement covers keywords that need nothing beyond the indent:
// sync lifecycle calls, loop start/stop, includes, benchmark init/cleanup.
type Statement struct {
	Anchor
	Keyword scanner.Keyword
}

// Timestamp declares or fills the named timestamp array.
type Timestamp struct {
	Anchor
	Keyword scanner.Keyword
	Array   string
}

// Declare emits the variable declaration block.
type Declare struct {
	Anchor
	Context Context
}

// Cleanup releases every timestamp array and string variable.
type Cleanup struct {
	Anchor
	Context Context
}

// PrintResult prints one result record.
type PrintResult struct {
	Anchor
	Config OutputConfig
}

// Assign carries the ordered key/value pairs of set and global tags.
type Assign struct {
	Anchor
	Keyword scanner.Keyword
	Params  []scanner.Param
}

func (d Statement) Pos() Anchor   { return d.Anchor }
func (d Timestamp) Pos() Anchor   { return d.Anchor }
func (d Declare) Pos() Anchor     { return d.Anchor }
func (d Cleanup) Pos() Anchor     { return d.Anchor }
func (d PrintResult) Pos() Anchor { return d.Anchor }
func (d Assign) Pos() Anchor      { return d.Anchor }

func (d Statement) Kind() scanner.Keyword   { return d.Keyword }
func (d Timestamp) Kind() scanner.Keyword   { return d.Keyword }
func (d Declare) Kind() scanner.Keyword     { return scanner.KeywordDeclareVariables }
func (d Cleanup) Kind() scanner.Keyword     { return scanner.KeywordCleanupVariables }
func (d PrintResult) Kind() scanner.Keyword { return scanner.KeywordPrintResult }
func (d Assign) Kind() scanner.Keyword      { return d.Keyword }

func (Statement) directive()   {}
func (Timestamp) directive()   {}
func (Declare) directive()     {}
func (Cleanup) directive()     {}
func (PrintResult) directive() {}
func (Assign) directive()      {}
