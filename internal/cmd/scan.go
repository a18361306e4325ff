package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/reprompi/benchgen/internal/codegen/generator"
	"github.com/reprompi/benchgen/internal/codegen/meta"
	"github.com/reprompi/benchgen/internal/codegen/scanner"
)

type Scan struct {
	File   string `arg:"" help:"Annotated source file" type:"existingfile"`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
}

type scanReport struct {
	File       string          `json:"file" yaml:"file" toml:"file"`
	Context    meta.Context    `json:"context" yaml:"context" toml:"context"`
	Directives []directiveView `json:"directives" yaml:"directives" toml:"directives"`
}

type directiveView struct {
	Line    int                `json:"line" yaml:"line" toml:"line"`
	Indent  int                `json:"indent" yaml:"indent" toml:"indent"`
	Keyword string             `json:"keyword" yaml:"keyword" toml:"keyword"`
	Source  string             `json:"source" yaml:"source" toml:"source"`
	Array   string             `json:"array,omitempty" yaml:"array,omitempty" toml:"array,omitempty"`
	Params  []scanner.Param    `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Output  *meta.OutputConfig `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
}

func newScanReport(f *meta.File) scanReport {
	r := scanReport{File: f.Path, Context: f.Context}
	for i, d := range f.Directives {
		v := directiveView{
			Line:    d.Pos().LineNo,
			Indent:  d.Pos().Indent,
			Keyword: string(d.Kind()),
			Source:  f.Tags[i].Line,
		}
		switch d := d.(type) {
		case meta.Timestamp:
			v.Array = d.Array
		case meta.Assign:
			v.Params = d.Params
		case meta.PrintResult:
			cfg := d.Config
			v.Output = &cfg
		}
		r.Directives = append(r.Directives, v)
	}
	return r
}

// Run is called by Kong when the scan command is executed.
func (s *Scan) Run(logger *slog.Logger) error {
	f, err := generator.New(generator.Config{}, logger).Load(s.File)
	if err != nil {
		return err
	}
	return writeReport(os.Stdout, s.Format, newScanReport(f))
}

func writeReport(w io.Writer, format string, r scanReport) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(r)
	case "toml":
		data, err = toml.Marshal(r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
