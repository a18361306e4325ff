package cmd

import (
	"bufio"
	"log/slog"
	"os"

	"github.com/reprompi/benchgen/internal/codegen/generator"
	"github.com/reprompi/benchgen/internal/log"
)

type Annotate struct {
	File   string `arg:"" help:"Annotated source file" type:"existingfile"`
	Output string `help:"Destination file (defaults to stdout)" short:"o" type:"path"`
}

// Run is called by Kong when the annotate command is executed.
func (a *Annotate) Run(logger *slog.Logger, tracer *log.TagTracer) error {
	gen := generator.New(generator.Config{}, logger)
	gen.SetTracer(tracer)

	if a.Output != "" {
		if err := gen.GenerateFile(a.File, a.Output); err != nil {
			return err
		}
		logger.Info("Generated benchmark code", "file", a.File, "output", a.Output)
		return nil
	}

	w := bufio.NewWriter(os.Stdout)
	if err := gen.Annotate(a.File, w); err != nil {
		return err
	}
	return w.Flush()
}
