package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/reprompi/benchgen/internal/codegen/generator"
	"github.com/reprompi/benchgen/internal/log"
)

type Generate struct {
	InputDir  string `help:"Directory of annotated input files" short:"d" default:"." type:"existingdir" env:"BENCHGEN_INPUT_DIR"`
	Sources   string `help:"File listing the sources to process, one path per line relative to the input directory" short:"l" required:"" type:"existingfile" env:"BENCHGEN_SOURCES"`
	OutputDir string `help:"Output directory" short:"o" required:"" type:"path" env:"BENCHGEN_OUTPUT_DIR"`
	HelperDir string `help:"Directory holding platform_files/ and cmake_modules/ to copy into the output" type:"path" env:"BENCHGEN_HELPER_DIR"`
	Workers   int    `help:"Files processed concurrently (0 = number of CPUs)" default:"0" env:"BENCHGEN_WORKERS"`
	Manifest  bool   `help:"Write a BLAKE2b digest manifest of the generated files" env:"BENCHGEN_MANIFEST"`
}

func (c *Generate) config() generator.Config {
	return generator.Config{
		InputDir:    c.InputDir,
		OutputDir:   c.OutputDir,
		SourcesFile: c.Sources,
		HelperDir:   c.HelperDir,
		Workers:     c.Workers,
		Manifest:    c.Manifest,
	}
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger, tracer *log.TagTracer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting benchmark code generation", "input", c.InputDir, "output", c.OutputDir)
	return c.generate(ctx, logger, tracer)
}

func (c *Generate) generate(ctx context.Context, logger *slog.Logger, tracer *log.TagTracer) error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return err
	}
	gen := generator.New(c.config(), logger)
	gen.SetTracer(tracer)

	report, err := gen.Run(ctx)
	if err != nil {
		if report != nil {
			logger.Error("Some files could not be generated", "failed", report.Failed)
		}
		return err
	}
	logger.Info("Generated code can be found here", "dir", c.OutputDir)
	return nil
}
