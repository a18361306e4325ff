package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/reprompi/benchgen/internal/codegen/common"
	"github.com/reprompi/benchgen/internal/codegen/emitter"
	cgen "github.com/reprompi/benchgen/internal/codegen/generator/c"
	"github.com/reprompi/benchgen/internal/codegen/meta"
	"github.com/reprompi/benchgen/internal/codegen/scanner"
	"github.com/reprompi/benchgen/internal/fsutil"
)

// Config describes one generation run.
type Config struct {
	InputDir    string // annotated sources
	OutputDir   string // receives CMakeLists.txt and <basename(InputDir)>/
	SourcesFile string // relative paths to process, one per line
	HelperDir   string // optional, holds platform_files/ and cmake_modules/
	Workers     int    // files processed concurrently; <= 0 means GOMAXPROCS
	Manifest    bool   // write benchgen.sum
}

// Report lists what a run produced, as paths relative to the input directory.
type Report struct {
	Generated []string
	Headers   []string
	Failed    []string
	Changed   []string // manifest paths whose digest differs from the previous run
}

type Generator struct {
	cfg    Config
	logger *slog.Logger
	tracer scanner.Tracer
}

func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		logger: logger,
	}
}

// SetTracer installs a tracer that sees every scanned tag.
func (g *Generator) SetTracer(t scanner.Tracer) {
	g.tracer = t
}

// SrcDir is the directory under OutputDir that mirrors InputDir.
func (g *Generator) SrcDir() string {
	return filepath.Join(g.cfg.OutputDir, filepath.Base(filepath.Clean(g.cfg.InputDir)))
}

// Run processes every listed source. A file that fails validation is
// reported and skipped; the remaining files are still generated. The
// returned error joins all per-file failures.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	if g.cfg.InputDir == "" || g.cfg.OutputDir == "" || g.cfg.SourcesFile == "" {
		return nil, errors.New("input directory, output directory and sources file are required")
	}

	wanted, err := ReadSourceList(g.cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Scanning input directory", "dir", g.cfg.InputDir, "listed", len(wanted))
	found, err := fsutil.FindFilesByExtension(g.cfg.InputDir, ".c", ".h")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", g.cfg.InputDir, err)
	}

	report := &Report{}
	var sources []string
	for _, rel := range found {
		if !wanted[rel] {
			continue
		}
		if strings.HasSuffix(rel, ".c") {
			sources = append(sources, rel)
		} else {
			report.Headers = append(report.Headers, rel)
		}
	}
	g.logger.Info("Found files to process", "sources", len(sources), "headers", len(report.Headers))

	srcDir := g.SrcDir()
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	if err := cgen.GenerateCMake(g.logger, g.cfg.OutputDir, filepath.Base(srcDir), version, sources); err != nil {
		return nil, err
	}

	for _, rel := range report.Headers {
		if err := fsutil.CopyFile(filepath.Join(g.cfg.InputDir, rel), filepath.Join(srcDir, rel)); err != nil {
			return nil, fmt.Errorf("failed to copy header %s: %w", rel, err)
		}
	}

	if g.cfg.HelperDir != "" {
		if err := g.copyHelperFiles(); err != nil {
			return nil, err
		}
	}

	errs := g.generateAll(ctx, sources)

	var digests []ManifestEntry
	var failures []error
	for i, rel := range sources {
		if errs[i] != nil {
			report.Failed = append(report.Failed, rel)
			failures = append(failures, errs[i])
			continue
		}
		report.Generated = append(report.Generated, rel)
		if g.cfg.Manifest {
			sum, err := digestFile(filepath.Join(srcDir, rel))
			if err != nil {
				return nil, err
			}
			digests = append(digests, ManifestEntry{Path: path.Join(filepath.Base(srcDir), rel), Sum: sum})
		}
	}

	if g.cfg.Manifest {
		manifestPath := filepath.Join(g.cfg.OutputDir, ManifestName)
		if prev, err := ReadManifest(manifestPath); err == nil {
			report.Changed = changedEntries(prev, digests)
		}
		if err := WriteManifest(manifestPath, digests); err != nil {
			return nil, err
		}
	}

	g.logger.Info("Code generation complete",
		"output", g.cfg.OutputDir,
		"generated", len(report.Generated),
		"failed", len(report.Failed),
		"changed", len(report.Changed))
	return report, errors.Join(failures...)
}

// generateAll runs the per-file pipelines concurrently. Files share no
// state; errs[i] belongs to sources[i].
func (g *Generator) generateAll(ctx context.Context, sources []string) []error {
	workers := g.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	errs := make([]error, len(sources))
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, rel := range sources {
		i, rel := i, rel
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			dst := filepath.Join(g.SrcDir(), rel)
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				errs[i] = err
				return nil
			}
			if err := g.GenerateFile(filepath.Join(g.cfg.InputDir, rel), dst); err != nil {
				g.logger.Error("Failed to generate benchmark code", "file", rel, "error", err)
				errs[i] = err
				return nil
			}
			g.logger.Debug("Generated benchmark code", "file", rel)
			return nil
		})
	}
	_ = eg.Wait()
	return errs
}

// Load scans and resolves a single source file.
func (g *Generator) Load(srcPath string) (*meta.File, error) {
	tags, err := scanner.ScanFile(srcPath, scanner.Options{Logger: g.logger, Tracer: g.tracer})
	if err != nil {
		return nil, err
	}
	return meta.Resolve(srcPath, tags, g.logger)
}

// GenerateFile runs the whole pipeline for one file. Nothing is written to
// dstPath unless the file resolves and emits completely.
func (g *Generator) GenerateFile(srcPath, dstPath string) error {
	f, err := g.Load(srcPath)
	if err != nil {
		return err
	}
	return emitter.WriteFile(srcPath, dstPath, f.Directives, cgen.Synthesize)
}

// Annotate writes the generated version of srcPath to w.
func (g *Generator) Annotate(srcPath string, w io.Writer) error {
	f, err := g.Load(srcPath)
	if err != nil {
		return err
	}
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer in.Close()
	return emitter.Emit(in, w, f.Directives, cgen.Synthesize)
}

func (g *Generator) copyHelperFiles() error {
	for _, dir := range []string{"platform_files", "cmake_modules"} {
		src := filepath.Join(g.cfg.HelperDir, dir)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			g.logger.Warn("Helper directory not found, skipping", "dir", src)
			continue
		}
		copied, err := fsutil.CopyDirFiles(src, filepath.Join(g.cfg.OutputDir, dir))
		if err != nil {
			return fmt.Errorf("cannot copy %s from %s to %s: %w", dir, g.cfg.HelperDir, g.cfg.OutputDir, err)
		}
		g.logger.Debug("Copied helper files", "dir", dir, "count", len(copied))
	}
	return nil
}
