package main

import (
	"os"
	"strings"

	"github.com/reprompi/benchgen/internal/cmd"
	"github.com/reprompi/benchgen/internal/codegen/common"
	"github.com/reprompi/benchgen/internal/configpaths"
	"github.com/reprompi/benchgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("benchgen"),
		kong.Description("Generate ReproMPI benchmark code from //@ annotated C sources"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var tracer *log.TagTracer
	if cli.Log.TraceFile != "" {
		f, err := os.OpenFile(cli.Log.TraceFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open tag trace file", "file", cli.Log.TraceFile, "error", err)
			tracer = log.NewTagTracer(nil)
		} else {
			tracer = log.NewTagTracer(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		tracer = log.NewTagTracer(os.Stderr)
	} else {
		tracer = log.NewTagTracer(nil)
	}

	ctx.Bind(logger)
	ctx.Bind(tracer)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("BENCHGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}
