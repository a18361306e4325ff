package cmd

import "github.com/alecthomas/kong"

// LogConfig holds the global logging flags.
type LogConfig struct {
	Level     string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"BENCHGEN_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" type:"path" env:"BENCHGEN_LOG_FILE"`
	Format    string `help:"Log record format; auto uses text on a terminal and JSON otherwise" default:"auto" enum:"auto,text,json" env:"BENCHGEN_LOG_FORMAT"`
	TraceFile string `help:"Write every scanned tag to this file" type:"path" env:"BENCHGEN_LOG_TRACE_FILE"`
}

// CLI is the root command tree.
type CLI struct {
	ConfigFile string           `name:"config" help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"BENCHGEN_CONFIG"`
	Version    kong.VersionFlag `help:"Print version and exit"`
	Log        LogConfig        `embed:"" prefix:"log."`

	Generate  Generate      `cmd:"" help:"Generate benchmark code for every listed source"`
	Annotate  Annotate      `cmd:"" help:"Generate benchmark code for a single file"`
	Scan      Scan          `cmd:"" help:"Print the tags and resolved directives of a file"`
	Watch     Watch         `cmd:"" help:"Regenerate whenever an input changes"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
