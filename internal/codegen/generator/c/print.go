package cgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/reprompi/benchgen/internal/codegen/meta"
)

// The record lives in its own scope so several results can be printed from
// the same function.
var printTmpl = template.Must(template.New("print").Parse(`{{.Pad}}{
{{.Pad}}    reprompib_job_t {{.Job}};
{{.Pad}}    reprompib_initialize_job({{.Opts}}.n_rep, &{{.Job}});
{{range .Cfg.StringVars}}{{$.Pad}}    reprompib_add_svar_to_job("{{.Key}}", {{.Value}}, &{{$.Job}});
{{end}}{{range .Cfg.IntVars}}{{$.Pad}}    reprompib_add_ivar_to_job("{{.Key}}", {{.Value}}, &{{$.Job}});
{{end}}{{.Pad}}    reprompib_print_bench_output({{.Job}}, {{.Cfg.StartTime}}, {{.Cfg.EndTime}},
{{.Pad}}            {{.SyncF}}, {{.Opts}},
{{.Pad}}            "{{.Cfg.Op}}", "{{.Cfg.Name}}", "{{.Cfg.Type}}");
{{.Pad}}    reprompib_cleanup_job({{.Job}});
{{.Pad}}}

`))

func printOutput(cfg meta.OutputConfig, indent int) (string, error) {
	data := struct {
		Pad   string
		Job   string
		Opts  string
		SyncF string
		Cfg   meta.OutputConfig
	}{
		Pad:   strings.Repeat(" ", indent),
		Job:   JobVar,
		Opts:  OptsVar,
		SyncF: SyncFVar,
		Cfg:   cfg,
	}

	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute print template: %w", err)
	}
	return buf.String(), nil
}
