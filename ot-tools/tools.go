package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// No version is set: commando would claim flag -v for it.
func main() {
	commando.
		SetExecutableName("ot-tools").
		SetDescription("Dump the tables of TrueType and OpenType fonts.")

	commando.
		Register(nil).
		AddArgument("font", "font file path", "").
		AddArgument("tables...", "optional list of table tags (e.g. head,cmap,OS/2)", "").
		AddFlag("verbose,v", "print long lists in full", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		AddFlag("no-checksum", "do not verify table checksums", commando.Bool, nil).
		SetAction(runDumpCommand)

	commando.
		Register("info").
		SetDescription("Print a summary of a font: type, names, metrics and tables.").
		SetShortDescription("font summary").
		AddArgument("font", "font file path", "").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runInfoCommand)

	commando.
		Register("tables").
		SetDescription("List the table directory of a font, with the decoder known for each table.").
		SetShortDescription("table directory").
		AddArgument("font", "font file path", "").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runTablesCommand)

	commando.Parse(nil)
}

// setupTracing directs traces to the Go logger, at the level given by flag
// --trace.
func setupTracing(flags map[string]commando.FlagValue) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.tyse.fonts":   "Error",
		"trace.fontinfo":     "Error",
		"trace.font.otquery": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	level, err := flags["trace"].GetString()
	if err != nil {
		fatalf("invalid --trace flag: %v", err)
	}
	for _, key := range []string{"tyse.fonts", "fontinfo", "font.opentype", "font.otquery", "font.otprint"} {
		if !setTraceLevel(tracing.Select(key), level) {
			fatalf("invalid trace level: %s", level)
		}
	}
}

func setTraceLevel(t tracing.Trace, level string) bool {
	switch level {
	case "Debug":
		t.SetTraceLevel(tracing.LevelDebug)
	case "Info":
		t.SetTraceLevel(tracing.LevelInfo)
	case "Error":
		t.SetTraceLevel(tracing.LevelError)
	default:
		return false
	}
	return true
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
