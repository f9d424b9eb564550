package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontinfo/internal/fontload"
	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/fontinfo/otprint"
	"github.com/npillmayer/fontinfo/otquery"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.tyse.fonts": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	verbose := flag.Bool("v", false, "Print long lists in full")
	flag.Parse()
	if *fontname == "" && flag.NArg() > 0 {
		*fontname = flag.Arg(0)
	}
	if *fontname == "" {
		fmt.Fprintln(os.Stderr, "usage: otcli [-v] [-trace level] -font <font-file>")
		os.Exit(2)
	}
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the font table browser")
	//
	// set up REPL
	repl, err := readline.New("font > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := NewIntp(os.Stdout, *verbose, otprint.IsTerminal(os.Stdout))
	intp.repl = repl
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font    *ot.Font
	repl    *readline.Instance
	reg     *otquery.Registry
	out     io.Writer
	verbose bool
	color   bool
	current *otquery.Result // the selected table, if any
}

// NewIntp creates an interpreter writing to out.
func NewIntp(out io.Writer, verbose, color bool) *Intp {
	return &Intp{
		reg:     otquery.DefaultRegistry(),
		out:     out,
		verbose: verbose,
		color:   color,
	}
}

func (intp *Intp) String() string {
	if intp == nil || intp.current == nil {
		return "()"
	}
	return fmt.Sprintf("( table=%s )", intp.current.Record.Tag.Printable())
}

func (intp *Intp) printer() *otprint.Printer {
	return otprint.New(intp.out, otprint.Options{Verbose: intp.verbose, Color: intp.color})
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	TABLES
	TABLE
	PRINT
	GLYPH
	NAMES
	VERBOSE
)

var opMap = map[string]int{
	"quit":    QUIT,
	"exit":    QUIT,
	"help":    HELP,
	"tables":  TABLES,
	"table":   TABLE,
	"print":   PRINT,
	"glyph":   GLYPH,
	"lookup":  GLYPH,
	"names":   NAMES,
	"verbose": VERBOSE,
}

var opNames = []string{
	"quit",
	"help",
	"tables",
	"table",
	"print",
	"glyph",
	"names",
	"verbose",
}

// parseCommand splits a line into operations, separated by ';'. Each operation
// is an op name followed by an optional argument, e.g. "table cmap; glyph A".
// Unknown op names are treated as a request for help.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	cmd := &Command{}
	for i := range cmd.op {
		cmd.op[i].code = NOOP
	}
	steps := strings.Split(line, ";")
	if len(steps) > len(cmd.op) {
		return nil, fmt.Errorf("too many operations in command: %d", len(steps))
	}
	for _, step := range steps {
		fields := strings.Fields(step)
		if len(fields) == 0 {
			continue
		}
		code, ok := opMap[strings.ToLower(fields[0])]
		if !ok {
			code = HELP
		}
		op := &cmd.op[cmd.count]
		op.code = code
		if len(fields) > 1 {
			op.arg = strings.Join(fields[1:], " ")
		}
		cmd.count++
		if code == QUIT {
			break
		}
		if op.arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[code], op.arg)
		}
	}
	return cmd, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	TABLES:  tablesOp,
	TABLE:   tableOp,
	PRINT:   printOp,
	GLYPH:   glyphOp,
	NAMES:   namesOp,
	VERBOSE: verboseOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op[:cmd.count] {
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string) error {
	f, err := fontload.LoadOpenTypeFont(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	if err = intp.setFont(f.Binary); err != nil {
		tracer().Errorf("cannot decode font %s: %s", fontname, err)
		return err
	}
	pterm.Printf("font tables: %v\n", intp.font.TableTags())
	return nil
}

func (intp *Intp) setFont(data []byte) (err error) {
	intp.font, err = ot.Parse(data)
	intp.current = nil
	return
}

var ERR_NO_FONT = errors.New("no font loaded")
var ERR_NO_TABLE = errors.New("no table set")

func (intp *Intp) checkFont() error {
	if intp.font == nil {
		return ERR_NO_FONT
	}
	return nil
}

func (intp *Intp) checkTable() error {
	if intp.current == nil {
		return ERR_NO_TABLE
	}
	return nil
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
