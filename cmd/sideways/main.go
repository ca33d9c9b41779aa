// Package main is the entry point for the sideways command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"golang.org/x/term"

	"github.com/dshills/sideways/internal/app"
	"github.com/dshills/sideways/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type cli struct {
	opts app.Options

	filetype  string
	offset    int
	position  string
	direction string
	write     bool
	wrap      bool
	json      bool
	serve     bool
	watch     bool
	script    string
	list      bool

	showVersion bool
	showHelp    bool

	args []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if c.showVersion {
		fmt.Fprintf(stdout, "sideways %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	c.opts.Stdin = stdin
	application, err := app.New(ctx, c.opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return exitError
	}
	defer application.Close()

	switch {
	case c.list:
		return list(application, c, stdout, stderr)
	case c.serve:
		return serve(ctx, application, c, stdin, stdout, stderr)
	case c.script != "":
		return script(ctx, application, c, stdin, stdout, stderr)
	default:
		return swap(ctx, application, c, stdin, stdout, stderr)
	}
}

func parseFlags(args []string, stderr io.Writer) (*cli, error) {
	c := &cli{}
	fs := flag.NewFlagSet("sideways", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&c.opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&c.opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&c.opts.NoConfig, "no-config", false, "Ignore the configuration file")
	fs.BoolVar(&c.opts.NoScripts, "no-scripts", false, "Skip configured Lua scripts")
	fs.StringVar(&c.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&c.filetype, "ft", "", "Filetype, detected from the file name when omitted")
	fs.IntVar(&c.offset, "offset", -1, "Cursor as a 0-based byte offset")
	fs.StringVar(&c.position, "pos", "", "Cursor as 1-based LINE:COL")
	fs.StringVar(&c.direction, "dir", "right", "Swap direction (left, right)")
	fs.BoolVar(&c.write, "w", false, "Write the result back to FILE")
	fs.BoolVar(&c.wrap, "wrap", false, "Wrap around at the ends of a sibling list")
	fs.BoolVar(&c.json, "json", false, "Print the result as JSON")
	fs.BoolVar(&c.serve, "serve", false, "Answer JSON-lines requests on stdin")
	fs.BoolVar(&c.watch, "watch", false, "With -serve, reload when the configuration changes")
	fs.StringVar(&c.script, "script", "", "Run a Lua script with FILE as sideways.input")
	fs.BoolVar(&c.list, "list", false, "List the enabled filetypes")
	fs.BoolVar(&c.showVersion, "version", false, "Show version information")
	fs.BoolVar(&c.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&c.showHelp, "help", false, "Show help message")
	fs.BoolVar(&c.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "sideways - move arguments and list items left and right\n\n")
		fmt.Fprintf(stderr, "Usage: sideways [options] (-offset N | -pos L:C) [-dir left|right] [FILE]\n")
		fmt.Fprintf(stderr, "       sideways -serve [-watch]\n")
		fmt.Fprintf(stderr, "       sideways -script file.lua [FILE]\n")
		fmt.Fprintf(stderr, "       sideways -list\n\n")
		fmt.Fprintf(stderr, "FILE defaults to stdin when it is not a terminal; \"-\" forces stdin.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  sideways -offset 16 main.rs          Print main.rs with the argument moved right\n")
		fmt.Fprintf(stderr, "  sideways -pos 3:14 -dir left -w a.go Swap in place\n")
		fmt.Fprintf(stderr, "  echo 'f(a, b)' | sideways -ft go -offset 2\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.showHelp {
		fs.Usage()
		return nil, flag.ErrHelp
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "wrap" {
			c.opts.Wrap = &c.wrap
		}
	})

	c.args = fs.Args()
	if len(c.args) > 1 {
		fmt.Fprintf(stderr, "Error: expected at most one FILE, got %d\n", len(c.args))
		fs.Usage()
		return nil, errors.New("too many arguments")
	}
	return c, nil
}

// input returns the FILE argument, "-" when stdin is piped, or "".
func (c *cli) input(stdin io.Reader) string {
	if len(c.args) == 1 {
		return c.args[0]
	}
	if isTerminal(stdin) {
		return ""
	}
	return "-"
}

func swap(ctx context.Context, application *app.Application, c *cli, stdin io.Reader, stdout, stderr io.Writer) int {
	dir, err := engine.ParseDirection(c.direction)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	path := c.input(stdin)
	if path == "" {
		fmt.Fprintf(stderr, "Error: %v: name a FILE or pipe text on stdin\n", app.ErrNoInput)
		return exitUsage
	}

	res, err := application.SwapFile(ctx, app.SwapFileRequest{
		Path:      path,
		Filetype:  c.filetype,
		Offset:    c.offset,
		Position:  c.position,
		Direction: dir,
		Write:     c.write,
	})
	switch {
	case err == nil:
	case engine.IsBenign(err):
		application.Logger().Info("%v", err)
	case errors.Is(err, app.ErrNoCursor), errors.Is(err, app.ErrConflictingCursor),
		errors.Is(err, app.ErrInvalidPosition), errors.Is(err, app.ErrStdinWrite):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if c.json {
		return printJSON(stdout, stderr, map[string]any{
			"text":    res.Text,
			"cursor":  res.Cursor,
			"changed": res.Changed,
			"from":    res.From,
			"to":      res.To,
			"written": res.Written,
		}, []string{"text", "cursor", "changed", "from", "to", "written"})
	}
	if !c.write {
		fmt.Fprint(stdout, res.Text)
	}
	return exitOK
}

func list(application *app.Application, c *cli, stdout, stderr io.Writer) int {
	fts := application.Engine().Filetypes()
	if c.json {
		return printJSON(stdout, stderr, map[string]any{"filetypes": fts}, []string{"filetypes"})
	}
	for _, ft := range fts {
		fmt.Fprintln(stdout, ft)
	}
	return exitOK
}

func serve(ctx context.Context, application *app.Application, c *cli, stdin io.Reader, stdout, stderr io.Writer) int {
	if c.watch {
		go func() {
			if err := application.Watch(ctx); err != nil {
				application.Logger().Warn("config watch stopped: %v", err)
			}
		}()
	}
	if err := application.Serve(ctx, stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func script(ctx context.Context, application *app.Application, c *cli, stdin io.Reader, stdout, stderr io.Writer) int {
	out, ok, err := application.RunScript(ctx, c.script, c.input(stdin))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if ok {
		fmt.Fprint(stdout, out)
	}
	return exitOK
}

// printJSON writes fields in keys order, pretty printed and colored when
// stdout is a terminal.
func printJSON(stdout, stderr io.Writer, fields map[string]any, keys []string) int {
	out := []byte(`{}`)
	for _, k := range keys {
		var err error
		if out, err = sjson.SetBytes(out, k, fields[k]); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	out = pretty.Pretty(out)
	if isTerminal(stdout) {
		out = pretty.Color(out, nil)
	}
	_, _ = stdout.Write(out)
	return exitOK
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
