// Command jlang parses a jlang source file and prints its AST, in the
// same "flags-parsed CLI reads a file, prints a structured result"
// shape as sqldef's cmd/mysqldef/mysqldef.go, but with no database
// connection: jlang's grammar is explicitly I/O-free (spec.md §5).
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/hinmeru/jlang/ast"
	"github.com/hinmeru/jlang/builder"
	"github.com/hinmeru/jlang/diag"
	"github.com/hinmeru/jlang/internal/logutil"
	"github.com/hinmeru/jlang/sourcemap"
)

var version string

type options struct {
	SourceID string   `long:"source-id" description:"Source identifier attached to diagnostics" value-name:"id"`
	File     []string `long:"file" description:"Read source from the file, rather than stdin" value-name:"jlang_file" default:"-"`
	PrintAST bool     `long:"print-ast" description:"Pretty-print the parsed AST (default output mode)"`
	ASTJSON  bool     `long:"ast-json" description:"Print the parsed AST as JSON instead of Go-struct pretty-printing"`
	Help     bool     `long:"help" description:"Show this help"`
	Version  bool     `long:"version" description:"Show this version"`
}

func main() {
	logutil.Init()

	var opts options
	p := flags.NewParser(&opts, flags.None)
	p.Usage = "[options] [file.jl]"
	args, err := p.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	path := "-"
	if len(opts.File) > 0 {
		path = opts.File[len(opts.File)-1]
	}
	if len(args) > 0 {
		path = args[0]
	}
	text, err := readSource(path)
	if err != nil {
		log.Fatalf("reading source: %v", err)
	}

	m := sourcemap.NewMap()
	id := sourcemap.ID(opts.SourceID)
	if id == "" {
		id = sourcemap.ID(path)
	}
	src := m.RegisterID(id, text)

	nodes, err := builder.Build(src)
	if err != nil {
		reportError(src, err)
		os.Exit(1)
	}

	if opts.ASTJSON {
		out, err := ast.ToJSON(nodes)
		if err != nil {
			log.Fatalf("encoding ast as json: %v", err)
		}
		fmt.Println(string(out))
	} else {
		pp.Default.SetColoringEnabled(term.IsTerminal(int(os.Stdout.Fd())))
		for _, n := range nodes {
			pp.Println(n)
		}
	}
	slog.Debug("parsed source", "source_id", string(src.ID), "statements", len(nodes))
}

func readSource(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func reportError(src sourcemap.Source, err error) {
	d, ok := err.(*diag.Diagnostic)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Fprintln(os.Stderr, diag.RenderWithSource(src, d.Span, src.Slice(d.Span.Start, d.Span.End)))
	fmt.Fprintf(os.Stderr, "%s: %s\n", d.Kind, d.Message)
}
