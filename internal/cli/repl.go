package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/nfasim/internal/presentation/tui"
	"github.com/aretw0/nfasim/pkg/ports"
	"golang.org/x/term"
)

const replHelp = `Type an input string to simulate it (an empty line simulates the empty string).
Commands:
  :use NAME          switch automaton
  :list              list automata
  :closure S [S...]  epsilon-closure of states
  :describe          show the definition
  :help              show this help
  :quit              exit`

// REPL evaluates one input per line against the current automaton.
type REPL struct {
	Engine  ports.Simulator
	Current string
	In      io.Reader
	Out     io.Writer
	// Interactive enables the banner and prompt.
	Interactive bool

	printer *tui.Printer
}

// NewREPL creates a REPL on in/out. It is interactive when in is a terminal.
func NewREPL(engine ports.Simulator, name string, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		Engine:      engine,
		Current:     name,
		In:          in,
		Out:         out,
		Interactive: IsTerminal(in),
		printer:     tui.NewPrinter(out, true),
	}
}

// IsTerminal reports whether v is a file descriptor attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run reads lines until EOF, :quit or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	if r.Interactive {
		tui.PrintBanner(r.Out)
		fmt.Fprintln(r.Out, replHelp)
	}

	scanner := bufio.NewScanner(r.In)
	for {
		if r.Interactive {
			fmt.Fprintf(r.Out, "%s> ", r.Current)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ":") {
			quit, err := r.command(ctx, strings.Fields(line[1:]))
			if err != nil {
				fmt.Fprintf(r.Out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		if r.Current == "" {
			fmt.Fprintln(r.Out, "error: no automaton selected, use :use NAME")
			continue
		}
		verdict, err := r.Engine.Evaluate(ctx, r.Current, line)
		if err != nil {
			fmt.Fprintf(r.Out, "error: %v\n", err)
			continue
		}
		r.printer.Verdict(verdict)
	}
}

var errUsage = errors.New("wrong number of arguments")

func (r *REPL) command(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, errUsage
	}

	switch args[0] {
	case "q", "quit", "exit":
		return true, nil
	case "help", "h":
		fmt.Fprintln(r.Out, replHelp)
	case "use":
		if len(args) != 2 {
			return false, errUsage
		}
		if _, err := r.Engine.Describe(ctx, args[1]); err != nil {
			return false, err
		}
		r.Current = args[1]
	case "list":
		names, err := r.Engine.List(ctx)
		if err != nil {
			return false, err
		}
		for _, name := range names {
			fmt.Fprintln(r.Out, name)
		}
	case "closure":
		if len(args) < 2 {
			return false, errUsage
		}
		states, err := r.Engine.Closure(ctx, r.Current, args[1:]...)
		if err != nil {
			return false, err
		}
		r.printer.States(states)
	case "describe":
		def, err := r.Engine.Describe(ctx, r.Current)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.Out, "states=%v alphabet=%v start=%s final=%v transitions=%d\n",
			def.States, def.Alphabet, def.Start, def.Final, len(def.Transitions))
	default:
		return false, fmt.Errorf("unknown command :%s", args[0])
	}
	return false, nil
}
