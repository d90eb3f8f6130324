package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/muesli/termenv"
)

// Printer writes verdicts in colour when the output supports it.
type Printer struct {
	out     *termenv.Output
	Verbose bool
}

// NewPrinter creates a printer for w, detecting its colour profile.
func NewPrinter(w io.Writer, verbose bool) *Printer {
	return &Printer{out: termenv.NewOutput(w), Verbose: verbose}
}

// Verdict prints one verdict line and, when verbose, the step trace.
func (p *Printer) Verdict(v domain.Verdict) {
	label := p.out.String("ACCEPT").Foreground(p.out.Color("#22c55e")).Bold()
	switch {
	case v.Error != "":
		label = p.out.String("INVALID").Foreground(p.out.Color("#f97316")).Bold()
	case !v.Accepted:
		label = p.out.String("REJECT").Foreground(p.out.Color("#ef4444")).Bold()
	}

	fmt.Fprintf(p.out, "%s %q copies=%d", label, v.Input, v.MaxCopies)
	if v.Error != "" {
		fmt.Fprintf(p.out, " (%s)", v.Error)
	}
	fmt.Fprintln(p.out)

	if !p.Verbose {
		return
	}
	for i, step := range v.Trace {
		symbol := "·"
		if step.Symbol != "" {
			symbol = step.Symbol
		}
		fmt.Fprintf(p.out, "  %2d %s {%s}\n", i, p.out.String(symbol).Faint(), strings.Join(step.Active, ", "))
	}
}

// States prints a set of state names.
func (p *Printer) States(names []string) {
	fmt.Fprintf(p.out, "{%s}\n", strings.Join(names, ", "))
}
