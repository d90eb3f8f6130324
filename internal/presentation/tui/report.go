package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfasim/internal/validator"
	"github.com/aretw0/nfasim/pkg/domain"
)

// InspectMarkdown describes a definition and its structural report as Markdown.
func InspectMarkdown(def domain.Definition, report *validator.Report) string {
	var sb strings.Builder

	title := def.Name
	if title == "" {
		title = "automaton"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if def.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", strings.TrimSpace(def.Description))
	}

	kind := "NFA"
	if report.IsDFA {
		kind = "DFA"
	}
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Kind | %s |\n", kind)
	fmt.Fprintf(&sb, "| States | %d |\n", report.States)
	fmt.Fprintf(&sb, "| Alphabet | %s |\n", codeList(def.Alphabet))
	fmt.Fprintf(&sb, "| Start | `%s` |\n", def.Start)
	fmt.Fprintf(&sb, "| Final | %s |\n", codeList(def.Final))
	fmt.Fprintf(&sb, "| Transitions | %d (%d ε) |\n\n", report.Transitions, report.Epsilons)

	if len(def.Transitions) > 0 {
		sb.WriteString("## Transitions\n\n| From | Symbol | To |\n|---|---|---|\n")
		for _, t := range def.Transitions {
			symbol := "`" + t.Symbol + "`"
			if t.IsEpsilon() {
				symbol = "ε"
			}
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", t.From, symbol, codeList(t.To))
		}
		sb.WriteString("\n")
	}

	if len(report.Warnings) > 0 || len(report.Dead) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		if len(report.Dead) > 0 {
			fmt.Fprintf(&sb, "- dead states (cannot reach a final state): %s\n", codeList(report.Dead))
		}
	}
	return sb.String()
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}
