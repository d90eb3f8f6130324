package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/nfasim/pkg/domain"
)

// GraphOverlay contains simulation data to visualize on the graph.
type GraphOverlay struct {
	// Visited are states that were active at some earlier step.
	Visited []string
	// Active are the states active at the final step.
	Active []string
}

// OverlayFromVerdict marks the last trace step as active and every earlier one as visited.
func OverlayFromVerdict(v domain.Verdict) *GraphOverlay {
	if len(v.Trace) == 0 {
		return nil
	}
	overlay := &GraphOverlay{Active: v.Trace[len(v.Trace)-1].Active}
	for _, step := range v.Trace[:len(v.Trace)-1] {
		overlay.Visited = append(overlay.Visited, step.Active...)
	}
	return overlay
}

type edge struct {
	from, to string
}

// GenerateMermaid produces a Mermaid flowchart for a definition.
// It applies semantic styling:
// - Final: (((Double circle)))
// - Start: ((Circle))
// - Default: (Rounded)
// Parallel transitions between the same pair of states share one arrow whose
// label lists every symbol. Epsilon arrows are dotted and labelled ε.
func GenerateMermaid(def domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	start := def.Start
	if start == "" && len(def.States) > 0 {
		start = def.States[0]
	}

	for _, state := range def.States {
		safeID := sanitizeMermaidID(state)

		opener, closer := "(", ")"
		switch {
		case slices.Contains(def.Final, state):
			opener, closer = "(((", ")))"
		case state == start:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escape(state), closer))
	}
	if start != "" {
		sb.WriteString(fmt.Sprintf("    __start__:::hidden --> %s\n", sanitizeMermaidID(start)))
	}

	var order []edge
	labels := make(map[edge][]string)
	epsilon := make(map[edge]bool)
	for _, t := range def.Transitions {
		for _, to := range t.To {
			e := edge{from: t.From, to: to}
			if t.IsEpsilon() {
				if !epsilon[e] {
					epsilon[e] = true
					if _, seen := labels[e]; !seen {
						order = append(order, e)
						labels[e] = nil
					}
				}
				continue
			}
			if _, seen := labels[e]; !seen {
				order = append(order, e)
			}
			if !slices.Contains(labels[e], t.Symbol) {
				labels[e] = append(labels[e], t.Symbol)
			}
		}
	}

	for _, e := range order {
		from, to := sanitizeMermaidID(e.from), sanitizeMermaidID(e.to)
		if syms := labels[e]; len(syms) > 0 {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, escape(strings.Join(syms, ", ")), to))
		}
		if epsilon[e] {
			sb.WriteString(fmt.Sprintf("    %s -. \"ε\" .-> %s\n", from, to))
		}
	}

	sb.WriteString("    classDef hidden display:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps the overlay readable in both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		styled := make(map[string]bool)
		for _, id := range overlay.Active {
			safeID := sanitizeMermaidID(id)
			if !styled[safeID] && safeID != "" {
				styled[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s active;\n", safeID))
			}
		}
		for _, id := range overlay.Visited {
			safeID := sanitizeMermaidID(id)
			if !styled[safeID] && safeID != "" {
				styled[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
	}

	return sb.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "#quot;")
}

// sanitizeMermaidID maps a state name to a node ID. ASCII letters and digits are
// kept, '_' becomes "__" and any other rune becomes "_<hex>_", so distinct names
// never share an ID.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '_':
			sb.WriteString("__")
		default:
			fmt.Fprintf(&sb, "_%x_", r)
		}
	}
	return sb.String()
}
