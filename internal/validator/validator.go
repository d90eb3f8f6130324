package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/nfa"
)

// Report summarizes the structure of an automaton.
type Report struct {
	Name        string   `json:"name"`
	States      int      `json:"states"`
	Alphabet    int      `json:"alphabet"`
	Transitions int      `json:"transitions"`
	Epsilons    int      `json:"epsilons"`
	IsDFA       bool     `json:"is_dfa"`
	Unreachable []string `json:"unreachable,omitempty"`
	// Dead lists reachable states from which no final state can be reached.
	Dead []string `json:"dead,omitempty"`
	// Warnings are human readable remarks that do not make the automaton invalid.
	Warnings []string `json:"warnings,omitempty"`
}

// Validate compiles the definition and inspects the resulting automaton.
// A definition that does not compile is returned as an error listing the cause.
func Validate(def domain.Definition) (*Report, *nfa.Automaton, error) {
	a, err := nfa.FromDefinition(def)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid definition: %w", err)
	}
	return Inspect(a), a, nil
}

// Inspect crawls the automaton from its start state and reports unreachable and dead states.
func Inspect(a *nfa.Automaton) *Report {
	report := &Report{
		Name:     a.Name(),
		States:   len(a.States()),
		Alphabet: len(a.Sigma()),
		IsDFA:    a.IsDFA(),
	}

	table := a.Table()
	forward := make(map[nfa.StateID][]nfa.StateID)
	backward := make(map[nfa.StateID][]nfa.StateID)
	for _, st := range a.States() {
		for _, symbol := range table.Symbols(st.ID()) {
			dest, _ := table.DestinationsOf(st.ID(), symbol)
			if symbol == domain.Epsilon {
				report.Epsilons += dest.Len()
			}
			report.Transitions += dest.Len()
			for _, to := range dest.Sorted() {
				forward[st.ID()] = append(forward[st.ID()], to)
				backward[to] = append(backward[to], st.ID())
			}
		}
	}

	start, ok := a.Start()
	if !ok {
		report.Warnings = append(report.Warnings, "automaton has no states")
		return report
	}

	reachable := crawl([]nfa.StateID{start.ID()}, forward)

	finals := make([]nfa.StateID, 0)
	for _, st := range a.Finals() {
		finals = append(finals, st.ID())
	}
	productive := crawl(finals, backward)

	for _, st := range a.States() {
		switch {
		case !reachable.Contains(st.ID()):
			report.Unreachable = append(report.Unreachable, st.Name())
		case !productive.Contains(st.ID()):
			report.Dead = append(report.Dead, st.Name())
		}
	}

	if len(finals) == 0 {
		report.Warnings = append(report.Warnings, "no final states: every input is rejected")
	} else if !productive.Contains(start.ID()) {
		report.Warnings = append(report.Warnings, "no final state is reachable from the start state")
	}
	if len(report.Unreachable) > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("unreachable states are ignored by simulation: %s", strings.Join(report.Unreachable, ", ")))
	}
	return report
}

// crawl returns every state reachable from roots following edges.
func crawl(roots []nfa.StateID, edges map[nfa.StateID][]nfa.StateID) nfa.StateSet {
	visited := nfa.NewStateSet()
	queue := append([]nfa.StateID(nil), roots...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if !visited.Add(current) {
			continue
		}
		for _, next := range edges[current] {
			if !visited.Contains(next) {
				queue = append(queue, next)
			}
		}
	}
	return visited
}
