// Package graph renders model topologies as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/lattice/pkg/schema"
)

// GenerateMermaid produces Mermaid flowchart syntax for a model's state
// graph:
// - a ((Circle)) start node with the initial distribution
// - one [Rectangle] per state, annotated with its dominant emissions
// - probability-labeled edges, dotted for initial entries
// Edges below minProb are pruned so dense models stay readable; pass 0 to
// keep everything with positive probability.
func GenerateMermaid(doc *schema.Document, minProb float64) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	states := make([]string, len(doc.Initial))
	for i := range states {
		if i < len(doc.States) {
			states[i] = doc.States[i]
		} else {
			states[i] = fmt.Sprintf("S%d", i)
		}
	}

	sb.WriteString("    __start__((\"start\"))\n")

	for i, name := range states {
		safeID := sanitizeMermaidID(name)
		label := name
		if summary := emissionSummary(doc, i); summary != "" {
			label = fmt.Sprintf("%s <br/> %s", name, summary)
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", safeID, label))
	}

	for i, p := range doc.Initial {
		if p <= 0 || p < minProb {
			continue
		}
		sb.WriteString(fmt.Sprintf("    __start__ -. \"%s\" .-> %s\n", prob(p), sanitizeMermaidID(states[i])))
	}

	for i, row := range doc.Transition {
		safeFrom := sanitizeMermaidID(states[i])
		for j, p := range row {
			if p <= 0 || p < minProb {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeFrom, prob(p), sanitizeMermaidID(states[j])))
		}
	}

	return sb.String()
}

// emissionSummary lists a state's labeled emissions above the 10% mark, so
// node labels convey what the state tends to produce without reproducing the
// whole table.
func emissionSummary(doc *schema.Document, state int) string {
	if state >= len(doc.Emission) || len(doc.Symbols) == 0 {
		return ""
	}
	var parts []string
	for k, p := range doc.Emission[state] {
		if k >= len(doc.Symbols) || p < 0.1 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", doc.Symbols[k], prob(p)))
	}
	return strings.Join(parts, " ")
}

func prob(p float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
