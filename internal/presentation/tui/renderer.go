package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/lattice/pkg/schema"
)

// NewRenderer returns a function that renders markdown using glamour.
// It uses a dark theme by default, but could be configurable.
func NewRenderer() func(string) (string, error) {
	// Initialize renderer with standard dark style
	// In the future, we can inject style preferences here.
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ModelCard renders a model definition as markdown: name, description,
// labels and the three probability tables.
func ModelCard(doc *schema.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Name)
	if doc.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", doc.Description)
	}

	states := labelsOrIndices(doc.States, len(doc.Initial))
	symbols := labelsOrIndices(doc.Symbols, emissionWidth(doc))

	fmt.Fprintf(&b, "**States:** %s\n\n", strings.Join(states, ", "))
	fmt.Fprintf(&b, "**Symbols:** %s\n\n", strings.Join(symbols, ", "))

	b.WriteString("## Initial\n\n")
	writeTable(&b, []string{"state", "π"}, func(add func(...string)) {
		for i, p := range doc.Initial {
			add(states[i], prob(p))
		}
	})

	b.WriteString("## Transition\n\n")
	writeTable(&b, append([]string{"from \\ to"}, states...), func(add func(...string)) {
		for i, row := range doc.Transition {
			cells := []string{states[i]}
			for _, p := range row {
				cells = append(cells, prob(p))
			}
			add(cells...)
		}
	})

	b.WriteString("## Emission\n\n")
	writeTable(&b, append([]string{"state \\ symbol"}, symbols...), func(add func(...string)) {
		for i, row := range doc.Emission {
			cells := []string{states[i]}
			for _, p := range row {
				cells = append(cells, prob(p))
			}
			add(cells...)
		}
	})

	if len(doc.Metadata) > 0 {
		b.WriteString("## Metadata\n\n")
		writeTable(&b, []string{"key", "value"}, func(add func(...string)) {
			for _, key := range sortedKeys(doc.Metadata) {
				add(key, fmt.Sprintf("%v", doc.Metadata[key]))
			}
		})
	}

	return b.String()
}

func writeTable(b *strings.Builder, header []string, rows func(add func(...string))) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(header, " | "))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(sep, " | "))
	rows(func(cells ...string) {
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	})
	b.WriteString("\n")
}

func labelsOrIndices(labels []string, n int) []string {
	if len(labels) == n && n > 0 {
		return labels
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d", i)
	}
	return out
}

func emissionWidth(doc *schema.Document) int {
	if len(doc.Emission) == 0 {
		return 0
	}
	return len(doc.Emission[0])
}

func prob(p float64) string {
	return fmt.Sprintf("%.4g", p)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Keep metadata rendering stable across runs.
	return keys
}
