package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/lattice/internal/presentation/graph"
	"github.com/aretw0/lattice/pkg/schema"
)

func TestGenerateMermaid(t *testing.T) {
	coins := &schema.Document{
		Name:       "coins",
		States:     []string{"Fair", "Loaded"},
		Symbols:    []string{"H", "T"},
		Initial:    []float64{1, 0},
		Transition: [][]float64{{0.75, 0.25}, {0.25, 0.75}},
		Emission:   [][]float64{{0.5, 0.5}, {0.25, 0.75}},
	}

	tests := []struct {
		name     string
		doc      *schema.Document
		minProb  float64
		contains []string
		excludes []string
	}{
		{
			name: "Start Node And Initial Edges",
			doc:  coins,
			contains: []string{
				"graph TD",
				`__start__(("start"))`,
				`__start__ -. "1" .-> Fair`,
			},
			excludes: []string{
				// Zero-probability initial entry is pruned.
				`.-> Loaded`,
			},
		},
		{
			name: "Emission Summaries In Labels",
			doc:  coins,
			contains: []string{
				`Fair["Fair <br/> H:0.5 T:0.5"]`,
				`Loaded["Loaded <br/> H:0.25 T:0.75"]`,
			},
		},
		{
			name: "Transition Edges",
			doc:  coins,
			contains: []string{
				`Fair -- "0.75" --> Fair`,
				`Fair -- "0.25" --> Loaded`,
				`Loaded -- "0.25" --> Fair`,
				`Loaded -- "0.75" --> Loaded`,
			},
		},
		{
			name:    "Threshold Pruning",
			doc:     coins,
			minProb: 0.5,
			contains: []string{
				`Fair -- "0.75" --> Fair`,
			},
			excludes: []string{
				`Fair -- "0.25" --> Loaded`,
			},
		},
		{
			name: "ID Sanitization And Unlabeled States",
			doc: &schema.Document{
				Name:       "plain",
				States:     []string{"exon 1", "intron-a"},
				Initial:    []float64{0.5, 0.5},
				Transition: [][]float64{{0.9, 0.1}, {0.1, 0.9}},
				Emission:   [][]float64{{1}, {1}},
			},
			contains: []string{
				`exon_1["exon 1"]`,
				`intron_a["intron-a"]`,
				`exon_1 -- "0.1" --> intron_a`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.doc, tt.minProb)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnwanted substring: %v", got, unwanted)
				}
			}
		})
	}
}
