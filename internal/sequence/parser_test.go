package sequence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Lines(t *testing.T) {
	input := "H H T T T\n\n# a comment\nT T H\n"

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Empty(t, records[0].ID)
	assert.Equal(t, []string{"H", "H", "T", "T", "T"}, records[0].Tokens)
	assert.Equal(t, []string{"T", "T", "H"}, records[1].Tokens)
}

func TestParse_Fasta(t *testing.T) {
	input := ">gene-a\nATGC\nGATT\n>gene-b\nCCGG\n"

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "gene-a", records[0].ID)
	// Lines of a named record run together into one sequence.
	assert.Equal(t, []string{"ATGC", "GATT"}, records[0].Tokens)
	assert.Equal(t, "gene-b", records[1].ID)
	assert.Equal(t, []string{"CCGG"}, records[1].Tokens)
}

func TestParse_EmptyHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("H T\n>\nATGC\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_RecordWithoutData(t *testing.T) {
	_, err := Parse(strings.NewReader(">a\n>b\nATGC\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `record "a"`)

	_, err = Parse(strings.NewReader(">tail\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `record "tail"`)
}

func TestParse_Empty(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
