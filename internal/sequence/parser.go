// Package sequence parses observation sequences from text input. It accepts
// two framings: plain lines, where every non-blank line is one anonymous
// sequence of whitespace-separated tokens, and FASTA-style records, where a
// ">name" header starts a named sequence and the following lines extend it
// until the next header.
package sequence

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is one observation sequence ready for encoding. ID is empty for
// anonymous line records.
type Record struct {
	ID     string
	Tokens []string
}

// Parse reads all records from r. Lines starting with '#' are comments and
// blank lines are skipped. Errors carry the offending line number.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var records []Record
	var current *Record
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if strings.HasPrefix(text, ">") {
			if current != nil {
				if len(current.Tokens) == 0 {
					return nil, fmt.Errorf("line %d: record %q has no sequence data", line, current.ID)
				}
				records = append(records, *current)
			}
			name := strings.TrimSpace(text[1:])
			if name == "" {
				return nil, fmt.Errorf("line %d: record header has no name", line)
			}
			current = &Record{ID: name}
			continue
		}

		tokens := strings.Fields(text)
		if current != nil {
			// Inside a named record every line extends the same sequence.
			current.Tokens = append(current.Tokens, tokens...)
			continue
		}
		records = append(records, Record{Tokens: tokens})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}

	if current != nil {
		if len(current.Tokens) == 0 {
			return nil, fmt.Errorf("record %q has no sequence data", current.ID)
		}
		records = append(records, *current)
	}
	return records, nil
}
