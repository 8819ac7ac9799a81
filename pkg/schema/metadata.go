package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeMetadata decodes the document's free-form metadata into a typed
// struct. Field mapping follows "mapstructure" tags on the target:
//
//	var meta struct {
//		Source  string `mapstructure:"source"`
//		Samples int    `mapstructure:"samples"`
//	}
//	err := doc.DecodeMetadata(&meta)
//
// Unknown keys are ignored. Pair this with a Schema when the metadata
// shape must be enforced rather than just extracted.
func (d *Document) DecodeMetadata(target any) error {
	if len(d.Metadata) == 0 {
		return nil
	}
	if err := mapstructure.Decode(d.Metadata, target); err != nil {
		return fmt.Errorf("failed to decode metadata: %w", err)
	}
	return nil
}
