package schema

// Schema declares the expected metadata fields of a document and their
// types. Libraries that attach provenance to their models (who derived the
// tables, from how many samples) use it to keep that metadata honest.
// Example: {"source": String(), "samples": Int(), "tags": Slice(String())}
type Schema map[string]Type

// Validate checks that data carries every schema field with a conforming
// value. All failures are collected into an *AggregateError; a nil or empty
// schema validates anything.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error

	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ValidateMetadata checks the document's metadata against a schema. It is
// separate from Validate because metadata requirements are a deployment
// convention, not part of the model contract.
func (d *Document) ValidateMetadata(schema Schema) error {
	return Validate(schema, d.Metadata)
}
