package loam

import (
	"encoding/json"
	"fmt"
)

// ModelMetadata represents the frontmatter of a model document in a Loam
// repository. It uses "mapstructure" tags to match standard frontmatter/YAML
// keys.
//
// The probability tables are declared as []any because Loam's strict mode
// surfaces numbers as json.Number while its other adapters produce float64
// or int; toVector and toMatrix normalize all of them.
type ModelMetadata struct {
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description,omitempty" mapstructure:"description"`
	States      []string `json:"states" mapstructure:"states"`
	Symbols     []string `json:"symbols" mapstructure:"symbols"`

	Initial    []any `json:"initial" mapstructure:"initial"`
	Transition []any `json:"transition" mapstructure:"transition"`
	Emission   []any `json:"emission" mapstructure:"emission"`
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func toVector(raw []any) ([]float64, error) {
	if raw == nil {
		return nil, nil
	}
	vec := make([]float64, len(raw))
	for i, item := range raw {
		f, err := toFloat(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		vec[i] = f
	}
	return vec, nil
}

func toMatrix(raw []any) ([][]float64, error) {
	if raw == nil {
		return nil, nil
	}
	matrix := make([][]float64, len(raw))
	for i, item := range raw {
		row, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d: expected list, got %T", i, item)
		}
		vec, err := toVector(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		matrix[i] = vec
	}
	return matrix, nil
}
