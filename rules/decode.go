package rules

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeOutcome converts an object-valued rule result into a typed struct
// using json tags, with weak typing so numeric results fit integer fields.
func DecodeOutcome(value any, target any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("outcome value must be an object, got %T", value)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("failed to decode outcome: %w", err)
	}
	return nil
}
