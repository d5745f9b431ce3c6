package lint

import (
	"github.com/go-viper/mapstructure/v2"
)

// Rule options arrive as decoded YAML, environment or flag values, so a
// number may be any numeric type or even a string and a list is []any.

// DecodeOptions decodes a rule's options into out, a pointer to a struct
// whose fields carry mapstructure tags. Values are converted weakly and a
// scalar fills a one-element list. Unknown keys are ignored.
func DecodeOptions(opts map[string]any, out any) error {
	if len(opts) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(opts)
}
