package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString keeps JSON PATCH tri-state for a string field (RFC 7396):
//   - Present=false: absent, leave unchanged
//   - Present=true, Value=nil: explicit null
//   - Present=true, Value!=nil: a string, possibly empty
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON implements json.Unmarshaler. It only runs for present keys.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// IsNull reports an explicit JSON null.
func (o OptionalString) IsNull() bool {
	return o.Present && o.Value == nil
}
