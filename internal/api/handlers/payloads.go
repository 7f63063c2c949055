package handlers

import "encoding/json"

// optionalString distinguishes a JSON field that was absent from one that was
// explicitly null. Set is true whenever the field appeared in the document;
// Value stays nil for an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
