package model

// Merge overlays a streamed partial field on top of its original. Set
// properties of the partial win; everything the increment did not re-send is
// retained from the base so fields never lose options or metadata mid-stream.
func Merge(base, partial Field) Field {
	merged := base

	if partial.ID != "" {
		merged.ID = partial.ID
	}
	if partial.Type != "" {
		merged.Type = partial.Type
	}
	if partial.Label != "" {
		merged.Label = partial.Label
	}
	if partial.Value != nil {
		merged.Value = partial.Value
	}
	if partial.TestValue != nil {
		merged.TestValue = partial.TestValue
	}
	if len(partial.Options) > 0 {
		merged.Options = partial.Options
	}
	if partial.Required {
		merged.Required = true
	}
	if partial.Validation != nil {
		merged.Validation = partial.Validation
	}
	if partial.Metadata != (Metadata{}) {
		merged.Metadata = partial.Metadata
	}

	return merged
}

// Index builds an id-keyed lookup over the field slice. Later duplicates are
// ignored; ids are unique per fill pass by contract.
func Index(fields []Field) map[string]Field {
	idx := make(map[string]Field, len(fields))
	for _, f := range fields {
		if f.ID == "" {
			continue
		}
		if _, exists := idx[f.ID]; exists {
			continue
		}
		idx[f.ID] = f
	}
	return idx
}
