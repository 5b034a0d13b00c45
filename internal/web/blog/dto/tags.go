package dto

import (
	"encoding/json"

	"github.com/Laisky/errors/v2"
)

// TagInput accepts the historical shapes clients send for a post's tags:
// a plain string ("go,web" or a serialized JSON array) or an arbitrarily
// nested array of strings. The two shapes are kept apart because the
// creation path treats a scalar string differently from an array.
type TagInput struct {
	// Scalar is set when the client sent a JSON string.
	Scalar string
	// Items holds the flattened strings when the client sent an array.
	Items []string
	// IsScalar distinguishes an empty array from an empty string.
	IsScalar bool
	set      bool
}

// TagInputFromString builds the scalar variant, used when tags arrive as a
// multipart form value instead of JSON.
func TagInputFromString(s string) TagInput {
	return TagInput{Scalar: s, IsScalar: true, set: true}
}

// IsZero reports whether the field was absent from the request.
func (t *TagInput) IsZero() bool {
	return !t.set
}

func (t *TagInput) UnmarshalJSON(data []byte) error {
	t.set = true

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Scalar = s
		t.IsScalar = true
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "tags must be a string or an array of strings")
	}

	items, err := flattenRawTags(raw)
	if err != nil {
		return err
	}
	t.Items = items

	return nil
}

func flattenRawTags(raw []json.RawMessage) ([]string, error) {
	var out []string
	for _, el := range raw {
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			out = append(out, s)
			continue
		}

		var nested []json.RawMessage
		if err := json.Unmarshal(el, &nested); err != nil {
			return nil, errors.Errorf("tag element %s is neither string nor array", string(el))
		}

		items, err := flattenRawTags(nested)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}

	return out, nil
}
