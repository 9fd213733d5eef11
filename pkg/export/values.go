package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Values holds the value sets of one export. Batch records whether the
// caller supplied an array, which decides the response shape of the inline
// formats.
type Values struct {
	Sets  []map[string]string
	Batch bool
}

// Single wraps one value set.
func Single(values map[string]string) Values {
	if values == nil {
		values = map[string]string{}
	}
	return Values{Sets: []map[string]string{values}}
}

// BatchOf wraps an ordered list of value sets.
func BatchOf(sets ...map[string]string) Values {
	out := make([]map[string]string, len(sets))
	for i, set := range sets {
		if set == nil {
			set = map[string]string{}
		}
		out[i] = set
	}
	return Values{Sets: out, Batch: true}
}

// Len returns the number of value sets.
func (v Values) Len() int {
	return len(v.Sets)
}

// normalised returns at least one set; the zero Values is a single empty set.
func (v Values) normalised() Values {
	if v.Sets == nil && !v.Batch {
		return Single(nil)
	}
	return v
}

// UnmarshalJSON accepts an object, an array of objects or null. Scalar
// values are converted to their string form; nested structures are kept as
// JSON text.
func (v *Values) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*v = Single(nil)
		return nil
	case trimmed[0] == '[':
		var raw []map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("export: decode values array: %w", err)
		}
		sets := make([]map[string]string, len(raw))
		for i, entry := range raw {
			set, err := flattenValues(entry)
			if err != nil {
				return fmt.Errorf("export: decode values[%d]: %w", i, err)
			}
			sets[i] = set
		}
		*v = BatchOf(sets...)
		return nil
	case trimmed[0] == '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("export: decode values: %w", err)
		}
		set, err := flattenValues(raw)
		if err != nil {
			return fmt.Errorf("export: decode values: %w", err)
		}
		*v = Single(set)
		return nil
	default:
		return fmt.Errorf("export: values must be an object or an array of objects")
	}
}

// MarshalJSON writes the form the values were supplied in.
func (v Values) MarshalJSON() ([]byte, error) {
	n := v.normalised()
	if n.Batch {
		return json.Marshal(n.Sets)
	}
	return json.Marshal(n.Sets[0])
}

func flattenValues(raw map[string]json.RawMessage) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		s, err := scalarString(value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out[key] = s
	}
	return out, nil
}

func scalarString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '{', '[':
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return "", err
		}
		return compact.String(), nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}
