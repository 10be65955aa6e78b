package normalizer

import (
	"encoding/json"
	"strings"
)

// The model reply drifts between types on almost every field: strings
// arrive as numbers, lists as comma-joined strings, skill names as
// objects. Each drift is modeled as a tagged union with its own
// UnmarshalJSON so the coercion rules stay unit-testable in isolation.

// FlexString decodes a JSON string, number or bool into a string.
// null and structured values decode to the empty string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		// Number or bool: keep the literal text
		*f = FlexString(strings.Trim(trimmed, `"`))
		return nil
	}
	*f = ""
	return nil
}

func (f FlexString) String() string { return string(f) }

// StringOrList decodes either a comma-separated string or a list of
// strings into a list of non-empty trimmed tokens. A list passes
// through unchanged apart from dropping non-string entries.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		var out []string
		for _, tok := range strings.Split(single, ",") {
			if t := strings.TrimSpace(tok); t != "" {
				out = append(out, t)
			}
		}
		*s = out
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*s = nil
		return nil
	}
	var out []string
	for _, item := range items {
		var str string
		if err := json.Unmarshal(item, &str); err == nil {
			out = append(out, str)
		}
	}
	*s = out
	return nil
}

// OneOrMany decodes a single string as a one-element list, or a list
// of strings as-is. Unlike StringOrList it never splits on commas;
// it exists for URL-valued fields where commas are meaningful.
type OneOrMany []string

func (o *OneOrMany) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*o = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*o = []string{single}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*o = nil
		return nil
	}
	var out []string
	for _, item := range items {
		var str string
		if err := json.Unmarshal(item, &str); err == nil {
			out = append(out, str)
		}
	}
	*o = out
	return nil
}

// NameOrString decodes a skill entry given either as a plain string or
// as an object with a "name" field. Objects lacking "name" are dropped
// (Valid reports false); the drop policy is deliberate and pinned by
// the package tests.
type NameOrString struct {
	Name  string
	Valid bool
}

func (n *NameOrString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n.Name = s
		n.Valid = s != ""
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Name != "" {
		n.Name = obj.Name
		n.Valid = true
		return nil
	}
	n.Valid = false
	return nil
}

// EntryList decodes a JSON array of T, skipping entries that do not
// decode, and accepts a bare object as a one-element list. A whole
// collection of the wrong shape degrades to empty rather than failing
// the parse.
type EntryList[T any] []T

func (e *EntryList[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*e = nil
		return nil
	}

	if trimmed[0] == '{' {
		var one T
		if err := json.Unmarshal(data, &one); err == nil {
			*e = []T{one}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		*e = nil
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var entry T
		if err := json.Unmarshal(item, &entry); err == nil {
			out = append(out, entry)
		}
	}
	*e = out
	return nil
}
