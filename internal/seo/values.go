package seo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keywords holds page keywords. It decodes from either a single string or a
// sequence of strings.
type Keywords []string

// String joins the keywords with ", ". Empty entries are dropped.
func (k Keywords) String() string {
	parts := make([]string, 0, len(k))
	for _, kw := range k {
		if kw = strings.TrimSpace(kw); kw != "" {
			parts = append(parts, kw)
		}
	}
	return strings.Join(parts, ", ")
}

// UnmarshalJSON accepts "a, b" or ["a", "b"].
func (k *Keywords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*k = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = singleKeyword(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("seo: keywords must be a string or list of strings: %w", err)
	}
	*k = list
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence node.
func (k *Keywords) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*k = singleKeyword(value.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*k = list
		return nil
	default:
		return fmt.Errorf("seo: keywords at line %d must be a string or list", value.Line)
	}
}

func singleKeyword(s string) Keywords {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return Keywords{s}
}

// StructuredData is an ordered sequence of JSON-LD payloads. It decodes from a
// single object or a sequence of objects.
type StructuredData []any

// Payloads marshals every non-nil payload. Payloads that cannot be marshalled are skipped.
func (d StructuredData) Payloads() []json.RawMessage {
	out := make([]json.RawMessage, 0, len(d))
	for _, p := range d {
		if p == nil {
			continue
		}
		b, err := json.Marshal(p)
		if err != nil || bytes.Equal(b, []byte("null")) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// UnmarshalJSON accepts {...} or [{...}, ...].
func (d *StructuredData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = nil
		return nil
	}
	if data[0] == '[' {
		var list []any
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*d = list
		return nil
	}
	var one map[string]any
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("seo: structured data must be an object or list of objects: %w", err)
	}
	*d = StructuredData{one}
	return nil
}

// UnmarshalYAML accepts a mapping or a sequence of mappings.
func (d *StructuredData) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var one map[string]any
		if err := value.Decode(&one); err != nil {
			return err
		}
		*d = StructuredData{one}
		return nil
	case yaml.SequenceNode:
		var list []map[string]any
		if err := value.Decode(&list); err != nil {
			return err
		}
		out := make(StructuredData, 0, len(list))
		for _, m := range list {
			out = append(out, m)
		}
		*d = out
		return nil
	default:
		return fmt.Errorf("seo: structured data at line %d must be a mapping or list", value.Line)
	}
}
