package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var componentKeys = []string{"components", "content", "tagName", "attributes"}

// DecodeProject converts editor project JSON (pages -> frames -> component ->
// components) into a tree. Every nested object is visited, mirroring how the
// editor stores components under arbitrary wrapper keys; objects that look
// like components become Elements, "textnode" components become Text nodes
// and everything else becomes a Container.
func DecodeProject(data []byte) (Node, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Node{}, errors.New("document: project payload is empty")
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Node{}, fmt.Errorf("document: decode project: %w", err)
	}
	return FromValue(raw), nil
}

// DecodeComponents converts a bare components array (or a single component
// object) into a Container.
func DecodeComponents(data []byte) (Node, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Node{}, fmt.Errorf("document: decode components: %w", err)
	}
	switch v := raw.(type) {
	case []any:
		return Container(decodeList(v)...), nil
	case map[string]any:
		return Container(FromValue(v)), nil
	default:
		return Node{}, errors.New("document: components must be an array or object")
	}
}

// FromValue converts an already decoded JSON value into a tree.
func FromValue(v any) Node {
	switch value := v.(type) {
	case map[string]any:
		if isTextNode(value) {
			return Text(stringValue(value["content"]))
		}
		if isComponent(value) {
			return decodeComponent(value)
		}
		return Container(decodeNested(value, nil)...)
	case []any:
		return Container(decodeList(value)...)
	default:
		return Container()
	}
}

func decodeComponent(obj map[string]any) Node {
	n := Node{
		Kind:    KindElement,
		Tag:     stringValue(obj["tagName"]),
		Content: stringValue(obj["content"]),
	}
	if n.Tag == "" && stringValue(obj["type"]) == "wrapper" {
		n.Tag = "body"
	}

	if attrs, ok := obj["attributes"].(map[string]any); ok {
		n.Attributes = make(map[string]string, len(attrs))
		for name, value := range attrs {
			if s, ok := value.(string); ok {
				n.Attributes[name] = s
			}
		}
		if len(n.Attributes) == 0 {
			n.Attributes = nil
		}
		n.ID = n.Attributes["id"]
	}

	if list, ok := obj["components"].([]any); ok {
		n.Children = decodeList(list)
	}

	// Components occasionally nest further components under other keys.
	for _, extra := range decodeNested(obj, componentKeys) {
		if hasContent(extra) {
			n.Children = append(n.Children, extra)
		}
	}
	return n
}

func decodeList(list []any) []Node {
	out := make([]Node, 0, len(list))
	for _, item := range list {
		switch item.(type) {
		case map[string]any, []any:
			out = append(out, FromValue(item))
		}
	}
	return out
}

func decodeNested(obj map[string]any, skip []string) []Node {
	keys := make([]string, 0, len(obj))
	for key, value := range obj {
		if contains(skip, key) {
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]Node, 0, len(keys))
	for _, key := range keys {
		out = append(out, FromValue(obj[key]))
	}
	return out
}

func hasContent(n Node) bool {
	if n.Kind != KindContainer {
		return true
	}
	for _, child := range n.Children {
		if hasContent(child) {
			return true
		}
	}
	return false
}

func isTextNode(obj map[string]any) bool {
	return stringValue(obj["type"]) == "textnode"
}

func isComponent(obj map[string]any) bool {
	for _, key := range componentKeys {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
