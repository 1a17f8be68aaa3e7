package excalidraw

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Parse decodes raw JSON bytes into a Document.
// The only failure mode is invalid JSON syntax; any structurally unexpected
// content yields a (possibly empty) Document.
func Parse(data []byte) (Document, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return FromTree(tree), nil
}

// Read decodes a Document from r. Read does not close r.
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read: %w", err)
	}
	return Parse(data)
}

// ReadFile loads the whole file at path and decodes it.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	return Parse(data)
}

// FromTree builds a Document from an already decoded JSON tree as produced by
// encoding/json into an any. It never fails: a root that is not an object, or
// an "elements" value that is not an array, yields a Document with no
// elements, and array entries that are not objects are skipped.
func FromTree(tree any) Document {
	root, ok := tree.(map[string]any)
	if !ok {
		return Document{}
	}

	doc := Document{
		Type:    str(root, "type"),
		Version: int(num(root, "version", 0)),
		Source:  str(root, "source"),
	}

	raw, ok := root["elements"].([]any)
	if !ok {
		return doc
	}
	doc.Elements = make([]Element, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Elements = append(doc.Elements, elementFromMap(obj))
	}
	return doc
}

func elementFromMap(m map[string]any) Element {
	el := Element{
		Type:         str(m, "type"),
		ID:           str(m, "id"),
		X:            num(m, "x", 0),
		Y:            num(m, "y", 0),
		Width:        num(m, "width", 0),
		Height:       num(m, "height", 0),
		StrokeStyle:  str(m, "strokeStyle"),
		StrokeWidth:  num(m, "strokeWidth", DefaultStrokeWidth),
		ContainerID:  str(m, "containerId"),
		Text:         str(m, "text"),
		OriginalText: str(m, "originalText"),
		Name:         str(m, "name"),
		StartBinding: binding(m, "startBinding"),
		EndBinding:   binding(m, "endBinding"),
		EndArrowhead: str(m, "endArrowhead"),
		Rounded:      truthy(m["roundness"]),
		GroupIDs:     strs(m, "groupIds"),
	}
	if el.StrokeStyle == "" {
		el.StrokeStyle = StrokeSolid
	}
	if deleted, ok := m["isDeleted"].(bool); ok {
		el.IsDeleted = deleted
	}
	return el
}

// =============================================================================
// Permissive field accessors
// =============================================================================

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return def
}

func strs(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// binding extracts the bound element id from {"elementId": "..."}.
func binding(m map[string]any, key string) string {
	b, ok := m[key].(map[string]any)
	if !ok {
		return ""
	}
	return str(b, "elementId")
}

// truthy reports whether a roundness marker is set. Excalidraw writes an
// object such as {"type": 3}; older files use a number or a boolean.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
