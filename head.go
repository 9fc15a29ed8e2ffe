package lighthousedocs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

// HeadTag is an element injected into the head of every generated page. It's
// written as a tuple: [tag, attributes] or [tag, attributes, content].
type HeadTag struct {
	Tag     string            `koanf:"tag"`
	Attrs   map[string]string `koanf:"attrs"`
	Content string            `koanf:"content"`
}

func (h HeadTag) tuple() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}

	t := []any{h.Tag, attrs}

	if h.Content != "" {
		t = append(t, h.Content)
	}

	return t
}

// headTagFromTuple converts a decoded [tag, attrs, content?] value.
func headTagFromTuple(raw []any) (HeadTag, error) {
	if len(raw) < 2 || len(raw) > 3 {
		return HeadTag{}, fmt.Errorf(
			"head tag must have two or three elements, got %d", len(raw))
	}

	tag, ok := raw[0].(string)
	if !ok {
		return HeadTag{}, fmt.Errorf("head tag name must be a string, got %T", raw[0])
	}

	h := HeadTag{
		Tag:   tag,
		Attrs: make(map[string]string),
	}

	switch attrs := raw[1].(type) {
	case nil:
	case map[string]any:
		for k, v := range attrs {
			h.Attrs[k] = fmt.Sprint(v)
		}
	case map[string]string:
		maps.Copy(h.Attrs, attrs)
	default:
		return HeadTag{}, fmt.Errorf(
			"attributes of head tag %q must be a mapping, got %T", tag, raw[1])
	}

	if len(raw) == 3 {
		content, ok := raw[2].(string)
		if !ok {
			return HeadTag{}, fmt.Errorf(
				"content of head tag %q must be a string, got %T", tag, raw[2])
		}

		h.Content = content
	}

	return h, nil
}

func (h HeadTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.tuple())
}

func (h *HeadTag) UnmarshalJSON(data []byte) error {
	var raw []any

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decode head tag: %w", err)
	}

	tag, err := headTagFromTuple(raw)
	if err != nil {
		return err
	}

	*h = tag

	return nil
}

func (h HeadTag) MarshalYAML() (any, error) {
	return h.tuple(), nil
}

func (h *HeadTag) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return errors.New("head tag must be a sequence")
	}

	var raw []any

	err := value.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decode head tag: %w", err)
	}

	tag, err := headTagFromTuple(raw)
	if err != nil {
		return err
	}

	*h = tag

	return nil
}

// Node returns the tag as a HTML element node. Attributes are sorted by name
// so that the rendered output is stable.
func (h HeadTag) Node() *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     h.Tag,
		DataAtom: atom.Lookup([]byte(h.Tag)),
	}

	for _, k := range slices.Sorted(maps.Keys(h.Attrs)) {
		n.Attr = append(n.Attr, html.Attribute{
			Key: k,
			Val: h.Attrs[k],
		})
	}

	if h.Content != "" {
		n.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: h.Content,
		})
	}

	return n
}

// HeadHTML renders the head tags as a HTML fragment, one element per line.
func HeadHTML(tags []HeadTag) (string, error) {
	var buf bytes.Buffer

	for i, t := range tags {
		if t.Tag == "" {
			return "", fmt.Errorf("head tag %d has no name", i)
		}

		if i > 0 {
			buf.WriteByte('\n')
		}

		err := html.Render(&buf, t.Node())
		if err != nil {
			return "", fmt.Errorf("render head tag %q: %w", t.Tag, err)
		}
	}

	return buf.String(), nil
}
