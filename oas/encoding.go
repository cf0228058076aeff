package oas

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Serialization styles an encoding may use.
const (
	StyleForm           = "form"
	StyleSpaceDelimited = "spaceDelimited"
	StylePipeDelimited  = "pipeDelimited"
	StyleDeepObject     = "deepObject"
)

// Encoding describes how a single property of a multipart or form-urlencoded
// body is serialized. Zero values mean "use the default": an unset style is
// form, an unset explode follows the style, allowReserved defaults to false.
// Use the Effective accessors to read the values with defaults applied.
type Encoding struct {
	// ContentTypes lists the media types the property may be encoded as.
	// The wire format carries them comma-joined under the singular
	// "contentType" key.
	ContentTypes []string

	// Headers describes additional headers for multipart parts, by header
	// name. Values may be references into the Components table.
	Headers map[string]*HeaderRef

	// Style is the serialization style, empty meaning the default (form).
	Style string

	// Explode controls whether array and object values generate separate
	// parameters per entry. Nil means the style's own default: true for
	// form, false for every other style.
	Explode *bool

	// AllowReserved permits RFC 3986 reserved characters without
	// percent-encoding.
	AllowReserved bool

	// Extensions holds "x-" prefixed vendor keys, re-emitted verbatim.
	Extensions Extensions
}

// EffectiveStyle returns the style with the default applied.
func (e *Encoding) EffectiveStyle() string {
	if e.Style != "" {
		return e.Style
	}
	return StyleForm
}

// EffectiveExplode returns the explode flag with the style default applied.
func (e *Encoding) EffectiveExplode() bool {
	if e.Explode != nil {
		return *e.Explode
	}
	return styleDefaultExplode(e.EffectiveStyle())
}

// styleDefaultExplode is the default explode flag for a style: only form
// explodes by default.
func styleDefaultExplode(style string) bool {
	return style == StyleForm
}

// Recognized encoding object keys. Unknown keys that are not vendor
// extensions are dropped on decode.
const (
	encodingKeyContentType   = "contentType"
	encodingKeyHeaders       = "headers"
	encodingKeyStyle         = "style"
	encodingKeyExplode       = "explode"
	encodingKeyAllowReserved = "allowReserved"
)

// UnmarshalYAML decodes an encoding object from its field map. Recognized
// keys populate the struct, "x-" keys populate Extensions, and any other key
// is silently ignored.
func (e *Encoding) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("encoding: expected a mapping node, got %s", nodeKind(node))
	}

	*e = Encoding{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case encodingKeyContentType:
			var joined string
			if err := value.Decode(&joined); err != nil {
				return fmt.Errorf("encoding: %s: %w", key, err)
			}
			e.ContentTypes = splitContentTypes(joined)
		case encodingKeyHeaders:
			if err := value.Decode(&e.Headers); err != nil {
				return fmt.Errorf("encoding: %s: %w", key, err)
			}
		case encodingKeyStyle:
			if err := value.Decode(&e.Style); err != nil {
				return fmt.Errorf("encoding: %s: %w", key, err)
			}
		case encodingKeyExplode:
			var explode bool
			if err := value.Decode(&explode); err != nil {
				return fmt.Errorf("encoding: %s: %w", key, err)
			}
			e.Explode = &explode
		case encodingKeyAllowReserved:
			if err := value.Decode(&e.AllowReserved); err != nil {
				return fmt.Errorf("encoding: %s: %w", key, err)
			}
		default:
			if !strings.HasPrefix(key, "x-") {
				continue
			}
			var ext any
			if err := value.Decode(&ext); err != nil {
				return fmt.Errorf("encoding: %s: %w", key, err)
			}
			if e.Extensions == nil {
				e.Extensions = make(Extensions)
			}
			e.Extensions[key] = ext
		}
	}
	return nil
}

// MarshalYAML encodes the object back to its field map, keeping the output
// minimal: style, explode, and allowReserved are omitted when they equal
// their computed defaults, and content types are comma-joined under the
// singular legacy key.
func (e *Encoding) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, value any) error {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return fmt.Errorf("encoding: %s: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
		return nil
	}

	if len(e.ContentTypes) > 0 {
		if err := add(encodingKeyContentType, strings.Join(e.ContentTypes, ",")); err != nil {
			return nil, err
		}
	}
	if len(e.Headers) > 0 {
		if err := add(encodingKeyHeaders, e.Headers); err != nil {
			return nil, err
		}
	}
	if style := e.EffectiveStyle(); style != StyleForm {
		if err := add(encodingKeyStyle, style); err != nil {
			return nil, err
		}
	}
	if e.Explode != nil && *e.Explode != styleDefaultExplode(e.EffectiveStyle()) {
		if err := add(encodingKeyExplode, *e.Explode); err != nil {
			return nil, err
		}
	}
	if e.AllowReserved {
		if err := add(encodingKeyAllowReserved, true); err != nil {
			return nil, err
		}
	}
	for _, key := range sortedKeys(e.Extensions) {
		if err := add(key, e.Extensions[key]); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// splitContentTypes splits the comma-joined wire form into individual media
// types.
func splitContentTypes(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DereferencedEncoding pairs an encoding with its header references
// resolved. Style metadata stays on Source.
type DereferencedEncoding struct {
	Source  *Encoding
	Headers map[string]*DereferencedHeader
}

// Dereference resolves the encoding's header references against c.
func (e *Encoding) Dereference(c *Components) (*DereferencedEncoding, error) {
	return e.dereference(c, make(refSet))
}

func (e *Encoding) dereference(c *Components, active refSet) (*DereferencedEncoding, error) {
	if e == nil {
		return nil, nil
	}
	headers, err := dereferenceHeaders(e.Headers, c, active)
	if err != nil {
		return nil, err
	}
	return &DereferencedEncoding{Source: e, Headers: headers}, nil
}
