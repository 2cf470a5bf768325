package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a three-element sequence or a hex string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var parts []int
		if err := value.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: color: %w", value.Line, err)
		}
		if len(parts) != 3 {
			return fmt.Errorf("line %d: color needs 3 components, got %d", value.Line, len(parts))
		}
		for _, p := range parts {
			if p < 0 || p > 255 {
				return fmt.Errorf("line %d: color component %d out of range 0-255", value.Line, p)
			}
		}
		*c = Color{uint8(parts[0]), uint8(parts[1]), uint8(parts[2])}
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseHex(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("line %d: color must be [r, g, b] or \"#rrggbb\"", value.Line)
	}
}

// MarshalYAML writes the color as a flow sequence.
func (c Color) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []uint8{c.R, c.G, c.B} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(int(v)),
		})
	}
	return node, nil
}

// ParseHex parses "#rrggbb" (the leading # is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}
