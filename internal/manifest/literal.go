package manifest

import (
	"fmt"

	carbon "github.com/grindlemire/go-carbon"
	"gopkg.in/yaml.v3"
)

func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("want a scalar")
	}
	return n.Value, nil
}

func literalSize(n *yaml.Node) (carbon.Size, error) {
	s, err := scalar(n)
	if err != nil {
		return carbon.Size{}, err
	}
	return carbon.ParseSize(s)
}

func literalColor(n *yaml.Node) (carbon.Color, error) {
	s, err := scalar(n)
	if err != nil {
		return carbon.Color{}, err
	}
	return carbon.HexColor(s)
}

func literalString(n *yaml.Node) (string, error) {
	return scalar(n)
}

func literalFloat(n *yaml.Node) (float64, error) {
	var f float64
	err := n.Decode(&f)
	return f, err
}

func literalInt(n *yaml.Node) (int64, error) {
	var i int64
	err := n.Decode(&i)
	return i, err
}

func literalBool(n *yaml.Node) (bool, error) {
	var v bool
	err := n.Decode(&v)
	return v, err
}

// literalTransform reads the six coefficients [a, b, c, d, e, f].
func literalTransform(n *yaml.Node) (carbon.Transform, error) {
	var coeffs []float64
	if err := n.Decode(&coeffs); err != nil {
		return carbon.Transform{}, err
	}
	if len(coeffs) != 6 {
		return carbon.Transform{}, fmt.Errorf("transform needs 6 coefficients, got %d", len(coeffs))
	}
	return carbon.Transform(coeffs), nil
}

func literalList(n *yaml.Node) ([]carbon.Value, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("want a sequence")
	}
	out := make([]carbon.Value, len(n.Content))
	for i, e := range n.Content {
		v, err := literalValue(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// literalValue decodes any YAML value into the closest tagged Value.
// Mappings become KindAny holding map[string]any.
func literalValue(n *yaml.Node) (carbon.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			v, err := literalBool(n)
			return carbon.Bool(v), err
		case "!!int":
			v, err := literalInt(n)
			return carbon.Int(v), err
		case "!!float":
			v, err := literalFloat(n)
			return carbon.Float(v), err
		default:
			return carbon.String(n.Value), nil
		}
	case yaml.SequenceNode:
		list, err := literalList(n)
		if err != nil {
			return carbon.Value{}, err
		}
		return carbon.List(list...), nil
	case yaml.MappingNode:
		var m map[string]any
		if err := n.Decode(&m); err != nil {
			return carbon.Value{}, err
		}
		return carbon.Any(m), nil
	default:
		return carbon.Value{}, fmt.Errorf("unsupported literal")
	}
}
