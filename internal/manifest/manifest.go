package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Node kinds.
const (
	KindGroup       = "group"
	KindFrame       = "frame"
	KindRectangle   = "rectangle"
	KindText        = "text"
	KindComponent   = "component"
	KindSlot        = "slot"
	KindConditional = "conditional"
	KindRepeat      = "repeat"
)

// Manifest is a whole render tree.
type Manifest struct {
	Viewport *Viewport `yaml:"viewport"`
	Root     *NodeSpec `yaml:"root"`
}

// Viewport is the optional root size.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// NodeSpec describes one node. Which fields apply depends on Kind.
type NodeSpec struct {
	Kind string `yaml:"kind"`

	Width       *Prop `yaml:"width"`
	Height      *Prop `yaml:"height"`
	Transform   *Prop `yaml:"transform"`
	Fill        *Prop `yaml:"fill"`
	Stroke      *Prop `yaml:"stroke"`
	StrokeWidth *Prop `yaml:"stroke_width"`
	Content     *Prop `yaml:"content"`
	Condition   *Prop `yaml:"condition"`
	Source      *Prop `yaml:"source"`
	Index       *Prop `yaml:"index"`

	Props    map[string]*Prop `yaml:"props"`
	Children []*NodeSpec      `yaml:"children"`
	Else     []*NodeSpec      `yaml:"else"`
	Adoptees []*NodeSpec      `yaml:"adoptees"`

	line int
}

var nodeFields = map[string]bool{
	"kind": true, "width": true, "height": true, "transform": true,
	"fill": true, "stroke": true, "stroke_width": true, "content": true,
	"condition": true, "source": true, "index": true, "props": true,
	"children": true, "else": true, "adoptees": true,
}

// UnmarshalYAML rejects unknown fields and records the node's line for
// error messages. Node.Decode does not inherit the decoder's KnownFields
// setting, so the check is done here.
func (n *NodeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: node must be a mapping", value.Line)
	}
	for i := 0; i < len(value.Content); i += 2 {
		if key := value.Content[i]; !nodeFields[key.Value] {
			return fmt.Errorf("line %d: unknown node field %q", key.Line, key.Value)
		}
	}
	type plain NodeSpec
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.line = value.Line
	return nil
}

// Prop is a property value: a literal, or {expr: "..."}.
type Prop struct {
	Expr    string
	Literal *yaml.Node
	Line    int
}

// IsExpr reports whether p is bound to an expression.
func (p *Prop) IsExpr() bool { return p.Literal == nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Prop) UnmarshalYAML(value *yaml.Node) error {
	p.Line = value.Line
	if value.Kind == yaml.MappingNode && len(value.Content) == 2 && value.Content[0].Value == "expr" {
		src := value.Content[1]
		if src.Kind != yaml.ScalarNode || src.Value == "" {
			return fmt.Errorf("line %d: expr must be a non-empty string", src.Line)
		}
		p.Expr = src.Value
		return nil
	}
	p.Literal = value
	return nil
}

// Load decodes a manifest from r and validates it. Unknown fields are
// errors.
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile is Load for a file path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks that every node has a known kind and the arguments its
// kind requires. All problems are reported together.
func (m *Manifest) Validate() error {
	var errs []error
	if m.Root == nil {
		return errors.New("manifest has no root")
	}
	if v := m.Viewport; v != nil && (v.Width <= 0 || v.Height <= 0) {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %gx%g", v.Width, v.Height))
	}
	m.Root.validate("root", &errs)
	return errors.Join(errs...)
}

// required lists the properties each kind must set.
var required = map[string][]string{
	KindGroup:       nil,
	KindFrame:       {"width", "height"},
	KindRectangle:   {"width", "height", "fill"},
	KindText:        {"width", "height", "content"},
	KindComponent:   nil,
	KindSlot:        {"index"},
	KindConditional: {"condition"},
	KindRepeat:      {"source"},
}

func (n *NodeSpec) prop(name string) *Prop {
	switch name {
	case "width":
		return n.Width
	case "height":
		return n.Height
	case "fill":
		return n.Fill
	case "content":
		return n.Content
	case "index":
		return n.Index
	case "condition":
		return n.Condition
	case "source":
		return n.Source
	}
	return nil
}

func (n *NodeSpec) validate(where string, errs *[]error) {
	if n == nil {
		*errs = append(*errs, fmt.Errorf("%s: empty node", where))
		return
	}
	names, ok := required[n.Kind]
	if !ok {
		*errs = append(*errs, fmt.Errorf("line %d: %s: unknown kind %q", n.line, where, n.Kind))
		return
	}
	for _, name := range names {
		if n.prop(name) == nil {
			*errs = append(*errs, fmt.Errorf("line %d: %s: %s requires %s", n.line, where, n.Kind, name))
		}
	}
	if len(n.Else) > 0 && n.Kind != KindConditional {
		*errs = append(*errs, fmt.Errorf("line %d: %s: else only applies to conditional", n.line, where))
	}
	if (len(n.Adoptees) > 0 || len(n.Props) > 0) && n.Kind != KindComponent {
		*errs = append(*errs, fmt.Errorf("line %d: %s: props and adoptees only apply to component", n.line, where))
	}

	for name, p := range n.Props {
		if p == nil {
			*errs = append(*errs, fmt.Errorf("line %d: %s: prop %q has no value", n.line, where, name))
		}
	}

	for i, c := range n.Children {
		c.validate(fmt.Sprintf("%s.children[%d]", where, i), errs)
	}
	for i, c := range n.Else {
		c.validate(fmt.Sprintf("%s.else[%d]", where, i), errs)
	}
	for i, c := range n.Adoptees {
		c.validate(fmt.Sprintf("%s.adoptees[%d]", where, i), errs)
	}
}
