package manifest

import (
	"strings"
	"testing"

	carbon "github.com/grindlemire/go-carbon"
)

func TestLoad_Errors(t *testing.T) {
	type tc struct {
		doc     string
		wantErr string
	}

	tests := map[string]tc{
		"empty": {
			doc:     "",
			wantErr: "manifest is empty",
		},
		"no root": {
			doc:     "viewport: {width: 10, height: 10}\n",
			wantErr: "no root",
		},
		"unknown kind": {
			doc:     "root: {kind: circle}\n",
			wantErr: `unknown kind "circle"`,
		},
		"missing required": {
			doc:     "root: {kind: rectangle, width: 10px, height: 10px}\n",
			wantErr: "rectangle requires fill",
		},
		"repeat without source": {
			doc:     "root: {kind: repeat}\n",
			wantErr: "repeat requires source",
		},
		"unknown field": {
			doc:     "root: {kind: group, colour: red}\n",
			wantErr: `unknown node field "colour"`,
		},
		"else outside conditional": {
			doc:     "root: {kind: group, else: [{kind: group}]}\n",
			wantErr: "else only applies to conditional",
		},
		"bad viewport": {
			doc:     "viewport: {width: 0, height: 10}\nroot: {kind: group}\n",
			wantErr: "viewport must be positive",
		},
		"empty expr": {
			doc:     "root: {kind: slot, index: {expr: ''}}\n",
			wantErr: "expr must be a non-empty string",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatalf("Load succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	type tc struct {
		doc     string
		wantErr string
	}

	tests := map[string]tc{
		"bad size literal": {
			doc:     "root: {kind: frame, width: wide, height: 10px}\n",
			wantErr: "root.width",
		},
		"bad color literal": {
			doc:     "root: {kind: rectangle, width: 1px, height: 1px, fill: '#xyz'}\n",
			wantErr: "root.fill",
		},
		"expression syntax": {
			doc:     "root: {kind: conditional, condition: {expr: '1 +'}}\n",
			wantErr: `"root.condition"`,
		},
		"short transform": {
			doc:     "root: {kind: group, transform: [1, 0, 0]}\n",
			wantErr: "6 coefficients",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := Load(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			_, err = m.Build()
			if err == nil {
				t.Fatalf("Build succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Build error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuild_Demo(t *testing.T) {
	m, err := LoadFile("testdata/demo.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	tree, err := m.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tree.Viewport == nil || *tree.Viewport != (carbon.Bounds{Width: 400, Height: 300}) {
		t.Fatalf("Viewport = %v, want 400x300", tree.Viewport)
	}
	if _, ok := tree.Root.(*carbon.Frame); !ok {
		t.Fatalf("Root = %T, want *carbon.Frame", tree.Root)
	}
	if got := tree.Evaluator.Len(); got != 5 {
		t.Errorf("Evaluator.Len() = %d, want 5", got)
	}

	host := carbon.NewMockHost()
	e, err := carbon.NewEngine(tree.Registry, tree.Root,
		carbon.WithEvaluator(tree.Evaluator),
		carbon.WithHost(host),
		carbon.WithViewport(tree.Viewport.Width, tree.Viewport.Height),
	)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.Run(4); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var texts []string
	for _, n := range e.DrawList() {
		if txt, ok := n.(*carbon.Text); ok {
			texts = append(texts, txt.Content())
		}
	}
	want := []string{"frame 3", "running", "card", "adopted"}
	if strings.Join(texts, ",") != strings.Join(want, ",") {
		t.Errorf("drawn texts = %v, want %v", texts, want)
	}

	rects := 0
	for _, n := range e.DrawList() {
		if _, ok := n.(*carbon.Rectangle); ok {
			rects++
		}
	}
	if rects != 3 {
		t.Errorf("drawn rectangles = %d, want 3", rects)
	}
}
