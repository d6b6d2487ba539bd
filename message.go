package carbon

import (
	"encoding/json"
	"fmt"
)

// Op is the kind of change a Message carries.
type Op uint8

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "Create"
	case OpUpdate:
		return "Update"
	case OpDelete:
		return "Delete"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// ElementKind names a native element type hosts know how to build.
type ElementKind string

const (
	ElementFrame ElementKind = "Frame"
	ElementText  ElementKind = "Text"
)

// NativeNode is implemented by nodes that have a host-side counterpart.
type NativeNode interface {
	Node
	NativeElement() ElementKind
}

// ContentNode is implemented by native nodes that sync text to the host.
type ContentNode interface {
	NativeContent() string
}

// Message is one entry of the native message protocol.
type Message struct {
	Op      Op
	Element ElementKind
	Path    IDPath
	ClipIDs []IDPath // Create only: clipping ancestry at mount time
	Patch   Patch    // Update only: changed fields
}

// Name returns the wire name, for example "FrameCreate".
func (m Message) Name() string {
	return string(m.Element) + m.Op.String()
}

type createBody struct {
	IDChain     []uint64   `json:"id_chain"`
	ClippingIDs [][]uint64 `json:"clipping_ids"`
}

type updateBody struct {
	IDChain []uint64 `json:"id_chain"`
	Patch
}

type deleteBody struct {
	IDChain []uint64 `json:"id_chain"`
}

// MarshalJSON encodes m as {"<Element><Op>": body}.
func (m Message) MarshalJSON() ([]byte, error) {
	chain := []uint64(m.Path)
	if chain == nil {
		chain = []uint64{}
	}
	var body any
	switch m.Op {
	case OpCreate:
		clips := make([][]uint64, len(m.ClipIDs))
		for i, p := range m.ClipIDs {
			clips[i] = []uint64(p)
		}
		body = createBody{IDChain: chain, ClippingIDs: clips}
	case OpUpdate:
		body = updateBody{IDChain: chain, Patch: m.Patch}
	case OpDelete:
		body = deleteBody{IDChain: chain}
	default:
		return nil, fmt.Errorf("marshal message: unknown op %v", m.Op)
	}
	return json.Marshal(map[string]any{m.Name(): body})
}
