package carbon

import (
	"encoding/json"
	"fmt"
	"io"
)

// Host receives each frame's native messages. Flush is called once per
// frame, only when the frame produced messages.
type Host interface {
	Flush(frame uint64, msgs []Message) error
}

// HostFunc adapts a function to Host.
type HostFunc func(frame uint64, msgs []Message) error

// Flush calls f.
func (f HostFunc) Flush(frame uint64, msgs []Message) error { return f(frame, msgs) }

// nopHost discards messages.
type nopHost struct{}

func (nopHost) Flush(uint64, []Message) error { return nil }

// JSONHost writes one JSON document per frame:
// {"frame": N, "messages": [...]}.
type JSONHost struct {
	enc *json.Encoder
}

var _ Host = (*JSONHost)(nil)

// NewJSONHost creates a JSONHost writing to w. When pretty is set each
// document is indented.
func NewJSONHost(w io.Writer, pretty bool) *JSONHost {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &JSONHost{enc: enc}
}

type jsonFrame struct {
	Frame    uint64    `json:"frame"`
	Messages []Message `json:"messages"`
}

// Flush implements Host.
func (h *JSONHost) Flush(frame uint64, msgs []Message) error {
	if err := h.enc.Encode(jsonFrame{Frame: frame, Messages: msgs}); err != nil {
		return fmt.Errorf("encode frame %d: %w", frame, err)
	}
	return nil
}
