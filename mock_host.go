package carbon

// MockHost is a Host for testing. It records every flushed frame.
type MockHost struct {
	frames []FlushedFrame
	err    error
}

// FlushedFrame is one Flush call seen by a MockHost.
type FlushedFrame struct {
	Frame    uint64
	Messages []Message
}

// Ensure MockHost implements Host.
var _ Host = (*MockHost)(nil)

// NewMockHost creates an empty MockHost.
func NewMockHost() *MockHost {
	return &MockHost{}
}

// Flush records msgs and returns the error set by FailWith, if any.
func (m *MockHost) Flush(frame uint64, msgs []Message) error {
	cp := make([]Message, len(msgs))
	copy(cp, msgs)
	m.frames = append(m.frames, FlushedFrame{Frame: frame, Messages: cp})
	return m.err
}

// FailWith makes subsequent flushes return err.
func (m *MockHost) FailWith(err error) {
	m.err = err
}

// Frames returns every recorded flush.
func (m *MockHost) Frames() []FlushedFrame {
	return m.frames
}

// Messages returns all recorded messages in order.
func (m *MockHost) Messages() []Message {
	var out []Message
	for _, f := range m.frames {
		out = append(out, f.Messages...)
	}
	return out
}

// MessagesForFrame returns the messages flushed for frame, or nil.
func (m *MockHost) MessagesForFrame(frame uint64) []Message {
	for _, f := range m.frames {
		if f.Frame == frame {
			return f.Messages
		}
	}
	return nil
}

// Last returns the most recent flush, if any.
func (m *MockHost) Last() (FlushedFrame, bool) {
	if len(m.frames) == 0 {
		return FlushedFrame{}, false
	}
	return m.frames[len(m.frames)-1], true
}

// Reset forgets every recorded flush.
func (m *MockHost) Reset() {
	m.frames = nil
}
