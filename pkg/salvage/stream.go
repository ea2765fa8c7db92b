package salvage

import (
	"bytes"
	"sync"
)

// Stream recovers JSON from text that arrives in chunks, such as a streamed
// LLM response. Each Feed recovers the whole buffer accumulated so far.
type Stream struct {
	opts   []Option
	buffer []byte
	mu     sync.Mutex
}

// NewStream creates a stream. opts apply to every Feed.
func NewStream(opts ...Option) *Stream {
	return &Stream{
		opts:   opts,
		buffer: make([]byte, 0, 1024),
	}
}

// Feed appends chunk and returns the recovery result for the buffer.
// The chunk is still appended when the buffer exceeds the size limit, so a
// caller may Reset and continue.
//
// Example:
//
//	s := salvage.NewStream()
//
//	res, _ := s.Feed([]byte(`Sure! {"city": "Par`))
//	// res.Value is nil, nothing balanced yet
//	res, _ = s.Feed([]byte(`is"} Anything else?`))
//	// res.Value is {"city": "Paris"}
func (s *Stream) Feed(chunk []byte) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = append(s.buffer, chunk...)
	return Recover(string(s.buffer), s.opts...)
}

// Reset clears the buffer and starts fresh.
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = s.buffer[:0]
}

// Buffer returns a copy of the accumulated buffer.
func (s *Stream) Buffer() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.buffer)
}
