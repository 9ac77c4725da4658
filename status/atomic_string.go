package status

import "sync/atomic"

// MaxStringLen bounds stored strings so status bar fields keep their width
const MaxStringLen = 16

// AtomicString is a short label swapped atomically. The zero value holds ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets val, truncated to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
