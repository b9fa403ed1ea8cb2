package azsm

import "sync"

// Secret is an in-memory protected string for sensitive values such as
// client secrets and administrator passwords.
//
// The plain value is reachable only through Expose, which hands it to a
// closure for the duration of a single call. Destroy zeroes the backing
// buffer; after Destroy every Expose fails with ErrSecretDestroyed.
// Printing a Secret with fmt verbs yields a redaction marker, never the
// value.
//
// Secret is safe for concurrent use by multiple goroutines.
type Secret struct {
	mu        sync.Mutex
	buf       []byte
	destroyed bool
}

// NewSecret creates a Secret holding a copy of plain.
// The caller remains responsible for its own copy of the input.
func NewSecret(plain string) *Secret {
	s := &Secret{buf: make([]byte, len(plain))}
	copy(s.buf, plain)
	return s
}

// Expose hands the plain value to fn and returns fn's error.
//
// The value must not be retained beyond the call; the narrower the closure,
// the smaller the window in which the plain form exists. Expose holds the
// Secret's lock for the duration of fn, so fn must not call back into the
// same Secret.
func (s *Secret) Expose(fn func(plain string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrSecretDestroyed
	}
	return fn(string(s.buf))
}

// Destroy zeroes the backing buffer. Destroy is idempotent.
func (s *Secret) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.buf = nil
	s.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (s *Secret) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Len returns the length of the stored value, or 0 after Destroy.
func (s *Secret) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

// String implements fmt.Stringer and always redacts.
func (s *Secret) String() string {
	return SecretRedaction
}

// GoString implements fmt.GoStringer so %#v does not leak the buffer.
func (s *Secret) GoString() string {
	return "azsm.Secret(" + SecretRedaction + ")"
}
