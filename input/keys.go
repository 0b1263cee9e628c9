// Package input holds the input state shared between the event thread and
// the render thread and maps window events to camera actions.
package input

import "sync"

// Key identifies a keyboard key independently of the window system.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyE
	KeyF
	KeyQ
	KeyR
	KeyS
	KeyW
	KeySpace
	KeyLeftShift
	KeyEscape
)

var keyNames = map[Key]string{
	KeyA:         "A",
	KeyD:         "D",
	KeyE:         "E",
	KeyF:         "F",
	KeyQ:         "Q",
	KeyR:         "R",
	KeyS:         "S",
	KeyW:         "W",
	KeySpace:     "Space",
	KeyLeftShift: "LeftShift",
	KeyEscape:    "Escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KeySet tracks the keys that are currently held down. The event thread
// mutates it on press and release; the render thread takes a snapshot once
// per frame.
type KeySet struct {
	mu   sync.Mutex
	keys []Key
}

// Create an empty key set.
func NewKeySet() *KeySet {
	return &KeySet{keys: make([]Key, 0, 10)}
}

// Press adds key to the set. Pressing a held key is a no-op.
func (s *KeySet) Press(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range s.keys {
		if k == key {
			return
		}
	}
	s.keys = append(s.keys, key)
}

// Release removes key from the set. Releasing a key that is not held is a
// no-op.
func (s *KeySet) Release(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for index, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:index], s.keys[index+1:]...)
			return
		}
	}
}

// Snapshot returns the held keys in the order they were pressed.
func (s *KeySet) Snapshot() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Key(nil), s.keys...)
}
