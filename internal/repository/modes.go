package repository

import (
	"sync"

	"github.com/minhvu/sothuchi/internal/model"
)

// Modes keeps each user's session default for unsigned amounts. It lives for
// the process lifetime only and is never persisted.
type Modes struct {
	mu    sync.RWMutex
	modes map[string]model.Mode
}

func NewModes() *Modes {
	return &Modes{
		modes: make(map[string]model.Mode),
	}
}

func (m *Modes) Get(user string) model.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mode, ok := m.modes[user]
	if !ok {
		return model.ModeUnset
	}
	return mode
}

func (m *Modes) Set(user string, mode model.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[user] = mode
}

// Reset clears the user's mode, forcing an explicit choice on the next
// unsigned batch.
func (m *Modes) Reset(user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.modes, user)
}
