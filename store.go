package docskit

import "sync/atomic"

// Store holds the live registry for sites that reload content. Readers
// always observe a complete registry; Reload builds a new one and swaps it
// in atomically, never mutating the current instance.
type Store struct {
	current atomic.Pointer[Registry]
}

// NewStore wraps an already built registry.
func NewStore(reg *Registry) *Store {
	s := &Store{}
	s.current.Store(reg)
	return s
}

// Current returns the registry readers should query.
func (s *Store) Current() *Registry {
	return s.current.Load()
}

// Swap installs a new registry and returns the previous one.
func (s *Store) Swap(reg *Registry) *Registry {
	return s.current.Swap(reg)
}

// Reload builds a registry from cfg and installs it. On error the current
// registry stays in place.
func (s *Store) Reload(cfg Config) error {
	reg, err := Build(cfg)
	if err != nil {
		return err
	}
	s.current.Store(reg)
	return nil
}
