package dbfader

// ID is the stable identity of a fader across ticks
type ID string

type storeEntry[S Signal] struct {
	meter   *Meter[S]
	touched bool
}

// Store keeps peak meters alive across ticks, keyed by fader identity
// A meter is created on first use and evicted by Sweep once its fader stops ticking.
// Store is not safe for concurrent use; the host drives it from its frame loop.
type Store[S Signal] struct {
	entries map[ID]*storeEntry[S]
}

// NewStore creates an empty store
func NewStore[S Signal]() *Store[S] {
	return &Store[S]{entries: make(map[ID]*storeEntry[S])}
}

// Meter returns the meter for id, creating it with a window of size samples if it does not exist
func (s *Store[S]) Meter(id ID, size int) (*Meter[S], error) {
	if e, found := s.entries[id]; found {
		e.touched = true
		return e.meter, nil
	}
	m, err := NewMeter[S](size)
	if err != nil {
		return nil, err
	}
	s.entries[id] = &storeEntry[S]{meter: m, touched: true}
	return m, nil
}

// Contains reports whether a meter is held for id
func (s *Store[S]) Contains(id ID) bool {
	_, found := s.entries[id]
	return found
}

// Evict drops the meter for id
func (s *Store[S]) Evict(id ID) {
	delete(s.entries, id)
}

// Len returns the number of meters held
func (s *Store[S]) Len() int {
	return len(s.entries)
}

// Sweep evicts every meter that was not used since the previous Sweep and returns how many were
// evicted. Call it once per frame, after all faders have ticked.
func (s *Store[S]) Sweep() int {
	evicted := 0
	for id, e := range s.entries {
		if !e.touched {
			delete(s.entries, id)
			evicted++
			continue
		}
		e.touched = false
	}
	return evicted
}

// Registry groups the mono and stereo stores of a console
type Registry struct {
	mono   *Store[Mono]
	stereo *Store[Stereo]
}

// NewRegistry creates a registry with empty stores
func NewRegistry() *Registry {
	return &Registry{
		mono:   NewStore[Mono](),
		stereo: NewStore[Stereo](),
	}
}

// Mono returns the store for single-channel faders
func (r *Registry) Mono() *Store[Mono] {
	return r.mono
}

// Stereo returns the store for two-channel faders
func (r *Registry) Stereo() *Store[Stereo] {
	return r.stereo
}

// Sweep sweeps both stores and returns the total number of meters evicted
func (r *Registry) Sweep() int {
	return r.mono.Sweep() + r.stereo.Sweep()
}
