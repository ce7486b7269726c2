package entry

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultKey is the storage key the list is saved under.
const DefaultKey = "wheelOfNames_savedNames"

// Store owns the entry list. Every mutation is saved to storage and
// then announced to subscribers with the new snapshot.
type Store struct {
	storage Storage
	key     string

	save sync.Mutex // serializes mutations and their writes

	mu   sync.Mutex // guards list and subs; never held across I/O
	list List
	subs []func(List)
}

// Open returns a store backed by s, loaded from key (DefaultKey if
// empty). Loading is best effort: a value that does not parse is logged
// and discarded. Only a failing Storage is an error.
func Open(s Storage, key string) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	st := &Store{storage: s, key: key, list: List{}}

	b, ok, err := s.Get(key)
	if err != nil {
		return nil, fmt.Errorf("entry: load: %w", err)
	}
	if !ok {
		return st, nil
	}
	var l List
	if err := json.Unmarshal(b, &l); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding saved names")
		return st, nil
	}
	st.list = dedupe(l)
	if dropped := len(l) - len(st.list); dropped > 0 {
		log.Warn().Int("dropped", dropped).Str("key", key).Msg("dropped invalid saved names")
	}
	return st, nil
}

// List returns the current snapshot.
func (s *Store) List() List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

// Subscribe registers fn to be called with each new snapshot.
func (s *Store) Subscribe(fn func(List)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Add appends a new included entry with the given label.
func (s *Store) Add(label string) (Entry, error) {
	e, err := New(label)
	if err != nil {
		return Entry{}, err
	}
	err = s.update(func(l List) (List, error) { return l.Add(e), nil })
	return e, err
}

func (s *Store) Remove(id string) error {
	return s.update(func(l List) (List, error) { return l.Remove(id) })
}

func (s *Store) Toggle(id string) error {
	return s.update(func(l List) (List, error) { return l.Toggle(id) })
}

func (s *Store) Clear() error {
	return s.update(func(l List) (List, error) { return l.Clear(), nil })
}

// update applies fn, saves, and notifies. On any error the list is left
// as it was. Readers of List are not blocked while storage is written.
func (s *Store) update(fn func(List) (List, error)) error {
	s.save.Lock()
	defer s.save.Unlock()

	next, err := fn(s.List())
	if err != nil {
		return err
	}
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("entry: encode: %w", err)
	}
	if err := s.storage.Set(s.key, b); err != nil {
		return fmt.Errorf("entry: save: %w", err)
	}

	s.mu.Lock()
	s.list = next
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}
