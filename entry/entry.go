// Package entry holds the names a wheel is spun over: the Entry record,
// pure operations on an ordered List of them, and a Store that persists
// the list and tells subscribers when it changes.
package entry

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyLabel = errors.New("entry: empty label")
	ErrNotFound   = errors.New("entry: not found")
)

// Entry is a single candidate name with an inclusion flag. ID is
// assigned once at creation and never changes.
type Entry struct {
	ID       string `json:"id"`
	Label    string `json:"text"`
	Included bool   `json:"isIncluded"`
}

// New returns an included entry with a fresh id. The label is trimmed;
// a blank label is ErrEmptyLabel.
func New(label string) (Entry, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Entry{}, ErrEmptyLabel
	}
	return Entry{ID: uuid.NewString(), Label: label, Included: true}, nil
}

// List is an ordered collection of entries, in insertion order.
// Operations return a new List and never modify the receiver's
// backing array.
type List []Entry

// Add returns l with e appended.
func (l List) Add(e Entry) List {
	out := make(List, 0, len(l)+1)
	out = append(out, l...)
	return append(out, e)
}

// Remove returns l without the entry id.
func (l List) Remove(id string) (List, error) {
	i := l.index(id)
	if i < 0 {
		return l, ErrNotFound
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), nil
}

// Toggle returns l with the inclusion flag of id flipped.
func (l List) Toggle(id string) (List, error) {
	i := l.index(id)
	if i < 0 {
		return l, ErrNotFound
	}
	out := l.clone()
	out[i].Included = !out[i].Included
	return out, nil
}

// Clear returns an empty list.
func (l List) Clear() List {
	return List{}
}

// Find returns the entry with the given id.
func (l List) Find(id string) (Entry, bool) {
	if i := l.index(id); i >= 0 {
		return l[i], true
	}
	return Entry{}, false
}

// Active returns the included entries in list order. It is computed on
// every call.
func (l List) Active() []Entry {
	var out []Entry
	for _, e := range l {
		if e.Included {
			out = append(out, e)
		}
	}
	return out
}

// Labels returns the labels of l, in order.
func (l List) Labels() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Label
	}
	return out
}

func (l List) index(id string) int {
	for i, e := range l {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l List) clone() List {
	return append(List(nil), l...)
}

// dedupe drops entries whose id was already seen, or that have no id
// or label.
func dedupe(l List) List {
	seen := make(map[string]bool, len(l))
	out := make(List, 0, len(l))
	for _, e := range l {
		if e.ID == "" || strings.TrimSpace(e.Label) == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}
