package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mk(id, label string, included bool) Entry {
	return Entry{ID: id, Label: label, Included: included}
}

func TestNew(t *testing.T) {
	e, err := New("  Alice \n")
	require.NoError(t, err)
	assert.Equal(t, "Alice", e.Label)
	assert.True(t, e.Included)
	assert.NotEmpty(t, e.ID)

	f, err := New("Alice")
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, f.ID)

	_, err = New("   ")
	assert.ErrorIs(t, err, ErrEmptyLabel)
}

func TestListOps(t *testing.T) {
	var l List
	l = l.Add(mk("a", "Alice", true))
	l = l.Add(mk("b", "Bob", true))
	l = l.Add(mk("c", "Carol", true))
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, l.Labels())

	toggled, err := l.Toggle("b")
	require.NoError(t, err)
	assert.True(t, l[1].Included, "receiver is not modified")
	assert.Equal(t, []string{"Alice", "Carol"}, List(toggled.Active()).Labels())

	removed, err := toggled.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Carol"}, removed.Labels())
	assert.Len(t, toggled, 3)

	e, ok := removed.Find("c")
	assert.True(t, ok)
	assert.Equal(t, "Carol", e.Label)
	_, ok = removed.Find("a")
	assert.False(t, ok)

	_, err = l.Remove("zzz")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Toggle("zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, l.Clear())
}

func TestActiveKeepsInsertionOrder(t *testing.T) {
	l := List{
		mk("1", "Dave", true),
		mk("2", "Alice", false),
		mk("3", "Carol", true),
		mk("4", "Bob", true),
	}
	assert.Equal(t, []string{"Dave", "Carol", "Bob"}, List(l.Active()).Labels())
	assert.Empty(t, List{mk("1", "x", false)}.Active())
}

func TestDedupe(t *testing.T) {
	l := List{
		mk("1", "Alice", true),
		mk("1", "Alice again", true),
		mk("", "No id", true),
		mk("2", "  ", true),
		mk("3", "Bob", false),
	}
	assert.Equal(t, List{mk("1", "Alice", true), mk("3", "Bob", false)}, dedupe(l))
}
