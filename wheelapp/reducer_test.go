package wheelapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/entry"
	ui "github.com/elizafairlady/go-wheel/libui"
	"github.com/elizafairlady/go-wheel/theme"
	"github.com/elizafairlady/go-wheel/wheel"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func list(labels ...string) entry.List {
	l := entry.List{}
	for _, s := range labels {
		l = l.Add(entry.Entry{ID: s, Label: s, Included: true})
	}
	return l
}

func act(data any, at time.Time) ui.Event {
	return ui.Event{Kind: ui.KindAction, Data: data, At: at}
}

func tickAt(at time.Time) ui.Event {
	return ui.Event{Kind: ui.KindTick, At: at}
}

func TestReduceSpinToWinner(t *testing.T) {
	opts := wheel.DefaultOptions()
	m := Reduce(opts, Model{}, act(EntriesChanged{list("Alice", "Bob", "Carol", "Dave")}, t0))

	m = Reduce(opts, m, act(SpinRequest{U1: 0.5, U2: 0.25}, t0))
	require.True(t, m.Spin.Spinning)
	assert.InDelta(t, opts.Distance(0.5, 0.25), m.Spin.Distance, 1e-12)

	m = Reduce(opts, m, tickAt(t0.Add(time.Second)))
	assert.True(t, m.Spin.Spinning)
	assert.Empty(t, m.Winner)

	m = Reduce(opts, m, tickAt(t0.Add(opts.Duration)))
	require.False(t, m.Spin.Spinning)
	assert.Equal(t, opts.Distance(0.5, 0.25), m.Spin.Rotation)
	want, _ := wheel.Winner(m.Active(), m.Spin.Rotation)
	assert.Equal(t, want.Label, m.Winner)
	assert.Equal(t, 1, m.Round)

	// further ticks do not report again
	again := Reduce(opts, m, tickAt(t0.Add(2*opts.Duration)))
	assert.Equal(t, m, again)

	m = Reduce(opts, m, act(DismissWinner{}, t0))
	assert.Empty(t, m.Winner)
	assert.Equal(t, 1, m.Round)
}

// The final offset 2π·u2 lands the pointer where we choose: with five
// whole turns and rotation starting at zero, pointer offset 1.2 picks
// Alice and 4.9 picks Dave.
func TestReduceScenario(t *testing.T) {
	opts := wheel.Options{MinSpins: 5, MaxSpins: 5, Duration: time.Second}
	for _, tc := range []struct {
		offset float64
		want   string
	}{
		{1.2, "Alice"},
		{4.9, "Dave"},
	} {
		u2 := wheel.Normalize(wheel.PointerAngle-tc.offset) / wheel.TwoPi
		m := Reduce(opts, Model{Entries: list("Alice", "Bob", "Carol", "Dave")}, act(SpinRequest{U2: u2}, t0))
		m = Reduce(opts, m, tickAt(t0.Add(time.Second)))
		assert.InDelta(t, tc.offset, wheel.PointerOffset(m.Spin.Rotation), 1e-9)
		assert.Equal(t, tc.want, m.Winner)
	}
}

func TestReduceRejectsSpin(t *testing.T) {
	opts := wheel.DefaultOptions()

	empty := Model{Entries: list()}
	assert.Equal(t, empty, Reduce(opts, empty, act(SpinRequest{U1: 0.3}, t0)))

	excluded := Model{Entries: entry.List{{ID: "x", Label: "x", Included: false}}}
	assert.Equal(t, excluded, Reduce(opts, excluded, act(SpinRequest{U1: 0.3}, t0)))

	m := Reduce(opts, Model{Entries: list("a", "b")}, act(SpinRequest{U1: 0.1, U2: 0.1}, t0))
	busy := Reduce(opts, m, act(SpinRequest{U1: 0.9, U2: 0.9}, t0.Add(time.Second)))
	assert.Equal(t, m, busy)
}

func TestReduceMidSpinRemoval(t *testing.T) {
	opts := wheel.DefaultOptions()
	m := Reduce(opts, Model{Entries: list("a", "b", "c")}, act(SpinRequest{U1: 0.2, U2: 0.7}, t0))
	m = Reduce(opts, m, tickAt(t0.Add(500*time.Millisecond)))
	rot := m.Spin.Rotation

	m = Reduce(opts, m, act(EntriesChanged{entry.List{}}, t0.Add(time.Second)))
	assert.Equal(t, wheel.Spin{Rotation: rot}, m.Spin)

	m = Reduce(opts, m, tickAt(t0.Add(opts.Duration)))
	assert.Empty(t, m.Winner)
	assert.Zero(t, m.Round)
	assert.False(t, m.Spin.Spinning)
}

func TestReduceRemovalKeepsSpinWhileEntriesRemain(t *testing.T) {
	opts := wheel.DefaultOptions()
	m := Reduce(opts, Model{Entries: list("a", "b", "c")}, act(SpinRequest{U1: 0.2, U2: 0.7}, t0))
	m = Reduce(opts, m, act(EntriesChanged{list("c")}, t0.Add(time.Second)))
	require.True(t, m.Spin.Spinning)
	m = Reduce(opts, m, tickAt(t0.Add(opts.Duration)))
	assert.Equal(t, "c", m.Winner)
}

func TestAnimating(t *testing.T) {
	assert.False(t, Animating(Model{}))
	assert.True(t, Animating(Model{Spin: wheel.Spin{Spinning: true}}))
}

func TestDrawBanner(t *testing.T) {
	th := theme.Default()
	rec := draw.NewRecorder(draw.Rect(0, 0, 400, 400))
	m := Model{Entries: list("Alice", "Bob"), Winner: "Bob"}
	Draw(th, m, rec)

	strs := rec.Kind(draw.OpString)
	require.NotEmpty(t, strs)
	last := strs[len(strs)-1]
	assert.Equal(t, "Winner: Bob", last.Text)
	assert.Equal(t, BannerRect(rec.Bounds()).Center(), last.Center)

	rec.Reset()
	m.Spin.Spinning = true
	Draw(th, m, rec)
	for _, s := range rec.Kind(draw.OpString) {
		assert.NotContains(t, s.Text, "Winner")
	}
}

func TestHit(t *testing.T) {
	th := theme.Default()
	b := draw.Rect(0, 0, 400, 400)
	assert.True(t, HitHub(b, th, 200, 200))
	assert.True(t, HitHub(b, th, 200+th.HubRadius, 200))
	assert.False(t, HitHub(b, th, 200+th.HubRadius+1, 200))
	assert.False(t, HitHub(draw.Rect(0, 0, 10, 10), th, 5, 5))

	r := BannerRect(b)
	assert.True(t, HitBanner(b, r.Center().X, r.Center().Y))
	assert.False(t, HitBanner(b, 200, 200))
}
