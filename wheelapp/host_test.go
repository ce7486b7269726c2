package wheelapp

import (
	"bytes"
	"context"
	"image/png"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/entry"
	ui "github.com/elizafairlady/go-wheel/libui"
	"github.com/elizafairlady/go-wheel/wheel"
)

const frame = 16 * time.Millisecond

type harness struct {
	t       *testing.T
	fc      *clockwork.FakeClock
	store   *entry.Store
	host    *Host
	winners chan string
	result  chan Model
	rec     *draw.Recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, entry.NewMemStorage())
}

func newHarnessWith(t *testing.T, storage entry.Storage) *harness {
	t.Helper()
	store, err := entry.Open(storage, "")
	require.NoError(t, err)

	h := &harness{
		t:       t,
		fc:      clockwork.NewFakeClock(),
		store:   store,
		winners: make(chan string, 8),
		result:  make(chan Model, 1),
	}
	h.host = NewHost(store, Options{
		Clock:         h.fc,
		FrameInterval: frame,
		Seed:          99,
		Spin:          wheel.Options{MinSpins: 5, MaxSpins: 10, Duration: time.Second},
		OnWinner:      func(label string) { h.winners <- label },
	})
	h.rec = draw.NewRecorder(h.host.Bounds())
	go func() {
		m, err := h.host.Run(context.Background(), h.rec)
		assert.NoError(t, err)
		h.result <- m
	}()
	t.Cleanup(func() {
		h.host.Close()
		<-h.host.Done()
	})
	return h
}

func (h *harness) ctl(line string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.host.Ctl(ctx, line)
}

// settle advances the fake clock until the wheel stops.
func (h *harness) settle() {
	h.t.Helper()
	deadline := time.After(5 * time.Second)
	for h.host.Snapshot().Spin.Spinning {
		select {
		case <-deadline:
			h.t.Fatal("spin did not settle")
		case <-time.After(time.Millisecond):
			h.fc.Advance(frame)
		}
	}
}

func TestHostSpinReportsWinnerOnce(t *testing.T) {
	h := newHarness(t)
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.NoError(t, h.ctl("add label="+name))
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, h.host.Snapshot().Entries.Labels())

	require.NoError(t, h.ctl("spin"))
	require.True(t, h.host.Snapshot().Spin.Spinning)
	require.NoError(t, h.ctl("spin"), "a second spin is ignored, not an error")

	h.settle()
	m := h.host.Snapshot()
	want, ok := wheel.Winner(m.Active(), m.Spin.Rotation)
	require.True(t, ok)
	assert.Equal(t, want.Label, m.Winner)
	assert.Equal(t, 1, m.Round)

	select {
	case got := <-h.winners:
		assert.Equal(t, want.Label, got)
	case <-time.After(time.Second):
		t.Fatal("no winner reported")
	}

	require.NoError(t, h.ctl("dismiss"))
	assert.Empty(t, h.host.Snapshot().Winner)
	assert.Empty(t, h.winners, "reported exactly once")
	assert.Greater(t, h.rec.Flushes, 2)
}

func TestHostMidSpinClear(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctl("add label=a"))
	require.NoError(t, h.ctl("add label=b"))
	require.NoError(t, h.ctl("add label=c"))
	require.NoError(t, h.ctl("spin"))
	require.NoError(t, h.ctl("clear"))

	m := h.host.Snapshot()
	assert.False(t, m.Spin.Spinning)
	assert.Empty(t, m.Entries)
	assert.Empty(t, h.store.List(), "clear reached the store")

	h.fc.Advance(2 * time.Second)
	require.NoError(t, h.ctl("dismiss"))
	assert.Empty(t, h.winners)
	assert.Zero(t, h.host.Snapshot().Round)
}

func TestHostCtlErrors(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.ctl("explode"), ErrUnknownAction)
	assert.ErrorIs(t, h.ctl("add"), entry.ErrEmptyLabel)
	assert.ErrorIs(t, h.ctl("rm id=nope"), entry.ErrNotFound)
	assert.ErrorIs(t, h.ctl("toggle id=nope"), entry.ErrNotFound)
	assert.Error(t, h.ctl("click x=1"))
	assert.Error(t, h.ctl(""))

	require.NoError(t, h.ctl("spin"), "spinning an empty wheel is a no-op")
	assert.False(t, h.host.Snapshot().Spin.Spinning)
}

func TestHostToggleAndRemove(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctl(`add label="Anne Marie"`))
	require.NoError(t, h.ctl("add label=Bob"))
	id := h.store.List()[0].ID

	require.NoError(t, h.ctl("toggle id="+id))
	assert.Equal(t, []string{"Bob"}, entry.List(h.host.Snapshot().Active()).Labels())

	require.NoError(t, h.ctl("rm id="+id))
	assert.Equal(t, []string{"Bob"}, h.host.Snapshot().Entries.Labels())
}

func TestHostClickHubSpins(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctl("add label=a"))
	require.NoError(t, h.ctl("click x=5 y=5"))
	assert.False(t, h.host.Snapshot().Spin.Spinning)

	c := h.host.Bounds().Center()
	ctx := context.Background()
	require.NoError(t, h.host.Post(ctx, ui.Event{Kind: ui.KindMouse, Data: ui.Mouse{X: c.X, Y: c.Y, Buttons: 1}}))
	// Ctl round-trips through the loop, so the mouse event has been seen
	require.NoError(t, h.ctl("dismiss"))
	assert.True(t, h.host.Snapshot().Spin.Spinning)
	h.settle()
	assert.Equal(t, "a", h.host.Snapshot().Winner)

	r := BannerRect(h.host.Bounds())
	require.NoError(t, h.ctl("click x="+strconv.Itoa(r.Center().X)+" y="+strconv.Itoa(r.Center().Y)))
	assert.Empty(t, h.host.Snapshot().Winner)
}

func TestHostCloseFinishesSpin(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctl("add label=only"))
	require.NoError(t, h.ctl("spin"))
	h.host.Close()
	assert.ErrorIs(t, h.ctl("spin"), ErrStopped)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case m := <-h.result:
			assert.False(t, m.Spin.Spinning)
			assert.Equal(t, "only", m.Winner)
			return
		case <-deadline:
			t.Fatal("Run did not return")
		case <-time.After(time.Millisecond):
			h.fc.Advance(frame)
		}
	}
}

func TestHostPNG(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctl("add label=a"))
	b, err := h.host.PNG()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

// slowStorage blocks Set while armed, until released.
type slowStorage struct {
	*entry.MemStorage
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowStorage) Set(key string, v []byte) error {
	if s.armed.Load() {
		s.entered <- struct{}{}
		<-s.release
	}
	return s.MemStorage.Set(key, v)
}

func (s *slowStorage) unblock() {
	s.once.Do(func() { close(s.release) })
}

func TestHostSavesOffTheLoop(t *testing.T) {
	st := &slowStorage{
		MemStorage: entry.NewMemStorage(),
		entered:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	h := newHarnessWith(t, st)
	t.Cleanup(st.unblock)

	require.NoError(t, h.ctl("add label=a"))
	require.NoError(t, h.ctl("spin"))
	require.True(t, h.host.Snapshot().Spin.Spinning)

	st.armed.Store(true)
	added := make(chan error, 1)
	go func() { added <- h.ctl("add label=b") }()
	select {
	case <-st.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("add never reached storage")
	}

	// the wheel keeps turning while the save is pending
	h.settle()
	m := h.host.Snapshot()
	assert.Equal(t, "a", m.Winner)
	assert.Equal(t, []string{"a"}, m.Entries.Labels())

	st.unblock()
	require.NoError(t, <-added)
	assert.Equal(t, []string{"a", "b"}, h.host.Snapshot().Entries.Labels())
}
