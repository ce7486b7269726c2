package wheelapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/entry"
	ui "github.com/elizafairlady/go-wheel/libui"
	"github.com/elizafairlady/go-wheel/proto"
	"github.com/elizafairlady/go-wheel/theme"
	"github.com/elizafairlady/go-wheel/wheel"
)

var (
	ErrUnknownAction = errors.New("wheelapp: unknown action")
	ErrStopped       = errors.New("wheelapp: not running")
)

// Options configures a Host.
type Options struct {
	Theme         *theme.Theme
	Spin          wheel.Options
	Clock         clockwork.Clock
	FrameInterval time.Duration
	Width, Height int

	// Seed for the spin draws. Zero seeds from the clock.
	Seed uint64

	// OnWinner is called on the loop goroutine once per settled spin
	// that lands on an entry.
	OnWinner func(label string)
}

// Host runs the app loop for one wheel. It translates ctl actions into
// store mutations and semantic events, draws the random numbers for
// spins, and publishes each new model for readers on other goroutines.
type Host struct {
	store  *entry.Store
	opts   Options
	reduce ui.Reducer
	rng    *rand.Rand // loop goroutine only

	events chan ui.Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool

	snap      atomic.Pointer[Model]
	lastRound int
	replies   []reply // answered once the model they produced is published
}

type reply struct {
	ch  chan error
	err error
}

// ctlRequest is an action posted by Ctl, answered on reply by the loop.
// A nil action means the store has changed and the loop should pick up
// its list.
type ctlRequest struct {
	action *proto.Action
	reply  chan error
}

// NewHost returns a host for the entries in store.
func NewHost(store *entry.Store, opts Options) *Host {
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Spin == (wheel.Options{}) {
		opts.Spin = wheel.DefaultOptions()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 400, 400
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(opts.Clock.Now().UnixNano())
	}

	h := &Host{
		store:  store,
		opts:   opts,
		reduce: Reducer(opts.Spin),
		rng:    rand.New(rand.NewPCG(seed, seed>>32|1)),
		events: make(chan ui.Event, 16),
		done:   make(chan struct{}),
	}
	m := Model{Entries: store.List()}
	h.snap.Store(&m)
	return h
}

// Bounds returns the rectangle the wheel is laid out in.
func (h *Host) Bounds() draw.Rectangle {
	return draw.Rect(0, 0, h.opts.Width, h.opts.Height)
}

// Snapshot returns the most recently published model.
func (h *Host) Snapshot() Model {
	return *h.snap.Load()
}

// Run runs the loop, painting onto surface (which may be nil), until
// Close is called and any spin has finished, or ctx is done.
func (h *Host) Run(ctx context.Context, surface draw.Canvas) (Model, error) {
	defer close(h.done)
	app := ui.App{
		Model:     h.Snapshot(),
		Reduce:    h.translateAndReduce,
		Draw:      Drawer(h.opts.Theme),
		Animating: Animating,
	}
	m, err := ui.Run(ctx, app, ui.Options{
		Clock:         h.opts.Clock,
		FrameInterval: h.opts.FrameInterval,
		Events:        h.events,
		Surface:       surface,
		Observe:       h.observe,
	})
	return m.(Model), err
}

// Close stops accepting input. Run returns once a running spin ends.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.closed = true
		close(h.events)
	}
}

// Done is closed when Run has returned.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

func (h *Host) stopped() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

// mutate applies an entry action to the store.
func (h *Host) mutate(a *proto.Action) error {
	switch a.Kind {
	case "add":
		_, err := h.store.Add(a.Get("label"))
		return err
	case "rm":
		return h.store.Remove(a.Get("id"))
	case "toggle":
		return h.store.Toggle(a.Get("id"))
	case "clear":
		return h.store.Clear()
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

// Post delivers a raw event to the loop.
func (h *Host) Post(ctx context.Context, ev ui.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrStopped
	}
	select {
	case h.events <- ev:
		return nil
	case <-h.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ctl executes one action line and waits for the loop to apply it.
// Actions:
//
//	add label=<label>
//	rm id=<id>
//	toggle id=<id>
//	clear
//	spin
//	dismiss
//	click x=<x> y=<y>
//
// A spin that cannot start is not an error. Entry actions are saved on
// the caller's goroutine; the loop only receives the resulting list, so
// a running spin never waits on storage.
func (h *Host) Ctl(ctx context.Context, line string) error {
	a, err := proto.ParseAction(line)
	if err != nil {
		return err
	}
	switch a.Kind {
	case "add", "rm", "toggle", "clear":
		if h.stopped() {
			return ErrStopped
		}
		if err := h.mutate(a); err != nil {
			return err
		}
		a = nil
	case "spin", "dismiss", "click":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}

	req := ctlRequest{action: a, reply: make(chan error, 1)}
	if err := h.Post(ctx, ui.Action(req)); err != nil {
		return err
	}
	select {
	case err := <-req.reply:
		return err
	case <-h.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PNG renders the current snapshot.
func (h *Host) PNG() ([]byte, error) {
	r := draw.NewRaster(h.opts.Width, h.opts.Height)
	Draw(h.opts.Theme, h.Snapshot(), r)
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// translateAndReduce translates raw ui.Event into semantic events,
// then calls the reducer. This glue lives outside the reducer so that
// it stays pure.
func (h *Host) translateAndReduce(model any, ev ui.Event) any {
	m := model.(Model)

	switch ev.Kind {
	case ui.KindMouse:
		ms := ev.Data.(ui.Mouse)
		if ms.Buttons&1 != 0 {
			return h.click(m, ev.At, ms.X, ms.Y)
		}
		return m

	case ui.KindAction:
		if req, ok := ev.Data.(ctlRequest); ok {
			m, err := h.apply(m, ev.At, req.action)
			h.replies = append(h.replies, reply{req.reply, err})
			return m
		}
	}

	return h.reduce(m, ev)
}

func (h *Host) apply(m Model, at time.Time, a *proto.Action) (Model, error) {
	if a == nil {
		return h.step(m, at, EntriesChanged{List: h.store.List()}), nil
	}
	switch a.Kind {
	case "spin":
		return h.spin(m, at), nil
	case "dismiss":
		return h.step(m, at, DismissWinner{}), nil
	case "click":
		x, err := a.Int("x")
		if err != nil {
			return m, err
		}
		y, err := a.Int("y")
		if err != nil {
			return m, err
		}
		return h.click(m, at, x, y), nil
	}
	return m, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

// click spins on the hub and dismisses on the banner.
func (h *Host) click(m Model, at time.Time, x, y int) Model {
	switch {
	case HitHub(h.Bounds(), h.opts.Theme, x, y):
		return h.spin(m, at)
	case m.Winner != "" && HitBanner(h.Bounds(), x, y):
		return h.step(m, at, DismissWinner{})
	}
	return m
}

func (h *Host) spin(m Model, at time.Time) Model {
	next := h.step(m, at, SpinRequest{U1: h.rng.Float64(), U2: h.rng.Float64()})
	if next.Spin.Spinning && !m.Spin.Spinning {
		log.Debug().
			Int("entries", len(next.Active())).
			Float64("distance", next.Spin.Distance).
			Msg("spin started")
	}
	return next
}

func (h *Host) step(m Model, at time.Time, data any) Model {
	return h.reduce(m, ui.Event{Kind: ui.KindAction, Data: data, At: at}).(Model)
}

// observe publishes each model, answers waiting Ctl calls, and
// reports new winners.
func (h *Host) observe(model any) {
	m := model.(Model)
	h.snap.Store(&m)
	for _, r := range h.replies {
		r.ch <- r.err
	}
	h.replies = h.replies[:0]

	if m.Round == h.lastRound {
		return
	}
	h.lastRound = m.Round
	log.Debug().
		Str("winner", m.Winner).
		Float64("rotation", m.Spin.Rotation).
		Int("round", m.Round).
		Msg("spin settled")
	if h.opts.OnWinner != nil {
		h.opts.OnWinner(m.Winner)
	}
}
