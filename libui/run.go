package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/elizafairlady/go-wheel/draw"
)

// DefaultFrameInterval is about sixty frames a second.
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures Run.
type Options struct {
	// Clock stamps events and drives frame ticks. Nil means the real
	// clock.
	Clock clockwork.Clock

	// FrameInterval is the time between ticks while animating.
	FrameInterval time.Duration

	// Events feeds the loop. Closing it ends Run once any running
	// animation has finished.
	Events <-chan Event

	// Surface is repainted after every event. It may be nil.
	Surface draw.Canvas

	// Observe, if set, sees every new model before it is drawn.
	Observe func(model any)
}

// Run is the main event loop. It owns the model: events and frame ticks
// are reduced one at a time on the calling goroutine, and the surface
// is repainted after each. It returns the final model when Events is
// closed and nothing is animating, or ctx.Err() when ctx is done.
func Run(ctx context.Context, app App, opts Options) (any, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	model := app.Model
	if err := paint(app, model, opts.Surface); err != nil {
		return model, err
	}

	var ticker clockwork.Ticker
	var ticks <-chan time.Time
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, ticks = nil, nil
		}
	}
	defer stopTicker()

	// start or stop frame ticks to match the model
	syncTicker := func() {
		switch on := app.animating(model); {
		case on && ticker == nil:
			ticker = clk.NewTicker(interval)
			ticks = ticker.Chan()
		case !on:
			stopTicker()
		}
	}
	syncTicker()

	events := opts.Events
	for {
		if events == nil && ticks == nil {
			return model, nil
		}

		var ev Event
		select {
		case <-ctx.Done():
			return model, ctx.Err()
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			ev = e
		case <-ticks:
			ev = Event{Kind: KindTick}
		}
		ev.At = clk.Now()

		model = app.Reduce(model, ev)
		if opts.Observe != nil {
			opts.Observe(model)
		}
		if err := paint(app, model, opts.Surface); err != nil {
			return model, err
		}
		syncTicker()
	}
}

func paint(app App, model any, c draw.Canvas) error {
	if c == nil || app.Draw == nil {
		return nil
	}
	app.Draw(model, c)
	if err := c.Flush(); err != nil {
		return fmt.Errorf("ui: draw: %w", err)
	}
	return nil
}
