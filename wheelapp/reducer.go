package wheelapp

import (
	ui "github.com/elizafairlady/go-wheel/libui"
	"github.com/elizafairlady/go-wheel/wheel"
)

// Reducer returns the reducer for spins configured by opts.
func Reducer(opts wheel.Options) ui.Reducer {
	return func(model any, ev ui.Event) any {
		return Reduce(opts, model.(Model), ev)
	}
}

// Reduce handles all state transitions.
// This is a pure function - no drawing, no storage, no randomness.
func Reduce(opts wheel.Options, m Model, ev ui.Event) Model {
	if ev.Kind == ui.KindTick {
		return tick(opts, m, ev)
	}

	switch e := ev.Data.(type) {
	case EntriesChanged:
		m.Entries = e.List
		// nothing left to land on: stop without a winner
		if m.Spin.Spinning && len(m.Active()) == 0 {
			m.Spin = m.Spin.Halt()
		}

	case SpinRequest:
		s, ok := m.Spin.Begin(len(m.Active()), ev.At, opts.Distance(e.U1, e.U2))
		if ok {
			m.Spin = s
			m.Winner = ""
		}

	case DismissWinner:
		m.Winner = ""
	}

	return m
}

func tick(opts wheel.Options, m Model, ev ui.Event) Model {
	s, settled := m.Spin.Advance(ev.At, opts.Duration)
	m.Spin = s
	if !settled {
		return m
	}
	if w, ok := wheel.Winner(m.Active(), s.Rotation); ok {
		m.Winner = w.Label
		m.Round++
	}
	return m
}
