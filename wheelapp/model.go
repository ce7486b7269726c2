// Package wheelapp is the Wheel of Names application built on the ui
// loop: a model, the semantic events that change it, a pure reducer,
// a draw function, hit-testing, and the Host that glues them to an
// entry store and to callers on other goroutines.
package wheelapp

import (
	"github.com/elizafairlady/go-wheel/entry"
	"github.com/elizafairlady/go-wheel/wheel"
)

// Model represents the application state.
type Model struct {
	Entries entry.List
	Spin    wheel.Spin
	Winner  string // label of the last winner, until dismissed
	Round   int    // bumped once per reported winner
}

// Active returns the entries currently on the wheel.
func (m Model) Active() []entry.Entry {
	return m.Entries.Active()
}

// Animating reports whether the wheel is spinning.
func Animating(model any) bool {
	return model.(Model).Spin.Spinning
}
