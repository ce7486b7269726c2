// Package ui provides a minimal reducer-driven control loop: one
// goroutine owns the model, every input becomes an Event, a pure
// reducer produces the next model, and a single draw path repaints it.
// Animation is driven by frame ticks from a clock, delivered only while
// the app says it is animating.
package ui

import "github.com/elizafairlady/go-wheel/draw"

// Reducer processes an event and returns a new model.
// Must be a pure function - never mutate the old model.
type Reducer func(model any, ev Event) any

// Drawer renders the model onto a canvas.
// Must be a pure function - never mutate model.
type Drawer func(model any, c draw.Canvas)

// App defines the application structure.
type App struct {
	Model  any
	Reduce Reducer
	Draw   Drawer

	// Animating reports whether the model needs frame ticks. Nil means
	// never.
	Animating func(model any) bool
}

func (a App) animating(model any) bool {
	return a.Animating != nil && a.Animating(model)
}
