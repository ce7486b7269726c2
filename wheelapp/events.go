package wheelapp

import "github.com/elizafairlady/go-wheel/entry"

// EntriesChanged carries a new snapshot of the entry list.
type EntriesChanged struct {
	List entry.List
}

// SpinRequest asks for a spin. U1 and U2 are uniform draws in [0, 1)
// that pick the number of turns and the final offset.
type SpinRequest struct {
	U1, U2 float64
}

// DismissWinner clears the displayed winner.
type DismissWinner struct{}
