package wheel

import "github.com/elizafairlady/go-wheel/entry"

// WinnerIndex returns the index of the sector under the pointer for n
// sectors at rotation, or -1 when n is 0.
func WinnerIndex(n int, rotation float64) int {
	if n < 1 {
		return -1
	}
	return SectorIndex(PointerOffset(rotation), n)
}

// Winner returns the active entry under the pointer at rotation. It
// reports false when active is empty.
func Winner(active []entry.Entry, rotation float64) (entry.Entry, bool) {
	i := WinnerIndex(len(active), rotation)
	if i < 0 {
		return entry.Entry{}, false
	}
	return active[i], true
}
