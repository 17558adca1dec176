// Package history provides the fixed-length rolling windows that back the
// bar-graph view, one per tracked variable.
package history

// Sentinel is the value a fresh window is filled with.
const Sentinel = 1.0

// Window is a fixed-capacity FIFO of the most recent samples, oldest first.
// Its length never changes after NewWindow.
type Window struct {
	Values []float64
}

// NewWindow creates a window of width copies of fill.
func NewWindow(width int, fill float64) *Window {
	if width < 1 {
		width = 1
	}
	v := make([]float64, width)
	for i := range v {
		v[i] = fill
	}
	return &Window{Values: v}
}

// Push drops the oldest sample, appends v and returns the window contents.
// The returned slice is owned by the window.
func (w *Window) Push(v float64) []float64 {
	copy(w.Values, w.Values[1:])
	w.Values[len(w.Values)-1] = v
	return w.Values
}

// Len returns the window width.
func (w *Window) Len() int { return len(w.Values) }

// Last returns the most recent sample.
func (w *Window) Last() float64 {
	return w.Values[len(w.Values)-1]
}

// Bounds returns the smallest and largest samples in the window.
func (w *Window) Bounds() (lo, hi float64) {
	lo, hi = w.Values[0], w.Values[0]
	for _, v := range w.Values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Avg returns the mean of the window.
func (w *Window) Avg() float64 {
	sum := 0.0
	for _, v := range w.Values {
		sum += v
	}
	return sum / float64(len(w.Values))
}

// Snapshot returns a copy of the window contents.
func (w *Window) Snapshot() []float64 {
	out := make([]float64, len(w.Values))
	copy(out, w.Values)
	return out
}

// Store holds one window per variable, indexed by declaration order.
type Store struct {
	windows []*Window
}

// NewStore creates n windows of the given width, each filled with Sentinel.
func NewStore(n, width int) *Store {
	s := &Store{windows: make([]*Window, n)}
	for i := range s.windows {
		s.windows[i] = NewWindow(width, Sentinel)
	}
	return s
}

// Record pushes a sample into variable i's window.
func (s *Store) Record(i int, v float64) []float64 {
	return s.windows[i].Push(v)
}

// Get returns variable i's window.
func (s *Store) Get(i int) *Window {
	return s.windows[i]
}

// Len returns the number of variables tracked.
func (s *Store) Len() int { return len(s.windows) }

// Latest returns the most recent sample of every variable.
func (s *Store) Latest() []float64 {
	out := make([]float64, len(s.windows))
	for i, w := range s.windows {
		out[i] = w.Last()
	}
	return out
}
