package tooltip

// PaintFunc receives the tooltip the host should draw. An empty tooltip means clear.
type PaintFunc func(Tooltip)

// Tracker connects host hover events to the formatter.
// The host owns pointer state and calls Move on every hover change and Leave
// when the pointer exits the chart. Each call formats synchronously and paints
// before returning. A Tracker is not safe for concurrent use; hover events are
// delivered on the host's UI thread.
type Tracker struct {
	paint   PaintFunc
	current Tooltip
}

// NewTracker creates a tracker that paints through fn
func NewTracker(fn PaintFunc) *Tracker {
	if fn == nil {
		fn = func(Tooltip) {}
	}
	return &Tracker{paint: fn}
}

// Move handles a hover change to point. A nil point behaves like Leave.
func (t *Tracker) Move(point *ActivePoint) Tooltip {
	t.current = Format(point)
	t.paint(t.current)
	return t.current
}

// Leave clears the tooltip
func (t *Tracker) Leave() {
	t.current = Tooltip{}
	t.paint(t.current)
}

// Current returns the tooltip last painted
func (t *Tracker) Current() Tooltip {
	return t.current
}
