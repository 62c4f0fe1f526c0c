package combat

// TimeScale is the process-wide simulation speed. Temporary overrides nest:
// the one that expires last is in effect, and the base scale comes back
// once every override has expired.
type TimeScale struct {
	base      float64
	current   float64
	overrides []scaleOverride
	nextID    int
	listeners []func(scale float64)
}

type scaleOverride struct {
	id      int
	scale   float64
	expires int64
}

// NewTimeScale returns a time scale resting at base.
func NewTimeScale(base float64) *TimeScale {
	if base <= 0 {
		base = 1
	}
	return &TimeScale{base: base, current: base}
}

// Scale returns the effective scale.
func (t *TimeScale) Scale() float64 {
	return t.current
}

func (t *TimeScale) Base() float64 {
	return t.base
}

// Active returns the number of overrides that have not expired yet.
func (t *TimeScale) Active() int {
	return len(t.overrides)
}

// OnChange registers fn to run whenever the effective scale changes.
func (t *TimeScale) OnChange(fn func(scale float64)) {
	if fn != nil {
		t.listeners = append(t.listeners, fn)
	}
}

// Push installs an override lasting frames real frames from now and returns
// its id. Non-positive durations or scales are ignored and return 0.
func (t *TimeScale) Push(scale float64, frames int64, now int64) int {
	if scale <= 0 || frames <= 0 {
		return 0
	}
	t.nextID++
	t.overrides = append(t.overrides, scaleOverride{id: t.nextID, scale: scale, expires: now + frames})
	t.recompute()
	return t.nextID
}

// Advance drops the overrides that expired at or before now.
func (t *TimeScale) Advance(now int64) {
	kept := t.overrides[:0]
	for _, o := range t.overrides {
		if o.expires > now {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(t.overrides) {
		return
	}
	for i := len(kept); i < len(t.overrides); i++ {
		t.overrides[i] = scaleOverride{}
	}
	t.overrides = kept
	t.recompute()
}

func (t *TimeScale) recompute() {
	next := t.base
	var winner *scaleOverride
	for i := range t.overrides {
		o := &t.overrides[i]
		if winner == nil || o.expires > winner.expires || (o.expires == winner.expires && o.id > winner.id) {
			winner = o
		}
	}
	if winner != nil {
		next = winner.scale
	}
	if next == t.current {
		return
	}
	t.current = next
	for _, fn := range t.listeners {
		fn(next)
	}
}
