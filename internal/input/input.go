// Package input translates raw per-frame button state into the snapshot
// the game core consumes. The shell owns the raw source (keyboard, script,
// whatever); this package owns edge detection, so the core only ever sees
// "held" and "tapped this tick" flags.
package input

// Button identifies one of the six logical buttons as a bitmask bit.
type Button uint8

const (
	Confirm Button = 1 << iota
	Cancel
	Left
	Right
	Up
	Down
)

// String returns the button name
func (b Button) String() string {
	switch b {
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "?"
	}
}

// Mask is a set of buttons
type Mask uint8

// Has reports whether the mask contains the button
func (m Mask) Has(b Button) bool {
	return m&Mask(b) != 0
}

// With returns the mask with the buttons added
func (m Mask) With(buttons ...Button) Mask {
	for _, b := range buttons {
		m |= Mask(b)
	}
	return m
}

// Snapshot is one tick's worth of input for a participant: which buttons
// are currently held, and which went down this tick.
type Snapshot struct {
	held   Mask
	tapped Mask
}

// NewSnapshot builds a snapshot from explicit held and tapped masks.
// Mostly useful for scripted input; interactive shells should go through
// a Tracker.
func NewSnapshot(held, tapped Mask) Snapshot {
	return Snapshot{held: held, tapped: tapped}
}

// Tap returns a snapshot in which the given buttons are both held and
// newly pressed, which is how a scripted single-tick press looks.
func Tap(buttons ...Button) Snapshot {
	m := Mask(0).With(buttons...)
	return Snapshot{held: m, tapped: m}
}

// Held reports whether the button is currently down
func (s Snapshot) Held(b Button) bool {
	return s.held.Has(b)
}

// Tapped reports whether the button went down this tick
func (s Snapshot) Tapped(b Button) bool {
	return s.tapped.Has(b)
}

// Tracker computes edge-triggered taps by comparing each tick's mask
// against the previous tick's.
type Tracker struct {
	prev Mask
}

// Capture records the current mask and returns the tick's snapshot.
// A button is tapped when it is down now and was up last tick.
func (t *Tracker) Capture(current Mask) Snapshot {
	tapped := current &^ t.prev
	t.prev = current
	return Snapshot{held: current, tapped: tapped}
}

// Reset clears the tracker's memory of the previous tick
func (t *Tracker) Reset() {
	t.prev = 0
}
