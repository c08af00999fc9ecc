package input

import "testing"

func TestTrackerEdgeDetection(t *testing.T) {
	var tr Tracker

	// First tick: confirm goes down, so it is both held and tapped.
	snap := tr.Capture(Mask(Confirm))
	if !snap.Held(Confirm) || !snap.Tapped(Confirm) {
		t.Fatal("expected confirm held and tapped on first press")
	}

	// Second tick: still down, held but no longer tapped.
	snap = tr.Capture(Mask(Confirm))
	if !snap.Held(Confirm) {
		t.Fatal("expected confirm still held")
	}
	if snap.Tapped(Confirm) {
		t.Fatal("held button must not re-tap")
	}

	// Released, then pressed again: tap fires again.
	snap = tr.Capture(0)
	if snap.Held(Confirm) || snap.Tapped(Confirm) {
		t.Fatal("expected no input after release")
	}
	snap = tr.Capture(Mask(Confirm))
	if !snap.Tapped(Confirm) {
		t.Fatal("expected tap after release and re-press")
	}
}

func TestTrackerIndependentButtons(t *testing.T) {
	var tr Tracker

	tr.Capture(Mask(Up))
	snap := tr.Capture(Mask(Up) | Mask(Confirm))

	if snap.Tapped(Up) {
		t.Error("up was already held, must not tap")
	}
	if !snap.Tapped(Confirm) {
		t.Error("confirm went down this tick, must tap")
	}
	if !snap.Held(Up) || !snap.Held(Confirm) {
		t.Error("both buttons should be held")
	}
}

func TestTap(t *testing.T) {
	snap := Tap(Left, Down)
	for _, b := range []Button{Left, Down} {
		if !snap.Tapped(b) || !snap.Held(b) {
			t.Errorf("expected %s tapped and held", b)
		}
	}
	if snap.Tapped(Confirm) {
		t.Error("confirm should not be tapped")
	}
}

func TestMaskWith(t *testing.T) {
	m := Mask(0).With(Confirm, Cancel)
	if !m.Has(Confirm) || !m.Has(Cancel) {
		t.Fatal("expected confirm and cancel in mask")
	}
	if m.Has(Left) {
		t.Fatal("left should not be in mask")
	}
}

func TestTrackerReset(t *testing.T) {
	var tr Tracker
	tr.Capture(Mask(Confirm))
	tr.Reset()

	snap := tr.Capture(Mask(Confirm))
	if !snap.Tapped(Confirm) {
		t.Fatal("after reset a held button counts as freshly pressed")
	}
}
