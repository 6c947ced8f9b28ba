package models

// Button is one of the three attendance choices a user can make for a
// subject on the current day.
type Button string

const (
	ButtonAttended Button = "attended"
	ButtonMissed   Button = "missed"
	ButtonNoClass  Button = "noClass"
)

func ParseButton(s string) (Button, bool) {
	switch b := Button(s); b {
	case ButtonAttended, ButtonMissed, ButtonNoClass:
		return b, true
	}
	return "", false
}

// DayState is a subject's toggle state for one day. The zero value means
// no button is active. A non-zero state carries the active button and the
// date it applies to, so a stale date can never be mistaken for today's
// selection.
type DayState struct {
	Button Button
	Date   string
}

func (s DayState) Active() bool {
	return s.Button != ""
}

// Transition is the outcome of pressing a button: counter deltas to apply
// and the resulting state. Total is always re-derived from the counters,
// so it has no delta of its own.
type Transition struct {
	AttendedDelta int
	MissedDelta   int
	State         DayState
}

// Press applies one button press to today's state.
//
// Pressing the active button deselects it: the press's counter is undone
// and the state returns to none. Pressing a different button first undoes
// the previously active button's counter, then counts the new one. noClass
// carries no counter, so its presses only move the state. Every transition
// undoes the prior increment before applying the new one, which keeps the
// day at no more than one counted event per subject.
func (s DayState) Press(b Button, today string) Transition {
	tr := Transition{}
	if s.Active() && s.Button == b {
		tr.count(b, -1)
		tr.State = DayState{}
		return tr
	}
	if s.Active() {
		tr.count(s.Button, -1)
	}
	tr.count(b, +1)
	tr.State = DayState{Button: b, Date: today}
	return tr
}

func (tr *Transition) count(b Button, delta int) {
	switch b {
	case ButtonAttended:
		tr.AttendedDelta += delta
	case ButtonMissed:
		tr.MissedDelta += delta
	}
}
