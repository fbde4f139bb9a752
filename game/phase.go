package game

// Status represents where a board is in its lifecycle. A board starts out
// playing and can move to won exactly once; there is no transition out of won.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
)

type status struct {
	_value Status
}

func newStatus() status {
	return status{_value: StatusPlaying}
}

func (s *status) value() Status {
	return s._value
}

func (s *status) won() bool {
	return s._value == StatusWon
}

// setWon is the only transition. Calling it again is a no-op.
func (s *status) setWon() {
	s._value = StatusWon
}
