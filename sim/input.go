package sim

// InputEvent is a discrete input delivered to Advance in arrival order
type InputEvent int

const (
	MoveUpPressed InputEvent = iota + 1
	MoveDownPressed
	MoveDownReleased
	Quit
)

func (e InputEvent) String() string {
	switch e {
	case MoveUpPressed:
		return "move-up-pressed"
	case MoveDownPressed:
		return "move-down-pressed"
	case MoveDownReleased:
		return "move-down-released"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}
