package round

// Phase is the round state.
type Phase uint8

const (
	Betting Phase = iota
	Rolling1
	Hold
	Rolling2
	Presenting
	Finished
)

func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Rolling1:
		return "rolling1"
	case Hold:
		return "hold"
	case Rolling2:
		return "rolling2"
	case Presenting:
		return "presenting"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Rolling reports whether dice are under physics in this phase.
func (p Phase) Rolling() bool { return p == Rolling1 || p == Rolling2 }

// CanStart reports whether a new round may begin from this phase.
func (p Phase) CanStart() bool { return p == Betting || p == Finished }
