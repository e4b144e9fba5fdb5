package round

import "github.com/lox/dicepoker/internal/hand"

// Monitor receives notifications as a round progresses. Calls happen on the
// goroutine that drives Tick and the request methods.
type Monitor interface {
	// OnRoundStart is called after the stakes are deducted.
	OnRoundStart(round, wager, credit int)

	// OnOpeningHand is called once the first roll settles.
	OnOpeningHand(round int, faces hand.Faces, h hand.Hand, oneRollPayout int)

	// OnRoundComplete is called once the final hand is paid. The credit in
	// the result is the balance to persist.
	OnRoundComplete(result Result)
}

// NullMonitor is a no-op implementation.
type NullMonitor struct{}

func (NullMonitor) OnRoundStart(int, int, int)                    {}
func (NullMonitor) OnOpeningHand(int, hand.Faces, hand.Hand, int) {}
func (NullMonitor) OnRoundComplete(Result)                        {}

// MultiMonitor fans events out to several monitors.
type MultiMonitor struct {
	monitors []Monitor
}

// NewMultiMonitor drops nil entries and returns a NullMonitor when nothing is
// left.
func NewMultiMonitor(monitors ...Monitor) Monitor {
	filtered := make([]Monitor, 0, len(monitors))
	for _, monitor := range monitors {
		if monitor != nil {
			filtered = append(filtered, monitor)
		}
	}

	switch len(filtered) {
	case 0:
		return NullMonitor{}
	case 1:
		return filtered[0]
	default:
		return MultiMonitor{monitors: filtered}
	}
}

func (m MultiMonitor) OnRoundStart(round, wager, credit int) {
	for _, monitor := range m.monitors {
		monitor.OnRoundStart(round, wager, credit)
	}
}

func (m MultiMonitor) OnOpeningHand(round int, faces hand.Faces, h hand.Hand, oneRollPayout int) {
	for _, monitor := range m.monitors {
		monitor.OnOpeningHand(round, faces, h, oneRollPayout)
	}
}

func (m MultiMonitor) OnRoundComplete(result Result) {
	for _, monitor := range m.monitors {
		monitor.OnRoundComplete(result)
	}
}

// ResultFunc adapts a function to a Monitor that only sees completed rounds.
type ResultFunc func(Result)

func (ResultFunc) OnRoundStart(int, int, int)                    {}
func (ResultFunc) OnOpeningHand(int, hand.Faces, hand.Hand, int) {}
func (f ResultFunc) OnRoundComplete(r Result)                    { f(r) }
