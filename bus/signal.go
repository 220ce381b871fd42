package bus

// Signal is one of the cross-CPU/device events the orchestrator drains
// between CPU steps. The clock step drains at most one per tick.
type Signal uint8

const (
	SignalVInterrupt Signal = iota
	SignalHInterrupt
	SignalCPUHalt
	SignalZ80BusRequest
	SignalZ80BusReleased
	SignalZ80Reset
)

func (s Signal) String() string {
	switch s {
	case SignalVInterrupt:
		return "VInterrupt"
	case SignalHInterrupt:
		return "HInterrupt"
	case SignalCPUHalt:
		return "CPUHalt"
	case SignalZ80BusRequest:
		return "Z80BusRequest"
	case SignalZ80BusReleased:
		return "Z80BusReleased"
	case SignalZ80Reset:
		return "Z80Reset"
	}
	return "Unknown"
}

// SignalQueue holds pending Signals in push order. Producers (bus writes,
// VDP timing) append; Pop takes the oldest, while Has and TryTake look for a
// given kind wherever it sits. The orchestrator's clock step drains at most
// one signal per tick.
type SignalQueue struct {
	pending []Signal
}

// Push appends a signal to the queue.
func (q *SignalQueue) Push(s Signal) {
	q.pending = append(q.pending, s)
}

// Pop removes and returns the oldest pending signal. ok is false if the
// queue is empty.
func (q *SignalQueue) Pop() (s Signal, ok bool) {
	if len(q.pending) == 0 {
		return 0, false
	}
	s = q.pending[0]
	q.pending = q.pending[1:]
	return s, true
}

// Len reports the number of pending signals.
func (q *SignalQueue) Len() int {
	return len(q.pending)
}

// Has reports whether a signal of the given kind is currently pending,
// without draining the queue.
func (q *SignalQueue) Has(s Signal) bool {
	for _, p := range q.pending {
		if p == s {
			return true
		}
	}
	return false
}

// TryTake removes one pending signal of the given kind, regardless of its
// position in the queue, and reports whether one was found. Consumers that
// care about a specific signal kind (rather than FIFO order) should use this
// instead of Pop.
func (q *SignalQueue) TryTake(s Signal) bool {
	for i, p := range q.pending {
		if p == s {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return true
		}
	}
	return false
}
